// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncqueue

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	engineCrypto "github.com/syncvault/engine/internal/crypto"
	"github.com/syncvault/engine/internal/metadata"
	"github.com/syncvault/engine/internal/provider"
	"github.com/syncvault/engine/models"
)

var testSecretKey = []byte("0123456789abcdef0123456789abcdef")

func newTestMetadataStore(t *testing.T) metadata.Store {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "metadata.sqlite3")
	st, err := metadata.NewStore(dsn)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go st.Run(ctx)
	t.Cleanup(cancel)

	return st
}

// fakeQueueClient is a hand-rolled transport.Client test double exercising
// only GetSync/PatchSync; everything else panics.
type fakeQueueClient struct {
	mu sync.Mutex

	getResponses   map[string]models.RawFeatureResponse
	getErr         error
	patchResponses map[string]models.RawFeatureResponse
	patchErr       error
	patchCalls     int
	getCalls       int
}

func (f *fakeQueueClient) SetToken(string) {}
func (f *fakeQueueClient) Token() string   { return "" }

func (f *fakeQueueClient) Signup(context.Context, models.SignupRequest) (models.SignupResponse, error) {
	panic("not used by syncqueue tests")
}

func (f *fakeQueueClient) Login(context.Context, models.LoginRequest) (models.LoginResponse, error) {
	panic("not used by syncqueue tests")
}

func (f *fakeQueueClient) LogoutDevice(context.Context, models.LogoutDeviceRequest) error {
	panic("not used by syncqueue tests")
}

func (f *fakeQueueClient) DeleteAccount(context.Context) error {
	panic("not used by syncqueue tests")
}

func (f *fakeQueueClient) FetchDevices(context.Context) ([]models.Device, error) {
	panic("not used by syncqueue tests")
}

func (f *fakeQueueClient) GetSync(context.Context, string) (map[string]models.RawFeatureResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getResponses, nil
}

func (f *fakeQueueClient) PatchSync(context.Context, []byte, bool) (map[string]models.RawFeatureResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patchCalls++
	if f.patchErr != nil {
		return nil, f.patchErr
	}
	return f.patchResponses, nil
}

func (f *fakeQueueClient) PostConnect(context.Context, models.ConnectPayload) error {
	panic("not used by syncqueue tests")
}

func (f *fakeQueueClient) GetConnect(context.Context, string) (*models.ConnectPayload, error) {
	panic("not used by syncqueue tests")
}

func newBookmarkProviderWithKey(t *testing.T) provider.Provider {
	t.Helper()
	p := provider.NewBookmarkProvider(newTestMetadataStore(t))
	p.SetSecretKey(testSecretKey)
	return p
}

func TestQueue_InitialSyncRegistersAndFetches(t *testing.T) {
	ctx := context.Background()
	p := newBookmarkProviderWithKey(t)
	require.NoError(t, p.Register(ctx, models.SetupStateNeedsRemoteDataFetch))

	client := &fakeQueueClient{
		getResponses: map[string]models.RawFeatureResponse{
			"bookmarks": {Entries: nil, LastModified: "server-ts-1"},
		},
	}

	q := NewQueue(client, engineCrypto.NewCrypter(), []provider.Provider{p})
	defer q.Close()

	q.StartSync()

	select {
	case result := <-q.SyncDidFinish():
		outcome, ok := result["bookmarks"]
		require.True(t, ok)
		assert.Equal(t, models.SyncResultNoData, outcome.Kind)
	case err := <-q.SyncHTTPRequestError():
		t.Fatalf("unexpected sync error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for sync to finish")
	}

	ts, err := p.LastServerTimestamp(ctx)
	require.NoError(t, err)
	assert.Equal(t, "server-ts-1", ts)

	state, err := p.FeatureSetupState(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.SetupStateReadyToSync, state)
}

func TestQueue_RegularSyncPatchesLocalChanges(t *testing.T) {
	ctx := context.Background()
	p := newBookmarkProviderWithKey(t).(interface {
		provider.Provider
		Put(provider.Bookmark)
	})
	require.NoError(t, p.Register(ctx, models.SetupStateNeedsRemoteDataFetch))
	require.NoError(t, p.UpdateSyncTimestamps(ctx, "server-ts-0", time.Now()))
	p.Put(provider.Bookmark{ID: "b1", URL: "https://example.com", Title: "Example"})

	client := &fakeQueueClient{
		patchResponses: map[string]models.RawFeatureResponse{
			"bookmarks": {Entries: nil, LastModified: "server-ts-2"},
		},
	}

	q := NewQueue(client, engineCrypto.NewCrypter(), []provider.Provider{p})
	defer q.Close()

	q.StartSync()

	select {
	case result := <-q.SyncDidFinish():
		outcome, ok := result["bookmarks"]
		require.True(t, ok)
		assert.Equal(t, models.SyncResultSomeNewData, outcome.Kind)
	case err := <-q.SyncHTTPRequestError():
		t.Fatalf("unexpected sync error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for sync to finish")
	}

	assert.Equal(t, 1, client.patchCalls)
	assert.Equal(t, 0, client.getCalls)
}

func TestQueue_UnauthenticatedAbortsCycle(t *testing.T) {
	ctx := context.Background()
	p := newBookmarkProviderWithKey(t)
	require.NoError(t, p.Register(ctx, models.SetupStateNeedsRemoteDataFetch))

	client := &fakeQueueClient{getErr: models.NewUnexpectedStatusCode(401)}

	q := NewQueue(client, engineCrypto.NewCrypter(), []provider.Provider{p})
	defer q.Close()

	q.StartSync()

	select {
	case err := <-q.SyncHTTPRequestError():
		require.Error(t, err)
	case result := <-q.SyncDidFinish():
		t.Fatalf("expected an http error, got a result: %v", result)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for sync error")
	}
}

func TestQueue_StartSyncCoalescesRapidTriggers(t *testing.T) {
	ctx := context.Background()
	p := newBookmarkProviderWithKey(t)
	require.NoError(t, p.Register(ctx, models.SetupStateNeedsRemoteDataFetch))

	client := &fakeQueueClient{
		getResponses: map[string]models.RawFeatureResponse{
			"bookmarks": {Entries: nil, LastModified: "server-ts-1"},
		},
	}

	q := NewQueue(client, engineCrypto.NewCrypter(), []provider.Provider{p})
	defer q.Close()

	for i := 0; i < 5; i++ {
		q.StartSync()
	}

	select {
	case <-q.SyncDidFinish():
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for sync to finish")
	}
}

func TestQueue_SetSecretKeyReachesProvidersBeforeFetch(t *testing.T) {
	ctx := context.Background()
	p := provider.NewBookmarkProvider(newTestMetadataStore(t)).(interface {
		provider.Provider
		Put(provider.Bookmark)
	})
	require.NoError(t, p.Register(ctx, models.SetupStateNeedsRemoteDataFetch))
	require.NoError(t, p.UpdateSyncTimestamps(ctx, "server-ts-0", time.Now()))
	p.Put(provider.Bookmark{ID: "b1", URL: "https://example.com", Title: "Example"})

	client := &fakeQueueClient{
		patchResponses: map[string]models.RawFeatureResponse{
			"bookmarks": {Entries: nil, LastModified: "server-ts-2"},
		},
	}

	// Note: SetSecretKey is called on the queue, not the provider directly
	// (unlike newBookmarkProviderWithKey used elsewhere in this file) —
	// this test exercises the queue's own responsibility to forward it.
	q := NewQueue(client, engineCrypto.NewCrypter(), []provider.Provider{p})
	defer q.Close()
	q.SetSecretKey(testSecretKey)

	q.StartSync()

	select {
	case result := <-q.SyncDidFinish():
		outcome, ok := result["bookmarks"]
		require.True(t, ok)
		assert.Equal(t, models.SyncResultSomeNewData, outcome.Kind)
	case err := <-q.SyncHTTPRequestError():
		t.Fatalf("unexpected sync error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for sync to finish")
	}
}

func TestQueue_CancelOngoingAndSuspendBlocksNewSyncs(t *testing.T) {
	p := newBookmarkProviderWithKey(t)
	client := &fakeQueueClient{}

	q := NewQueue(client, engineCrypto.NewCrypter(), []provider.Provider{p})
	defer q.Close()

	q.CancelOngoingAndSuspend()
	q.StartSync()

	select {
	case result := <-q.SyncDidFinish():
		t.Fatalf("expected no sync while suspended, got %v", result)
	case <-time.After(100 * time.Millisecond):
	}

	q.Resume()
}
