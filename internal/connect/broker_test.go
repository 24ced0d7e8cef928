// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package connect

import (
	"context"
	"encoding/base64"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	engineCrypto "github.com/syncvault/engine/internal/crypto"
	"github.com/syncvault/engine/models"
)

// fakeConnectClient is a hand-rolled transport.Client test double exercising
// only the connect-related methods; everything else panics.
type fakeConnectClient struct {
	mu sync.Mutex

	postedPayload models.ConnectPayload
	postErr       error

	// getResponses is consumed in order by successive GetConnect calls;
	// the last entry repeats once exhausted.
	getResponses []getResponse
	getCalls     int
}

type getResponse struct {
	payload *models.ConnectPayload
	err     error
}

func (f *fakeConnectClient) SetToken(string) {}
func (f *fakeConnectClient) Token() string   { return "" }

func (f *fakeConnectClient) Signup(context.Context, models.SignupRequest) (models.SignupResponse, error) {
	panic("not used by connect tests")
}

func (f *fakeConnectClient) Login(context.Context, models.LoginRequest) (models.LoginResponse, error) {
	panic("not used by connect tests")
}

func (f *fakeConnectClient) LogoutDevice(context.Context, models.LogoutDeviceRequest) error {
	panic("not used by connect tests")
}

func (f *fakeConnectClient) DeleteAccount(context.Context) error {
	panic("not used by connect tests")
}

func (f *fakeConnectClient) FetchDevices(context.Context) ([]models.Device, error) {
	panic("not used by connect tests")
}

func (f *fakeConnectClient) GetSync(context.Context, string) (map[string]models.RawFeatureResponse, error) {
	panic("not used by connect tests")
}

func (f *fakeConnectClient) PatchSync(context.Context, []byte, bool) (map[string]models.RawFeatureResponse, error) {
	panic("not used by connect tests")
}

func (f *fakeConnectClient) PostConnect(_ context.Context, payload models.ConnectPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.postedPayload = payload
	return f.postErr
}

func (f *fakeConnectClient) GetConnect(context.Context, string) (*models.ConnectPayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := f.getCalls
	if idx >= len(f.getResponses) {
		idx = len(f.getResponses) - 1
	}
	f.getCalls++
	resp := f.getResponses[idx]
	return resp.payload, resp.err
}

func TestPrepareForConnect_ReturnsMatchingInfoAndCode(t *testing.T) {
	crypter := engineCrypto.NewCrypter()
	broker := NewBroker(&fakeConnectClient{}, crypter, Config{PollInterval: time.Millisecond, MaxPollAttempts: 1})

	info, code, err := broker.PrepareForConnect("device-1")

	require.NoError(t, err)
	assert.Equal(t, "device-1", info.DeviceID)
	assert.Equal(t, info.DeviceID, code.DeviceID)
	assert.Equal(t, info.PublicKey, code.PublicKey)
	assert.NotEmpty(t, info.PrivateKey)
}

func TestTransmitRecoveryKey_SealsAndPosts(t *testing.T) {
	crypter := engineCrypto.NewCrypter()
	info, err := crypter.PrepareForConnect("device-1")
	require.NoError(t, err)

	client := &fakeConnectClient{}
	broker := NewBroker(client, crypter, Config{PollInterval: time.Millisecond, MaxPollAttempts: 1})

	recovery := models.RecoveryKey{UserID: "u1", PrimaryKey: []byte("primary-key-material")}
	err = broker.TransmitRecoveryKey(context.Background(), models.ConnectCode{DeviceID: "device-1", PublicKey: info.PublicKey}, recovery)
	require.NoError(t, err)

	assert.Equal(t, "device-1", client.postedPayload.DeviceID)
	assert.NotEmpty(t, client.postedPayload.SealedRecovery)
}

func TestStartPolling_SucceedsAfterNotReady(t *testing.T) {
	crypter := engineCrypto.NewCrypter()
	info, err := crypter.PrepareForConnect("device-1")
	require.NoError(t, err)

	recovery := models.RecoveryKey{UserID: "u1", PrimaryKey: []byte("primary-key-material")}
	encoded, err := recovery.Encode()
	require.NoError(t, err)

	sealed, err := crypter.Seal([]byte(encoded), info.PublicKey)
	require.NoError(t, err)

	client := &fakeConnectClient{
		getResponses: []getResponse{
			{payload: nil},
			{payload: nil},
			{payload: &models.ConnectPayload{DeviceID: "device-1", SealedRecovery: base64.StdEncoding.EncodeToString(sealed)}},
		},
	}

	broker := NewBroker(client, crypter, Config{PollInterval: time.Millisecond, MaxPollAttempts: 5})
	results := broker.StartPolling(info)

	select {
	case res := <-results:
		require.NoError(t, res.Err)
		assert.Equal(t, "u1", res.RecoveryKey.UserID)
		assert.Equal(t, recovery.PrimaryKey, res.RecoveryKey.PrimaryKey)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for poll result")
	}
}

func TestStartPolling_ExhaustsAttemptsWhenNeverReady(t *testing.T) {
	crypter := engineCrypto.NewCrypter()
	info, err := crypter.PrepareForConnect("device-1")
	require.NoError(t, err)

	client := &fakeConnectClient{getResponses: []getResponse{{payload: nil}}}
	broker := NewBroker(client, crypter, Config{PollInterval: time.Millisecond, MaxPollAttempts: 3})

	results := broker.StartPolling(info)

	select {
	case res := <-results:
		require.Error(t, res.Err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for poll result")
	}
}

func TestStopPolling_CancelsInProgressPoll(t *testing.T) {
	crypter := engineCrypto.NewCrypter()
	info, err := crypter.PrepareForConnect("device-1")
	require.NoError(t, err)

	client := &fakeConnectClient{getResponses: []getResponse{{payload: nil}}}
	broker := NewBroker(client, crypter, Config{PollInterval: 50 * time.Millisecond, MaxPollAttempts: 1000})

	results := broker.StartPolling(info)
	time.Sleep(10 * time.Millisecond)
	broker.StopPolling()

	select {
	case res, ok := <-results:
		if ok {
			require.Error(t, res.Err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for channel close after StopPolling")
	}
}

func TestStopPolling_IdempotentWhenNoPollRunning(t *testing.T) {
	crypter := engineCrypto.NewCrypter()
	broker := NewBroker(&fakeConnectClient{}, crypter, Config{PollInterval: time.Millisecond, MaxPollAttempts: 1})

	assert.NotPanics(t, func() {
		broker.StopPolling()
		broker.StopPolling()
	})
}
