// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package transport

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syncvault/engine/models"
)

func newTestClient(t *testing.T, serverURL string) Client {
	t.Helper()
	c, err := NewClient(serverURL, 5*time.Second)
	require.NoError(t, err)
	return c
}

func TestNewClient_RejectsEmptyAddress(t *testing.T) {
	_, err := NewClient("", time.Second)
	assert.Error(t, err)
}

func TestNewClient_DefaultsToHTTPScheme(t *testing.T) {
	c, err := NewClient("example.com:8080", time.Second)
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestSignup_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sync/signup", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"tok-1"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	resp, err := c.Signup(context.Background(), models.SignupRequest{UserID: "u1"})

	require.NoError(t, err)
	assert.Equal(t, "tok-1", resp.Token)
}

func TestLogin_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sync/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"tok-2","protectedEncryptionKey":"pek","devices":[{"device_id":"d1"}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	resp, err := c.Login(context.Background(), models.LoginRequest{UserID: "u1"})

	require.NoError(t, err)
	assert.Equal(t, "tok-2", resp.Token)
	assert.Len(t, resp.Devices, 1)
}

func TestLogoutDevice_SendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetToken("secret-token")
	err := c.LogoutDevice(context.Background(), models.LogoutDeviceRequest{DeviceID: "d1"})

	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", gotAuth)
}

func TestGetSync_DecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sync/bookmarks,credentials", r.URL.Path)
		assert.Equal(t, "0,123", r.URL.Query().Get("since"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"bookmarks":{"entries":[],"last_modified":"100"}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	envelope, err := c.GetSync(context.Background(), "bookmarks,credentials?since=0,123")

	require.NoError(t, err)
	require.Contains(t, envelope, "bookmarks")
	assert.Equal(t, "100", envelope["bookmarks"].LastModified)
}

func TestGetSync_EmptyBodyIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GetSync(context.Background(), "bookmarks")

	require.Error(t, err)
	var se *models.SyncError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, models.CodeNoResponseBody, se.Code)
}

func TestGetSync_UnexpectedStatusCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GetSync(context.Background(), "bookmarks")

	require.Error(t, err)
	var se *models.SyncError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, models.CodeUnexpectedStatusCode, se.Code)
	assert.Equal(t, http.StatusTeapot, se.StatusCode)
}

func TestPatchSync_SetsContentEncodingWhenGzipped(t *testing.T) {
	var gotEncoding string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		gotEncoding = r.Header.Get("Content-Encoding")

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		gr, err := gzip.NewReader(bytes.NewReader(body))
		require.NoError(t, err)
		plain, err := io.ReadAll(gr)
		require.NoError(t, err)
		assert.Equal(t, `{"bookmarks":{"updates":[]}}`, string(plain))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"bookmarks":{"entries":[],"last_modified":"200"}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	compressed, err := CompressBody([]byte(`{"bookmarks":{"updates":[]}}`))
	require.NoError(t, err)

	envelope, err := c.PatchSync(context.Background(), compressed, true)

	require.NoError(t, err)
	assert.Equal(t, "gzip", gotEncoding)
	assert.Equal(t, "200", envelope["bookmarks"].LastModified)
}

func TestGetConnect_NotFoundReturnsNilNoError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	payload, err := c.GetConnect(context.Background(), "device-1")

	require.NoError(t, err)
	assert.Nil(t, payload)
}

func TestGetConnect_ReturnsPayloadWhenPresent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sync/connect/device-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"device_id":"device-1","sealed_recovery":"c2VhbGVk"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	payload, err := c.GetConnect(context.Background(), "device-1")

	require.NoError(t, err)
	require.NotNil(t, payload)
	assert.Equal(t, "c2VhbGVk", payload.SealedRecovery)
}

func TestPostConnect_SendsSealedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sync/connect", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	err := c.PostConnect(context.Background(), models.ConnectPayload{DeviceID: "device-1", SealedRecovery: "c2VhbGVk"})

	require.NoError(t, err)
}

func TestCompressBody_RoundTrips(t *testing.T) {
	compressed, err := CompressBody([]byte("hello"))
	require.NoError(t, err)

	gr, err := gzip.NewReader(bytes.NewReader(compressed))
	require.NoError(t, err)
	plain, err := io.ReadAll(gr)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(plain))
}
