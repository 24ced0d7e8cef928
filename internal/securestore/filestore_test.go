// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package securestore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syncvault/engine/models"
)

func tempStore(t *testing.T) SecureStore {
	t.Helper()
	return NewFileSecureStore(filepath.Join(t.TempDir(), "account.sec"))
}

func TestAccount_AbsentReturnsNilNoError(t *testing.T) {
	store := tempStore(t)

	account, err := store.Account()
	require.NoError(t, err)
	assert.Nil(t, account)
}

func TestPersistAndAccount_RoundTrip(t *testing.T) {
	store := tempStore(t)

	in := models.Account{
		DeviceID:   "device-1",
		DeviceName: "laptop",
		UserID:     "user-1",
		Token:      "token-abc",
		AuthState:  models.AuthStateActive,
	}
	require.NoError(t, store.Persist(in))

	out, err := store.Account()
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, in.DeviceID, out.DeviceID)
	assert.Equal(t, in.UserID, out.UserID)
	assert.Equal(t, in.Token, out.Token)
	assert.Equal(t, in.AuthState, out.AuthState)
}

func TestPersist_OverwritesPreviousAccount(t *testing.T) {
	store := tempStore(t)

	require.NoError(t, store.Persist(models.Account{DeviceID: "first"}))
	require.NoError(t, store.Persist(models.Account{DeviceID: "second"}))

	out, err := store.Account()
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "second", out.DeviceID)
}

func TestRemove_ThenAccountIsAbsent(t *testing.T) {
	store := tempStore(t)
	require.NoError(t, store.Persist(models.Account{DeviceID: "device-1"}))

	require.NoError(t, store.Remove())

	out, err := store.Account()
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestRemove_AbsentAccountIsNotAnError(t *testing.T) {
	store := tempStore(t)
	require.NoError(t, store.Remove())
}

func TestAccount_CorruptFileReturnsDecodeError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "account.sec")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	store := NewFileSecureStore(path)
	_, err := store.Account()
	require.Error(t, err)

	var syncErr *models.SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, models.CodeFailedToDecodeSecureStoreData, syncErr.Code)
}
