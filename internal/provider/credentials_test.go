// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package provider

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	engineCrypto "github.com/syncvault/engine/internal/crypto"
	"github.com/syncvault/engine/models"
)

var testSecretKey = []byte("0123456789abcdef0123456789abcdef")

func TestCredentialProvider_PutRejectsMissingUUID(t *testing.T) {
	store := newTestMetadataStore(t)
	p := NewCredentialProvider(store).(*credentialProvider)

	err := p.Put(Credential{Site: "example.com"})
	require.Error(t, err)

	var se *models.SyncError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, models.CodeReceivedCredentialsWithoutUUID, se.Code)
}

func TestCredentialProvider_FetchChangedObjectsErrorsBeforeRegistration(t *testing.T) {
	store := newTestMetadataStore(t)
	p := NewCredentialProvider(store).(*credentialProvider)
	crypter := engineCrypto.NewCrypter()

	_, err := p.FetchChangedObjects(context.Background(), crypter)
	require.Error(t, err)

	var se *models.SyncError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, models.CodeCredentialsMetadataMissingBeforeFirstSync, se.Code)
}

func TestCredentialProvider_FetchAndMergeRoundTrip(t *testing.T) {
	ctx := context.Background()
	crypter := engineCrypto.NewCrypter()

	sender := NewCredentialProvider(newTestMetadataStore(t)).(*credentialProvider)
	require.NoError(t, sender.Register(ctx, models.SetupStateNeedsRemoteDataFetch))
	sender.SetSecretKey(testSecretKey)
	require.NoError(t, sender.Put(Credential{UUID: "c1", Site: "example.com", Username: "alice", Password: "hunter2"}))

	sent, err := sender.FetchChangedObjects(ctx, crypter)
	require.NoError(t, err)
	require.Len(t, sent, 1)

	receiver := NewCredentialProvider(newTestMetadataStore(t)).(*credentialProvider)
	require.NoError(t, receiver.Register(ctx, models.SetupStateNeedsRemoteDataFetch))
	receiver.SetSecretKey(testSecretKey)

	require.NoError(t, receiver.HandleInitialSyncResponse(ctx, sent, "2026-07-29T00:00:00Z", "server-ts-1", crypter))

	descriptions, err := receiver.FetchDescriptionsForObjectsThatFailedValidation(ctx)
	require.NoError(t, err)
	require.Len(t, descriptions, 1)
	assert.Contains(t, descriptions[0], "example.com")
}

func TestCredentialProvider_ServerCredentialWithoutUUIDErrors(t *testing.T) {
	ctx := context.Background()
	crypter := engineCrypto.NewCrypter()

	receiver := NewCredentialProvider(newTestMetadataStore(t)).(*credentialProvider)
	receiver.SetSecretKey(testSecretKey)

	encoded, err := crypter.EncryptAndEncode(Credential{Site: "example.com"}, testSecretKey)
	require.NoError(t, err)
	payload, err := json.Marshal(encoded)
	require.NoError(t, err)

	err = receiver.HandleSyncResponse(ctx, nil, []models.Syncable{{FeatureName: "credentials", Payload: payload}}, "", "server-ts-1", crypter)
	require.Error(t, err)

	var se *models.SyncError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, models.CodeReceivedCredentialsWithoutUUID, se.Code)
}

func TestCredentialProvider_DeleteMarksDirtyAndDeleted(t *testing.T) {
	ctx := context.Background()
	crypter := engineCrypto.NewCrypter()

	p := NewCredentialProvider(newTestMetadataStore(t)).(*credentialProvider)
	require.NoError(t, p.Register(ctx, models.SetupStateNeedsRemoteDataFetch))
	p.SetSecretKey(testSecretKey)
	require.NoError(t, p.Put(Credential{UUID: "c1", Site: "example.com"}))
	require.NoError(t, p.UpdateSyncTimestamps(ctx, "server-ts-1", time.Now()))

	p.Delete("c1")

	syncables, err := p.FetchChangedObjects(ctx, crypter)
	require.NoError(t, err)
	require.Len(t, syncables, 1)
	assert.True(t, syncables[0].IsDeleted)
}
