// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package provider

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/syncvault/engine/internal/crypto"
	"github.com/syncvault/engine/internal/metadata"
	"github.com/syncvault/engine/models"
)

// Credential is the illustrative per-item payload the credentials feature
// syncs: a login (site, username, password) identified by a stable UUID.
type Credential struct {
	UUID      string    `json:"uuid"`
	Site      string    `json:"site"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	UpdatedAt time.Time `json:"updated_at"`
}

type credentialRecord struct {
	Credential
	Deleted bool
}

// credentialProvider is an in-memory illustrative [Provider]
// implementation, used by tests and the demo command.
type credentialProvider struct {
	Base

	mu        sync.Mutex
	secretKey []byte
	records   map[string]credentialRecord
	lastError error
}

// NewCredentialProvider constructs the credentials feature's [Provider].
func NewCredentialProvider(store metadata.Store) Provider {
	return &credentialProvider{
		Base:    NewBase("credentials", store),
		records: make(map[string]credentialRecord),
	}
}

func (p *credentialProvider) PrepareForFirstSync(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.records = make(map[string]credentialRecord)
	return nil
}

func (p *credentialProvider) SetSecretKey(secretKey []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.secretKey = secretKey
}

// Put inserts or updates a credential locally, marking it dirty for the
// next sync cycle. Exposed for the demo command and tests; not part of
// [Provider].
func (p *credentialProvider) Put(c Credential) error {
	if c.UUID == "" {
		return models.NewSyncError(models.CodeReceivedCredentialsWithoutUUID, "local credential missing uuid", nil)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	c.UpdatedAt = time.Now()
	p.records[c.UUID] = credentialRecord{Credential: c}
	return nil
}

// Delete soft-deletes a credential, keeping the record so the next sync
// cycle can propagate the deletion.
func (p *credentialProvider) Delete(uuid string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	rec, ok := p.records[uuid]
	if !ok {
		return
	}
	rec.Deleted = true
	rec.UpdatedAt = time.Now()
	p.records[uuid] = rec
}

func (p *credentialProvider) FetchChangedObjects(ctx context.Context, crypter crypto.Crypter) ([]models.Syncable, error) {
	registered, err := p.IsFeatureRegistered(ctx)
	if err != nil {
		return nil, err
	}
	if !registered {
		return nil, models.NewSyncError(models.CodeCredentialsMetadataMissingBeforeFirstSync, "credentials metadata missing", nil)
	}

	local, err := p.LastLocalTimestamp(ctx)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var out []models.Syncable
	for _, rec := range p.records {
		if !rec.UpdatedAt.After(local) {
			continue
		}

		encoded, err := crypter.EncryptAndEncode(rec.Credential, p.secretKey)
		if err != nil {
			return nil, models.NewSyncError(models.CodeFailedToEncryptValue, "encrypt credential "+rec.UUID, err)
		}

		payload, err := json.Marshal(encoded)
		if err != nil {
			return nil, models.NewSyncError(models.CodeUnableToEncodeRequestBody, "marshal credential payload", err)
		}

		out = append(out, models.Syncable{
			FeatureName: "credentials",
			Payload:     payload,
			IsDeleted:   rec.Deleted,
		})
	}
	return out, nil
}

func (p *credentialProvider) HandleInitialSyncResponse(_ context.Context, received []models.Syncable, _, _ string, crypter crypto.Crypter) error {
	return p.mergeReceived(received, crypter)
}

func (p *credentialProvider) HandleSyncResponse(_ context.Context, _, received []models.Syncable, _, _ string, crypter crypto.Crypter) error {
	return p.mergeReceived(received, crypter)
}

func (p *credentialProvider) mergeReceived(received []models.Syncable, crypter crypto.Crypter) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, item := range received {
		var encoded string
		if err := json.Unmarshal(item.Payload, &encoded); err != nil {
			return models.NewSyncError(models.CodeInvalidDataInResponse, "decode credential envelope", err)
		}

		var c Credential
		if err := crypter.DecodeAndDecrypt(encoded, p.secretKey, &c); err != nil {
			return models.NewSyncError(models.CodeFailedToDecryptValue, "decrypt credential", err)
		}
		if c.UUID == "" {
			return models.NewSyncError(models.CodeReceivedCredentialsWithoutUUID, "server sent credential without uuid", nil)
		}

		if item.IsDeleted {
			p.records[c.UUID] = credentialRecord{Credential: c, Deleted: true}
			continue
		}
		if existing, ok := p.records[c.UUID]; ok && existing.UpdatedAt.After(c.UpdatedAt) {
			continue
		}
		p.records[c.UUID] = credentialRecord{Credential: c}
	}
	return nil
}

func (p *credentialProvider) FetchDescriptionsForObjectsThatFailedValidation(context.Context) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var descriptions []string
	for _, rec := range p.records {
		descriptions = append(descriptions, "credential "+rec.UUID+" ("+rec.Site+")")
	}
	return descriptions, nil
}

func (p *credentialProvider) HandleSyncError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastError = err
}
