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

// Bookmark is the illustrative per-item payload the bookmarks feature
// syncs. Encrypted as a whole before being placed into a Syncable.
type Bookmark struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updated_at"`
}

type bookmarkRecord struct {
	Bookmark
	Deleted bool
}

// bookmarkProvider is an in-memory illustrative [Provider] implementation,
// used by tests and the demo command. Real hosts back this feature with
// whatever local storage they already have; the core never requires a
// specific one.
type bookmarkProvider struct {
	Base

	mu        sync.Mutex
	secretKey []byte
	records   map[string]bookmarkRecord
	lastError error
}

// NewBookmarkProvider constructs the bookmarks feature's [Provider], its
// metadata bookkeeping backed by store.
func NewBookmarkProvider(store metadata.Store) Provider {
	return &bookmarkProvider{
		Base:    NewBase("bookmarks", store),
		records: make(map[string]bookmarkRecord),
	}
}

func (p *bookmarkProvider) PrepareForFirstSync(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.records = make(map[string]bookmarkRecord)
	return nil
}

func (p *bookmarkProvider) SetSecretKey(secretKey []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.secretKey = secretKey
}

// Put inserts or updates a bookmark locally, marking it dirty for the next
// sync cycle. Exposed for the demo command and tests; not part of
// [Provider].
func (p *bookmarkProvider) Put(b Bookmark) {
	p.mu.Lock()
	defer p.mu.Unlock()
	b.UpdatedAt = time.Now()
	p.records[b.ID] = bookmarkRecord{Bookmark: b}
}

// Delete soft-deletes a bookmark, keeping the record so the next sync
// cycle can propagate the deletion.
func (p *bookmarkProvider) Delete(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	rec, ok := p.records[id]
	if !ok {
		return
	}
	rec.Deleted = true
	rec.UpdatedAt = time.Now()
	p.records[id] = rec
}

func (p *bookmarkProvider) FetchChangedObjects(ctx context.Context, crypter crypto.Crypter) ([]models.Syncable, error) {
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

		encoded, err := crypter.EncryptAndEncode(rec.Bookmark, p.secretKey)
		if err != nil {
			return nil, models.NewSyncError(models.CodeFailedToEncryptValue, "encrypt bookmark "+rec.ID, err)
		}

		payload, err := json.Marshal(encoded)
		if err != nil {
			return nil, models.NewSyncError(models.CodeUnableToEncodeRequestBody, "marshal bookmark payload", err)
		}

		out = append(out, models.Syncable{
			FeatureName: "bookmarks",
			Payload:     payload,
			IsDeleted:   rec.Deleted,
		})
	}
	return out, nil
}

func (p *bookmarkProvider) HandleInitialSyncResponse(_ context.Context, received []models.Syncable, _, _ string, crypter crypto.Crypter) error {
	return p.mergeReceived(received, crypter)
}

func (p *bookmarkProvider) HandleSyncResponse(_ context.Context, _, received []models.Syncable, _, _ string, crypter crypto.Crypter) error {
	return p.mergeReceived(received, crypter)
}

func (p *bookmarkProvider) mergeReceived(received []models.Syncable, crypter crypto.Crypter) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, item := range received {
		var encoded string
		if err := json.Unmarshal(item.Payload, &encoded); err != nil {
			return models.NewSyncError(models.CodeInvalidDataInResponse, "decode bookmark envelope", err)
		}

		var b Bookmark
		if err := crypter.DecodeAndDecrypt(encoded, p.secretKey, &b); err != nil {
			return models.NewSyncError(models.CodeFailedToDecryptValue, "decrypt bookmark", err)
		}

		if item.IsDeleted {
			p.records[b.ID] = bookmarkRecord{Bookmark: b, Deleted: true}
			continue
		}
		// dedup against a newer local edit that hasn't synced yet.
		if existing, ok := p.records[b.ID]; ok && existing.UpdatedAt.After(b.UpdatedAt) {
			continue
		}
		p.records[b.ID] = bookmarkRecord{Bookmark: b}
	}
	return nil
}

func (p *bookmarkProvider) FetchDescriptionsForObjectsThatFailedValidation(context.Context) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var descriptions []string
	for _, rec := range p.records {
		descriptions = append(descriptions, "bookmark "+rec.ID+" ("+rec.URL+")")
	}
	return descriptions, nil
}

func (p *bookmarkProvider) HandleSyncError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastError = err
}
