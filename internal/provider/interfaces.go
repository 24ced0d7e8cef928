// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package provider defines the DataProvider contract (spec.md §4.7): the
// external-collaborator interface every synced feature (bookmarks,
// credentials, ...) implements so the SyncQueue can drive it without
// knowing anything about the feature's own storage or wire shape.
//
// The interface has no default methods, mirroring the teacher's
// LocalPrivateDataRepository style: one flat contract, no embedding, so a
// mock or a real implementation is a drop-in replacement either way. This
// package also ships two illustrative implementations, bookmarks and
// credentials, used by tests and the demo command — concrete features are
// implementation detail the distilled spec leaves unspecified, not
// something its Non-goals exclude.
package provider

import (
	"context"
	"time"

	"github.com/syncvault/engine/internal/crypto"
	"github.com/syncvault/engine/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/provider_mock.go -package=mock

// Provider is the DataProvider contract.
type Provider interface {
	// Feature identifies which feature this provider syncs.
	Feature() models.Feature

	// FeatureSetupState returns the feature's current setup state.
	FeatureSetupState(ctx context.Context) (models.SetupState, error)

	// IsFeatureRegistered reports whether the feature has a metadata
	// record at all.
	IsFeatureRegistered(ctx context.Context) (bool, error)

	// Register creates the feature's metadata record if one does not
	// already exist; a new record starts in NeedsRemoteDataFetch. Passing
	// NeedsRemoteDataFetch also forces an existing record back into that
	// state; passing ReadyToSync leaves an existing record unchanged.
	// Idempotent.
	Register(ctx context.Context, setupState models.SetupState) error

	// Deregister removes the feature's metadata record.
	Deregister(ctx context.Context) error

	// LastServerTimestamp returns the previous server-reported cursor, or
	// "" if the feature has never completed a sync.
	LastServerTimestamp(ctx context.Context) (string, error)

	// LastLocalTimestamp returns the last local update time recorded for
	// this feature.
	LastLocalTimestamp(ctx context.Context) (time.Time, error)

	// UpdateSyncTimestamps atomically advances both timestamps and marks
	// the feature ready to sync. Called once per feature at the end of an
	// operation cycle.
	UpdateSyncTimestamps(ctx context.Context, server string, local time.Time) error

	// PrepareForFirstSync runs any one-time local setup an initial sync
	// needs before the first GET is issued (e.g. clearing stale local
	// state left over from a previous account).
	PrepareForFirstSync(ctx context.Context) error

	// SetSecretKey supplies the account secret key the provider needs to
	// call crypto.Crypter.EncryptAndEncode/DecodeAndDecrypt. The SyncQueue
	// calls this once per operation, before any of the methods below, so
	// implementations may assume a consistent key for the duration of one
	// cycle. [ADDED]: spec.md's "crypter" parameter on fetch/handle
	// methods does not by itself carry key material — Crypter's methods
	// all take explicit keys, so the secret key has to reach the provider
	// some other way; this is that way.
	SetSecretKey(secretKey []byte)

	// FetchChangedObjects returns every local object modified since
	// LastLocalTimestamp (or all objects, if no sync has ever run),
	// encrypted and encoded via crypter.
	FetchChangedObjects(ctx context.Context, crypter crypto.Crypter) ([]models.Syncable, error)

	// HandleInitialSyncResponse merges the server's full state into local
	// storage, deduplicating against anything already present locally.
	HandleInitialSyncResponse(ctx context.Context, received []models.Syncable, clientTimestamp, serverTimestamp string, crypter crypto.Crypter) error

	// HandleSyncResponse applies the server's response to a regular sync,
	// assuming every item in sent was accepted.
	HandleSyncResponse(ctx context.Context, sent, received []models.Syncable, clientTimestamp, serverTimestamp string, crypter crypto.Crypter) error

	// FetchDescriptionsForObjectsThatFailedValidation returns
	// human-readable descriptions of every locally held object, for
	// diagnostics surfaced to the host after a validation failure. The
	// shipped providers do not record which objects the server rejected,
	// so the list is not narrowed to them.
	FetchDescriptionsForObjectsThatFailedValidation(ctx context.Context) ([]string, error)

	// HandleSyncError is a non-fatal error surface: the SyncQueue calls it
	// with whatever error this feature produced during the cycle, without
	// aborting sibling features.
	HandleSyncError(err error)
}
