// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package provider

import (
	"context"
	"time"

	"github.com/syncvault/engine/internal/metadata"
	"github.com/syncvault/engine/models"
)

// Base implements the metadata-bookkeeping half of [Provider] (Feature,
// FeatureSetupState, IsFeatureRegistered, Register, Deregister,
// LastServerTimestamp, LastLocalTimestamp, UpdateSyncTimestamps) by
// delegating to a shared [metadata.Store]. Concrete providers embed Base
// and add their own FetchChangedObjects/HandleInitialSyncResponse/
// HandleSyncResponse/FetchDescriptionsForObjectsThatFailedValidation/
// HandleSyncError/PrepareForFirstSync/SetSecretKey.
type Base struct {
	feature string
	store   metadata.Store
}

// NewBase constructs a [Base] for featureName backed by store.
func NewBase(featureName string, store metadata.Store) Base {
	return Base{feature: featureName, store: store}
}

func (b Base) Feature() models.Feature {
	return models.Feature{Name: b.feature}
}

func (b Base) FeatureSetupState(ctx context.Context) (models.SetupState, error) {
	return b.store.State(ctx, b.feature)
}

func (b Base) IsFeatureRegistered(ctx context.Context) (bool, error) {
	return b.store.IsRegistered(ctx, b.feature)
}

// Register ensures the feature has a metadata record. When setupState is
// [models.SetupStateNeedsRemoteDataFetch] it additionally forces the
// feature back into that state even if it was already readyToSync — this
// is the mechanism behind the SyncQueue's prepare_data_models_for_sync
// "force all features to initial-sync state" path (spec.md §4.9).
// Registering with [models.SetupStateReadyToSync] never downgrades an
// already-registered feature; it is simply the normal idempotent path.
func (b Base) Register(ctx context.Context, setupState models.SetupState) error {
	if err := b.store.Register(ctx, b.feature); err != nil {
		return err
	}
	if setupState != models.SetupStateNeedsRemoteDataFetch {
		return nil
	}

	server, err := b.store.ServerTimestamp(ctx, b.feature)
	if err != nil {
		return err
	}
	local, err := b.store.LocalTimestamp(ctx, b.feature)
	if err != nil {
		return err
	}
	return b.store.Update(ctx, b.feature, server, local, models.SetupStateNeedsRemoteDataFetch)
}

func (b Base) Deregister(ctx context.Context) error {
	return b.store.Deregister(ctx, b.feature)
}

func (b Base) LastServerTimestamp(ctx context.Context) (string, error) {
	return b.store.ServerTimestamp(ctx, b.feature)
}

func (b Base) LastLocalTimestamp(ctx context.Context) (time.Time, error) {
	return b.store.LocalTimestamp(ctx, b.feature)
}

func (b Base) UpdateSyncTimestamps(ctx context.Context, server string, local time.Time) error {
	return b.store.Update(ctx, b.feature, server, local, models.SetupStateReadyToSync)
}
