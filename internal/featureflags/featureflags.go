// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package featureflags exposes the FeatureFlags resolver (spec.md §4.13):
// given a remote privacy configuration, resolve the nested sync support
// level the Facade should publish and gate setup flows against.
//
// The resolution logic itself lives on [models.RemotePrivacyConfig.Resolve]
// since it is pure data transformation with no external collaborators;
// this package is the thin, named entry point spec.md §4.13 describes as
// its own module, plus the one derived policy decision ([DegradedMode])
// the SyncQueue and Facade both need.
package featureflags

import "github.com/syncvault/engine/models"

// Resolve derives the [models.SyncSupportLevel] for cfg.
func Resolve(cfg models.RemotePrivacyConfig) models.SyncSupportLevel {
	return cfg.Resolve()
}

// DegradedMode reports whether the SyncQueue must run with no network
// access: registration bookkeeping continues, but fetch/send is skipped.
// Per spec.md §4.13, this is exactly the case where dataSyncing is off,
// regardless of how the higher setup-flow/create-account flags resolve.
func DegradedMode(cfg models.RemotePrivacyConfig) bool {
	return !cfg.DataSyncing
}
