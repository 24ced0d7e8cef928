// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"time"
)

// Feature identifies one category of syncable data (bookmarks, credentials,
// settings, ...). Its Name is opaque to the core engine.
type Feature struct {
	Name string
}

// SetupState is the per-feature registration state tracked by the metadata
// store.
type SetupState int

const (
	// SetupStateNeedsRemoteDataFetch means the feature has never completed a
	// sync cycle; the next cycle must run an initial sync for it.
	SetupStateNeedsRemoteDataFetch SetupState = iota
	// SetupStateReadyToSync means at least one successful sync has run.
	SetupStateReadyToSync
)

// String implements fmt.Stringer.
func (s SetupState) String() string {
	switch s {
	case SetupStateNeedsRemoteDataFetch:
		return "needsRemoteDataFetch"
	case SetupStateReadyToSync:
		return "readyToSync"
	default:
		return fmt.Sprintf("setupState(%d)", int(s))
	}
}

// FeatureMetadata is the per-feature persisted record the metadata store
// keeps across restarts. LastServerTimestamp is opaque and must never be
// parsed as a date; it is only ever round-tripped as the `since` cursor.
type FeatureMetadata struct {
	FeatureName          string
	SetupState           SetupState
	LastServerTimestamp  string
	LastLocalTimestamp   time.Time
}
