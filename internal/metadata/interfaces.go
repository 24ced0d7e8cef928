// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metadata implements the per-feature sync bookkeeping store
// (spec.md §4.3): which features are registered, their setup state, and
// the server/local timestamps that drive incremental sync.
//
// Every operation is routed through a single background worker goroutine
// (see [Store.Run]) so that reads always observe a committed view and
// writes never interleave, matching the package's core invariant:
// "reads and writes serialize on a single background worker".
package metadata

import (
	"context"
	"time"

	"github.com/syncvault/engine/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/metadata_mock.go -package=mock

// Store is the MetadataStore contract.
type Store interface {
	// Register creates a record for name if it does not already exist.
	// Idempotent: registering an already-registered feature is a no-op.
	// A freshly registered feature starts in [models.SetupStateNeedsRemoteDataFetch].
	Register(ctx context.Context, name string) error

	// Deregister removes the record for name, if any.
	Deregister(ctx context.Context, name string) error

	// IsRegistered reports whether a record exists for name.
	IsRegistered(ctx context.Context, name string) (bool, error)

	// State returns the current setup state of name. Returns
	// [ErrFeatureNotRegistered] if name has no record.
	State(ctx context.Context, name string) (models.SetupState, error)

	// ServerTimestamp returns the last server-reported timestamp for name,
	// or "" if no successful sync has ever completed for it.
	ServerTimestamp(ctx context.Context, name string) (string, error)

	// LocalTimestamp returns the last local update time recorded for name.
	LocalTimestamp(ctx context.Context, name string) (time.Time, error)

	// Update atomically advances server timestamp, local timestamp, and
	// setup state for name in a single committed write.
	Update(ctx context.Context, name string, server string, local time.Time, state models.SetupState) error

	// Run starts the background worker that serializes every Store
	// operation. It blocks until ctx is cancelled, then drains any
	// in-flight request before returning. Callers typically start it in
	// its own goroutine.
	Run(ctx context.Context)
}
