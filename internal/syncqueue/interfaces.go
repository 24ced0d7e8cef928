// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package syncqueue implements the SyncQueue (spec.md §4.9): the
// single-writer operation executor that drives every registered
// DataProvider through one sync cycle per trigger.
package syncqueue

import (
	"context"

	"github.com/syncvault/engine/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/syncqueue_mock.go -package=mock

// Queue is the SyncQueue contract.
type Queue interface {
	// StartSync requests a full sync cycle. If one is already in
	// progress, the request is coalesced with it; if the queue is
	// suspended, the request is dropped.
	StartSync()

	// CancelOngoingAndSuspend cancels the current operation, if any, and
	// refuses to start new ones until Resume is called.
	CancelOngoingAndSuspend()

	// Resume permits new operations after a suspension.
	Resume()

	// PrepareDataModelsForSync registers every DataProvider in the
	// MetadataStore. When needsRemoteDataFetch is true, every feature is
	// forced back to the initial-sync state regardless of its previous
	// state.
	PrepareDataModelsForSync(ctx context.Context, needsRemoteDataFetch bool) error

	// SetSecretKey supplies the account secret key every DataProvider
	// needs for its own crypter calls. The queue calls
	// [provider.Provider.SetSecretKey] on every registered provider
	// before each cycle using whatever key was last set here; the Facade
	// calls this once per login/create-account/refresh, before enabling
	// the Scheduler.
	SetSecretKey(secretKey []byte)

	// IsSyncInProgress publishes true on cycle entry and false on cycle
	// exit, regardless of outcome.
	IsSyncInProgress() <-chan bool

	// SyncDidFinish publishes once per completed cycle that produced a
	// result (cycles aborted by Unauthenticated publish to
	// SyncHTTPRequestError instead).
	SyncDidFinish() <-chan models.SyncResult

	// SyncHTTPRequestError publishes a cycle-aborting error. A 401
	// specifically signals the Facade to tear the account down.
	SyncHTTPRequestError() <-chan error

	// SyncDidUpdateData publishes once per feature that received new
	// data during a cycle.
	SyncDidUpdateData() <-chan string

	// Close stops the queue's background worker. The queue is unusable
	// afterward.
	Close()
}
