// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package securestore persists the local [models.Account] blob across
// process restarts.
//
// The blob is treated as opaque by every other package: SecureStore does
// not know the shape of Account beyond what it needs to serialize it. Two
// layers of exclusion cooperate to satisfy spec.md §4.2's "prevent two
// processes from racing writes":
//   - an inter-process file lock (github.com/gofrs/flock) guards the
//     backing file itself, the same mechanism a platform keychain would
//     provide natively;
//   - an intra-process sync.RWMutex makes concurrent goroutines within
//     this process see persist/account/remove as atomic with respect to
//     each other.
package securestore

import "github.com/syncvault/engine/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/securestore_mock.go -package=mock

// SecureStore exposes atomic persist/read/remove of the single local
// Account. All operations are atomic with respect to readers: a reader
// never observes a partially-written blob.
type SecureStore interface {
	// Persist writes account, replacing whatever was previously stored.
	Persist(account models.Account) error

	// Account returns the persisted account, or (nil, nil) if none has
	// been persisted (or it was removed).
	Account() (*models.Account, error)

	// Remove deletes the persisted account, if any. Removing an
	// already-absent account is not an error.
	Remove() error
}
