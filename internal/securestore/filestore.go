// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package securestore

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/syncvault/engine/models"
)

const lockTimeout = 5 * time.Second

// fileSecureStore is a file-backed [SecureStore]. It is the reference
// implementation used outside of a host that exposes an OS keyring;
// per spec.md §9 ("Platform keychain becomes the SecureStore interface"),
// hosts with a native keychain should provide their own implementation and
// reserve this one for tests and keychain-less platforms.
type fileSecureStore struct {
	path string
	lock *flock.Flock

	mu sync.RWMutex
}

// NewFileSecureStore constructs a [SecureStore] backed by the file at path.
// The directory containing path is created on first [fileSecureStore.Persist]
// if it does not already exist.
func NewFileSecureStore(path string) SecureStore {
	return &fileSecureStore{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

func (s *fileSecureStore) Persist(account models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()
	locked, err := s.lock.TryLockContext(ctx, 50*time.Millisecond)
	if err != nil || !locked {
		return models.NewSyncError(models.CodeFailedToWrite, "acquire file lock", err)
	}
	defer s.lock.Unlock()

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return models.NewSyncError(models.CodeFailedToWrite, "create secure store directory", err)
		}
	}

	payload, err := json.Marshal(account)
	if err != nil {
		return models.NewSyncError(models.CodeFailedToWrite, "marshal account", err)
	}

	if err := os.WriteFile(s.path, payload, 0o600); err != nil {
		return models.NewSyncError(models.CodeFailedToWrite, "write secure store file", err)
	}

	return nil
}

func (s *fileSecureStore) Account() (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, models.NewSyncError(models.CodeFailedToRead, "read secure store file", err)
	}

	var account models.Account
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, models.NewSyncError(models.CodeFailedToDecodeSecureStoreData, "decode secure store file", err)
	}

	return &account, nil
}

func (s *fileSecureStore) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()
	locked, err := s.lock.TryLockContext(ctx, 50*time.Millisecond)
	if err != nil || !locked {
		return models.NewSyncError(models.CodeFailedToRemove, "acquire file lock", err)
	}
	defer s.lock.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return models.NewSyncError(models.CodeFailedToRemove, "remove secure store file", err)
	}

	return nil
}
