// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package metadata

import "errors"

// ErrFeatureNotRegistered is returned by [Store.State], [Store.ServerTimestamp],
// and [Store.LocalTimestamp] when no record exists for the requested feature.
var ErrFeatureNotRegistered = errors.New("feature not registered")

// ErrStoreClosed names the condition of a store whose background worker
// has stopped. No Store method returns it: an operation submitted after the
// worker has stopped waits until its own context is done and returns that
// context's error.
var ErrStoreClosed = errors.New("metadata store closed")
