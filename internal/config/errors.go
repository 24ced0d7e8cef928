// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidServerConfig indicates an incomplete or unknown server
	// configuration (missing base URL for the selected environment, or a
	// zero request timeout).
	ErrInvalidServerConfig = errors.New("invalid server configuration")
	// ErrInvalidStorageConfig indicates an incomplete storage configuration
	// (missing metadata DSN or secure store path).
	ErrInvalidStorageConfig = errors.New("invalid storage configuration")
	// ErrInvalidSchedulerConfig indicates a zero debounce or throttle window.
	ErrInvalidSchedulerConfig = errors.New("invalid scheduler configuration")
	// ErrInvalidConnectConfig indicates a zero poll interval or attempt budget.
	ErrInvalidConnectConfig = errors.New("invalid connect configuration")
	// ErrInvalidAppConfig indicates missing device identity fields.
	ErrInvalidAppConfig = errors.New("invalid app configuration")
)
