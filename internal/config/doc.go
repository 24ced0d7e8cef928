// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading and merging utilities for
// the sync engine.
//
// Configuration is assembled from multiple sources in the following priority
// order (last source wins for non-zero fields):
//  1. Built-in defaults — [defaultConfig]
//  2. Environment variables — loaded via [withEnv]
//  3. Command-line flags — loaded via [withFlags]
//  4. JSON file — loaded via [withJSON], path resolved from the sources above
//
// The entry point for production use is [GetStructuredConfig], which chains
// all sources and validates the result.
package config

import "time"

// Built-in default values applied before any external source is merged.
const (
	defaultRequestTimeout         = 30 * time.Second
	defaultDataChangedDebounce    = 5 * time.Second
	defaultAppLifecycleThrottle   = 60 * time.Second
	defaultConnectPollInterval    = 2 * time.Second
	defaultConnectMaxPollAttempts = 30
)
