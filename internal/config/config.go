// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config loads and merges the sync engine's configuration from
// environment variables, command-line flags, and an optional JSON file, in
// that priority order (later sources win for non-zero fields).
package config

import "time"

// StructuredConfig is the top-level configuration container for the sync
// engine. Struct tags:
//   - envPrefix — prefix applied to nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds device identity and build metadata.
	App App `envPrefix:"APP_"`

	// Server holds the environment-selected base URL and HTTP timeouts.
	Server Server `envPrefix:"SERVER_"`

	// Storage holds local persistence settings (metadata store, secure
	// store).
	Storage Storage `envPrefix:"STORAGE_"`

	// Scheduler holds the debounce/throttle windows for the event sources.
	Scheduler Scheduler `envPrefix:"SCHEDULER_"`

	// Connect holds the connect-broker polling parameters.
	Connect Connect `envPrefix:"CONNECT_"`

	// JSONFilePath is the optional path to a JSON configuration file,
	// merged on top of values already loaded from env and flags.
	JSONFilePath string `env:"CONFIG"`
}

// App holds device identity used when signing up or logging in.
type App struct {
	// Version is the running application's semantic version string.
	Version string `env:"VERSION"`
	// DeviceName is the human-readable device name sent to the server.
	DeviceName string `env:"DEVICE_NAME"`
	// DeviceType categorizes the device (e.g. "desktop", "mobile").
	DeviceType string `env:"DEVICE_TYPE"`
}

// ServerEnvironment selects which base URL the engine talks to.
type ServerEnvironment string

const (
	EnvironmentProduction  ServerEnvironment = "production"
	EnvironmentDevelopment ServerEnvironment = "development"
)

// Server holds the base URL selection and HTTP timeout settings.
type Server struct {
	// Environment selects ProductionBaseURL or DevelopmentBaseURL. Changing
	// this value at runtime forces a local account purge per spec.md §6.
	Environment ServerEnvironment `env:"ENVIRONMENT"`
	// ProductionBaseURL is the base URL used when Environment is "production".
	ProductionBaseURL string `env:"PRODUCTION_BASE_URL"`
	// DevelopmentBaseURL is the base URL used when Environment is "development".
	DevelopmentBaseURL string `env:"DEVELOPMENT_BASE_URL"`
	// RequestTimeout bounds every individual HTTP request.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// BaseURL resolves Environment to the corresponding URL.
func (s Server) BaseURL() string {
	if s.Environment == EnvironmentProduction {
		return s.ProductionBaseURL
	}
	return s.DevelopmentBaseURL
}

// Storage groups local persistence settings.
type Storage struct {
	MetadataDB  MetadataDB  `envPrefix:"METADATA_DB_"`
	SecureStore SecureStore `envPrefix:"SECURE_STORE_"`
}

// MetadataDB holds the SQLite connection settings for the metadata store.
type MetadataDB struct {
	// DSN is the SQLite file path (or ":memory:") backing the metadata store.
	DSN string `env:"DSN"`
}

// SecureStore holds the file-path settings for the account secure store.
type SecureStore struct {
	// Path is the file the account blob is persisted to.
	Path string `env:"PATH"`
}

// Scheduler holds the debounce/throttle windows for the engine's event
// sources (spec.md §4.10).
type Scheduler struct {
	// DataChangedDebounce is window W1: the debounce applied to dataChanged
	// events.
	DataChangedDebounce time.Duration `env:"DATA_CHANGED_DEBOUNCE"`
	// AppLifecycleThrottle is window W2: the throttle applied to
	// appLifecycle events.
	AppLifecycleThrottle time.Duration `env:"APP_LIFECYCLE_THROTTLE"`
}

// Connect holds the connect-broker's bounded polling parameters.
type Connect struct {
	// PollInterval is the fixed interval between connect-code polls.
	PollInterval time.Duration `env:"POLL_INTERVAL"`
	// MaxPollAttempts bounds the poll retry budget (spec.md §5).
	MaxPollAttempts uint64 `env:"MAX_POLL_ATTEMPTS"`
}

// GetStructuredConfig loads, merges, and validates the engine configuration
// from environment variables, flags, and an optional JSON file, in that
// priority order (later sources win for non-zero fields).
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
