// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"flag"
	"time"
)

// ParseFlags parses the engine's command-line flags and returns the
// corresponding partial [StructuredConfig].
//
// Flags:
//
//	-device-name         human-readable device name
//	-device-type         device category (e.g. "desktop", "mobile")
//	-environment         "production" or "development"
//	-request-timeout     per-request HTTP timeout (e.g. "30s")
//	-metadata-dsn        metadata SQLite DSN
//	-secure-store-path   path to the account secure-store file
//	-data-changed-debounce   debounce window for dataChanged events
//	-app-lifecycle-throttle  throttle window for appLifecycle events
//	-connect-poll-interval   connect broker poll interval
//	-c/-config           JSON config file path
func ParseFlags() *StructuredConfig {
	var deviceName, deviceType, environment string
	var requestTimeout time.Duration
	var metadataDSN, secureStorePath string
	var dataChangedDebounce, appLifecycleThrottle time.Duration
	var connectPollInterval time.Duration
	var jsonConfigPath string

	flag.StringVar(&deviceName, "device-name", "", "Human-readable device name")
	flag.StringVar(&deviceType, "device-type", "", "Device category")
	flag.StringVar(&environment, "environment", "", "production or development")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Per-request HTTP timeout")
	flag.StringVar(&metadataDSN, "metadata-dsn", "", "Metadata SQLite DSN")
	flag.StringVar(&secureStorePath, "secure-store-path", "", "Secure store file path")
	flag.DurationVar(&dataChangedDebounce, "data-changed-debounce", 0, "dataChanged debounce window")
	flag.DurationVar(&appLifecycleThrottle, "app-lifecycle-throttle", 0, "appLifecycle throttle window")
	flag.DurationVar(&connectPollInterval, "connect-poll-interval", 0, "Connect broker poll interval")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			DeviceName: deviceName,
			DeviceType: deviceType,
		},
		Server: Server{
			Environment:    ServerEnvironment(environment),
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			MetadataDB:  MetadataDB{DSN: metadataDSN},
			SecureStore: SecureStore{Path: secureStorePath},
		},
		Scheduler: Scheduler{
			DataChangedDebounce:  dataChangedDebounce,
			AppLifecycleThrottle: appLifecycleThrottle,
		},
		Connect: Connect{
			PollInterval: connectPollInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}
