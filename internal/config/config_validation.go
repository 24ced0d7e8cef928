// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies every
// invariant the engine depends on at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.DeviceName == "" || cfg.App.DeviceType == "" {
		return ErrInvalidAppConfig
	}

	switch cfg.Server.Environment {
	case EnvironmentProduction:
		if cfg.Server.ProductionBaseURL == "" {
			return ErrInvalidServerConfig
		}
	case EnvironmentDevelopment:
		if cfg.Server.DevelopmentBaseURL == "" {
			return ErrInvalidServerConfig
		}
	default:
		return ErrInvalidServerConfig
	}
	if cfg.Server.RequestTimeout == 0 {
		return ErrInvalidServerConfig
	}

	if cfg.Storage.MetadataDB.DSN == "" || cfg.Storage.SecureStore.Path == "" {
		return ErrInvalidStorageConfig
	}

	if cfg.Scheduler.DataChangedDebounce == 0 || cfg.Scheduler.AppLifecycleThrottle == 0 {
		return ErrInvalidSchedulerConfig
	}

	if cfg.Connect.PollInterval == 0 || cfg.Connect.MaxPollAttempts == 0 {
		return ErrInvalidConnectConfig
	}

	return nil
}

// defaultConfig returns the built-in fallback values applied before any
// env/flag/JSON source is merged on top.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Server: Server{
			Environment:    EnvironmentProduction,
			RequestTimeout: defaultRequestTimeout,
		},
		Scheduler: Scheduler{
			DataChangedDebounce:  defaultDataChangedDebounce,
			AppLifecycleThrottle: defaultAppLifecycleThrottle,
		},
		Connect: Connect{
			PollInterval:    defaultConnectPollInterval,
			MaxPollAttempts: defaultConnectMaxPollAttempts,
		},
	}
}
