// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{DeviceName: "desk-1", DeviceType: "desktop"},
		Server: Server{
			Environment:       EnvironmentProduction,
			ProductionBaseURL: "https://sync.example.com",
			RequestTimeout:    defaultRequestTimeout,
		},
		Storage: Storage{
			MetadataDB:  MetadataDB{DSN: "metadata.sqlite3"},
			SecureStore: SecureStore{Path: "account.sec"},
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

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.validate())
}

func TestValidate_MissingDeviceName(t *testing.T) {
	cfg := validConfig()
	cfg.App.DeviceName = ""
	assert.ErrorIs(t, cfg.validate(), ErrInvalidAppConfig)
}

func TestValidate_UnknownEnvironment(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Environment = "staging"
	assert.ErrorIs(t, cfg.validate(), ErrInvalidServerConfig)
}

func TestValidate_MissingProductionBaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.Server.ProductionBaseURL = ""
	assert.ErrorIs(t, cfg.validate(), ErrInvalidServerConfig)
}

func TestValidate_DevelopmentRequiresDevelopmentURL(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Environment = EnvironmentDevelopment
	cfg.Server.DevelopmentBaseURL = "http://localhost:8080"
	require.NoError(t, cfg.validate())
}

func TestValidate_ZeroRequestTimeout(t *testing.T) {
	cfg := validConfig()
	cfg.Server.RequestTimeout = 0
	assert.ErrorIs(t, cfg.validate(), ErrInvalidServerConfig)
}

func TestValidate_MissingMetadataDSN(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.MetadataDB.DSN = ""
	assert.ErrorIs(t, cfg.validate(), ErrInvalidStorageConfig)
}

func TestValidate_ZeroDebounce(t *testing.T) {
	cfg := validConfig()
	cfg.Scheduler.DataChangedDebounce = 0
	assert.ErrorIs(t, cfg.validate(), ErrInvalidSchedulerConfig)
}

func TestValidate_ZeroPollInterval(t *testing.T) {
	cfg := validConfig()
	cfg.Connect.PollInterval = 0
	assert.ErrorIs(t, cfg.validate(), ErrInvalidConnectConfig)
}

func TestDefaultConfig_HasSaneDefaults(t *testing.T) {
	cfg := defaultConfig()
	assert.Equal(t, EnvironmentProduction, cfg.Server.Environment)
	assert.NotZero(t, cfg.Server.RequestTimeout)
	assert.NotZero(t, cfg.Connect.MaxPollAttempts)
}

func TestBaseURL_Production(t *testing.T) {
	s := Server{Environment: EnvironmentProduction, ProductionBaseURL: "https://prod"}
	assert.Equal(t, "https://prod", s.BaseURL())
}

func TestBaseURL_Development(t *testing.T) {
	s := Server{Environment: EnvironmentDevelopment, DevelopmentBaseURL: "http://dev"}
	assert.Equal(t, "http://dev", s.BaseURL())
}
