// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_PopulatesNestedFields(t *testing.T) {
	t.Setenv("APP_DEVICE_NAME", "laptop")
	t.Setenv("SERVER_ENVIRONMENT", "development")
	t.Setenv("SERVER_REQUEST_TIMEOUT", "15s")
	t.Setenv("STORAGE_METADATA_DB_DSN", "metadata.sqlite3")
	t.Setenv("CONNECT_MAX_POLL_ATTEMPTS", "10")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "laptop", cfg.App.DeviceName)
	assert.Equal(t, ServerEnvironment("development"), cfg.Server.Environment)
	assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "metadata.sqlite3", cfg.Storage.MetadataDB.DSN)
	assert.EqualValues(t, 10, cfg.Connect.MaxPollAttempts)
}

func TestParseEnv_ErrorOnBadDuration(t *testing.T) {
	t.Setenv("SERVER_REQUEST_TIMEOUT", "not-a-duration")

	err := parseEnv(&StructuredConfig{})
	require.Error(t, err)
}

func TestParseEnv_NoErrorOnEmptyEnvironment(t *testing.T) {
	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))
	assert.Empty(t, cfg.App.DeviceName)
}
