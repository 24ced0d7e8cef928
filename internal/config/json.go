// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the JSON-specific representation of the engine
// configuration. It mirrors [StructuredConfig] but uses JSON struct tags and
// the custom [Duration] type so that duration values can be expressed as
// human-readable strings (e.g. "1h", "30s") in the config file.
//
// After decoding, the values are mapped into a [StructuredConfig] by
// [parseJSON].
type StructuredJSONConfig struct {
	App struct {
		Version    string `json:"version"`
		DeviceName string `json:"device_name"`
		DeviceType string `json:"device_type"`
	} `json:"app,omitempty"`

	Server struct {
		Environment        string   `json:"environment"`
		ProductionBaseURL  string   `json:"production_base_url"`
		DevelopmentBaseURL string   `json:"development_base_url"`
		RequestTimeout     Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Storage struct {
		MetadataDB struct {
			DSN string `json:"dsn"`
		} `json:"metadata_db,omitempty"`
		SecureStore struct {
			Path string `json:"path"`
		} `json:"secure_store,omitempty"`
	} `json:"storage,omitempty"`

	Scheduler struct {
		DataChangedDebounce  Duration `json:"data_changed_debounce"`
		AppLifecycleThrottle Duration `json:"app_lifecycle_throttle"`
	} `json:"scheduler,omitempty"`

	Connect struct {
		PollInterval    Duration `json:"poll_interval"`
		MaxPollAttempts uint64   `json:"max_poll_attempts"`
	} `json:"connect,omitempty"`
}

// parseJSON opens the JSON file at jsonFilePath, decodes it into a
// [StructuredJSONConfig], and maps the result into a [StructuredConfig].
//
// JSONFilePath is intentionally left empty in the returned config so that
// the path is not re-processed during subsequent merge steps.
func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Version:    jsonCfg.App.Version,
			DeviceName: jsonCfg.App.DeviceName,
			DeviceType: jsonCfg.App.DeviceType,
		},
		Server: Server{
			Environment:        ServerEnvironment(jsonCfg.Server.Environment),
			ProductionBaseURL:  jsonCfg.Server.ProductionBaseURL,
			DevelopmentBaseURL: jsonCfg.Server.DevelopmentBaseURL,
			RequestTimeout:     time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Storage: Storage{
			MetadataDB:  MetadataDB{DSN: jsonCfg.Storage.MetadataDB.DSN},
			SecureStore: SecureStore{Path: jsonCfg.Storage.SecureStore.Path},
		},
		Scheduler: Scheduler{
			DataChangedDebounce:  time.Duration(jsonCfg.Scheduler.DataChangedDebounce),
			AppLifecycleThrottle: time.Duration(jsonCfg.Scheduler.AppLifecycleThrottle),
		},
		Connect: Connect{
			PollInterval:    time.Duration(jsonCfg.Connect.PollInterval),
			MaxPollAttempts: jsonCfg.Connect.MaxPollAttempts,
		},
		JSONFilePath: "", // intentionally cleared to prevent re-processing
	}

	return cfg, nil
}

// Duration is a thin wrapper around [time.Duration] that adds JSON
// unmarshaling support for human-readable duration strings such as "1h",
// "30m", or "15s", in addition to raw nanosecond integers.
type Duration time.Duration

// UnmarshalJSON implements [json.Unmarshaler] for Duration.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

// MarshalJSON implements [json.Marshaler] for Duration, serialized via
// [time.Duration.String] (e.g. "1h0m0s").
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
