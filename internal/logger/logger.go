// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger provides a thin wrapper around zerolog.Logger shared by
// every component of the sync engine.
//
// Logger embeds zerolog.Logger so all standard zerolog methods (Debug, Info,
// Warn, Error, ...) are available directly. Components should accept *Logger
// by pointer and obtain request- or operation-scoped loggers via
// [FromContext] or [Logger.GetChildLogger].
package logger

import (
	"context"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

// NewEngineLogger constructs a production-ready *Logger for the given role
// label (e.g. "syncqueue", "account", "connect-broker").
//
// The logger is configured with:
//   - global log level set to Debug;
//   - a "role" field identifying the emitting component;
//   - a "time" timestamp field on every entry;
//   - a "func" caller field recording the fully-qualified function name.
//
// Output is written to os.Stdout in JSON format.
func NewEngineLogger(role string) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"

	l := zerolog.New(os.Stdout).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{l}
}

// Nop returns a *Logger that discards all log output. Intended for tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a new *Logger inheriting all fields of the
// receiver, safe to enrich independently.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// FromContext extracts the zerolog.Logger attached to ctx (via zerolog's
// WithContext helper) and returns it as a *Logger. If none was attached,
// zerolog's global logger is returned, so this never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
