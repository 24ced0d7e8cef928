// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package stats implements DailyStats (spec.md §4.12): mutex-guarded
// per-local-calendar-day counters of sync attempts and known server error
// kinds, flushed once per day via a handler callback.
package stats

import "github.com/syncvault/engine/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/stats_mock.go -package=mock

// FlushFunc is called once, synchronously, when a new calendar day's
// first event forces the previous day's snapshot to flush. [ADDED]
// signature per spec.md §4.12's "flushes via a handler callback".
type FlushFunc func(date string, snapshot models.DailyStatsSnapshot)

// DailyStats is the DailyStats contract.
type DailyStats interface {
	// RecordSyncAttempt increments the current day's total sync attempt
	// counter, regardless of outcome.
	RecordSyncAttempt()

	// RecordServerError increments the current day's counter for feature's
	// bucket matching status, if status maps to a known
	// [models.ServerErrorKind]; unmapped status codes are not counted.
	RecordServerError(feature string, status int)

	// Snapshot returns a copy of the current day's counters without
	// flushing or resetting them.
	Snapshot() models.DailyStatsSnapshot
}
