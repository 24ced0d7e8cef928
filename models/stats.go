// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ServerErrorKind names the known server error codes that drive both retry
// policy and daily-stats buckets (spec.md §4.4, §4.12).
type ServerErrorKind string

const (
	ServerErrorValidation       ServerErrorKind = "validation_error"        // 400
	ServerErrorObjectLimit      ServerErrorKind = "object_limit_exceeded"    // 409
	ServerErrorRequestSizeLimit ServerErrorKind = "request_size_limit_exceeded" // 413
	ServerErrorTooManyRequests  ServerErrorKind = "too_many_requests"        // 418 | 429
)

// ServerErrorKindForStatus maps an HTTP status code to its known
// ServerErrorKind, and ok=false for status codes with no special bucket.
func ServerErrorKindForStatus(status int) (ServerErrorKind, bool) {
	switch status {
	case 400:
		return ServerErrorValidation, true
	case 409:
		return ServerErrorObjectLimit, true
	case 413:
		return ServerErrorRequestSizeLimit, true
	case 418, 429:
		return ServerErrorTooManyRequests, true
	default:
		return "", false
	}
}

// DailyStatsSnapshot is the rolling counters for one calendar day, flushed
// once via the DailyStats handler callback.
type DailyStatsSnapshot struct {
	Date               string                             `json:"date"`
	TotalSyncAttempts  int                                 `json:"total_sync_attempts"`
	FeatureErrorCounts map[string]map[ServerErrorKind]int `json:"feature_error_counts"`
}
