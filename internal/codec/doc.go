// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package codec implements the Request/Response Codec (spec.md §4.8): it
// builds the GET path and PATCH body the HTTP Client sends, and gives the
// SyncQueue a way to look up each feature's slice of a decoded response
// envelope.
//
// Payload compression threshold [Open Question resolved]: spec.md §9
// leaves the exact byte threshold for gzip compression unspecified beyond
// "must be ≤ 32 KiB". CompressionThresholdBytes is set to 8 KiB: large
// enough that the common case (a single small feature update) skips gzip's
// fixed per-request overhead, small enough that any multi-item batch still
// compresses before hitting a server-side size limit.
package codec

// CompressionThresholdBytes is the PATCH body size, in bytes, above which
// the body is gzip-compressed before being sent. See the package doc
// comment for the rationale behind this specific value.
const CompressionThresholdBytes = 8 * 1024
