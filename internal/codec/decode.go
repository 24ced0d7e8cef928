// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package codec

import "github.com/syncvault/engine/models"

// ResponseFor returns the slice of a decoded GET/PATCH response envelope
// belonging to feature. Per spec.md §4.8, a feature absent from the
// envelope is treated as "no new data", signalled by ok == false rather
// than an error — a missing key is not a decode failure.
func ResponseFor(envelope map[string]models.RawFeatureResponse, feature string) (models.RawFeatureResponse, bool) {
	resp, ok := envelope[feature]
	return resp, ok
}
