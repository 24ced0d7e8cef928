// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package codec

import (
	"encoding/json"
	"strings"

	"github.com/syncvault/engine/models"
)

// BuildGetPath builds the relative path (CSV feature list plus a `since=`
// query string) for GET sync/{csv}. Timestamps are read from since, keyed
// by feature name; a feature with no entry (or an empty one) is represented
// as "0", never omitted, matching spec.md §4.8.
func BuildGetPath(features []string, since map[string]string) (string, error) {
	if len(features) == 0 {
		return "", models.NewSyncError(models.CodeNoFeaturesSpecified, "no features to fetch", nil)
	}

	timestamps := make([]string, len(features))
	for i, f := range features {
		ts := since[f]
		if ts == "" {
			ts = "0"
		}
		timestamps[i] = ts
	}

	return strings.Join(features, ",") + "?since=" + strings.Join(timestamps, ","), nil
}

// BuildPatchBody builds the JSON body for PATCH sync/data: one entry per
// feature in perFeature, plus a top-level "client_timestamp" field.
func BuildPatchBody(clientTimestamp string, perFeature map[string]models.FeaturePatchBody) ([]byte, error) {
	if len(perFeature) == 0 {
		return nil, models.NewSyncError(models.CodeNoFeaturesSpecified, "no features to patch", nil)
	}

	raw := make(map[string]json.RawMessage, len(perFeature)+1)
	for name, body := range perFeature {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, models.NewSyncError(models.CodeUnableToEncodeRequestBody, "encode feature patch body for "+name, err)
		}
		raw[name] = encoded
	}

	tsEncoded, err := json.Marshal(clientTimestamp)
	if err != nil {
		return nil, models.NewSyncError(models.CodeUnableToEncodeRequestBody, "encode client timestamp", err)
	}
	raw["client_timestamp"] = tsEncoded

	out, err := json.Marshal(raw)
	if err != nil {
		return nil, models.NewSyncError(models.CodeUnableToEncodeRequestBody, "encode patch body", err)
	}
	return out, nil
}

// ShouldCompress reports whether a PATCH body of this size should be
// gzip-compressed before sending, per CompressionThresholdBytes.
func ShouldCompress(body []byte) bool {
	return len(body) > CompressionThresholdBytes
}
