// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/syncvault/engine/internal/logger"
	"github.com/syncvault/engine/models"
)

// getSync handles GET sync/{csv}?since=t1,t2,...,tN, matching
// codec.BuildGetPath's wire format: one timestamp per feature, in CSV
// order, "0" standing in for "never synced".
func (s *httpAPI) getSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)
	userID, _ := userIDFromContext(ctx)

	features := strings.Split(chi.URLParam(r, "features"), ",")
	timestamps := strings.Split(r.URL.Query().Get("since"), ",")

	envelope := make(map[string]models.RawFeatureResponse, len(features))
	for i, feature := range features {
		since := "0"
		if i < len(timestamps) {
			since = timestamps[i]
		}

		resp, err := s.store.FetchChanges(ctx, userID, feature, since)
		if err != nil {
			log.Err(err).Str("feature", feature).Msg("fetch changes failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		envelope[feature] = resp
	}

	writeJSON(w, envelope, http.StatusOK)
}

// patchSync handles PATCH sync/data. The body is one JSON object keyed by
// feature name (each value a [models.FeaturePatchBody]) plus a top-level
// "client_timestamp" string, per codec.BuildPatchBody. withGZip has already
// transparently decompressed the body if the client compressed it.
func (s *httpAPI) patchSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)
	userID, _ := userIDFromContext(ctx)

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	delete(raw, "client_timestamp")

	now := time.Now().UTC()
	envelope := make(map[string]models.RawFeatureResponse, len(raw))

	for feature, encoded := range raw {
		var body models.FeaturePatchBody
		if err := json.Unmarshal(encoded, &body); err != nil {
			http.Error(w, "invalid patch body for "+feature, http.StatusBadRequest)
			return
		}

		resp, err := s.store.ApplyPatch(ctx, userID, feature, body.Updates, body.ModifiedSince, now)
		if err != nil {
			log.Err(err).Str("feature", feature).Msg("apply patch failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		envelope[feature] = resp
	}

	writeJSON(w, envelope, http.StatusOK)
}
