// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/syncvault/engine/internal/logger"
	"github.com/syncvault/engine/models"
)

// postConnect handles POST sync/connect: the already-logged-in device
// delivers a sealed recovery payload addressed to the new device's
// connect-handshake deviceID. Unauthenticated by design — the new device
// has no token yet; the sealed payload itself is the only secret in play.
func (s *httpAPI) postConnect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	var payload models.ConnectPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	if err := s.store.PutConnectPayload(ctx, payload.DeviceID, payload.SealedRecovery); err != nil {
		log.Err(err).Msg("put connect payload failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// getConnect handles GET sync/connect/{deviceId}, polled per spec.md §4.6
// until a sealed payload appears. 404 means "nothing pending yet" to the
// polling client, not an error.
func (s *httpAPI) getConnect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	deviceID := chi.URLParam(r, "deviceId")

	payload, err := s.store.TakeConnectPayload(ctx, deviceID)
	if err != nil {
		log.Err(err).Msg("take connect payload failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if payload == nil {
		http.Error(w, "no connect payload pending", http.StatusNotFound)
		return
	}

	writeJSON(w, payload, http.StatusOK)
}
