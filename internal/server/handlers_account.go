// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/syncvault/engine/internal/logger"
	"github.com/syncvault/engine/models"
)

// logoutDevice handles POST sync/logout-device: revokes one device's
// registration, which is sufficient to invalidate it since every future
// request from that device would carry a token for a deviceID the server
// no longer recognises as registered.
func (s *httpAPI) logoutDevice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	userID, _ := userIDFromContext(ctx)

	var req models.LogoutDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	if err := s.store.DeleteDevice(ctx, userID, req.DeviceID); err != nil {
		if errors.Is(err, ErrDeviceNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Err(err).Msg("delete device failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// deleteAccount handles DELETE sync/account.
func (s *httpAPI) deleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	userID, _ := userIDFromContext(ctx)

	if err := s.store.DeleteUser(ctx, userID); err != nil {
		log.Err(err).Msg("delete user failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// fetchDevices handles GET sync/devices.
func (s *httpAPI) fetchDevices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	userID, _ := userIDFromContext(ctx)

	devices, err := s.store.ListDevices(ctx, userID)
	if err != nil {
		log.Err(err).Msg("list devices failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeJSON(w, devices, http.StatusOK)
}
