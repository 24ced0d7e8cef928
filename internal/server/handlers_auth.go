// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/syncvault/engine/internal/logger"
	"github.com/syncvault/engine/models"
)

// signup handles POST sync/signup. hashedPassword and protectedEncryptionKey
// arrive already derived/wrapped client-side per spec.md §4.1 — the server
// never sees a plaintext password or an unwrapped key.
func (s *httpAPI) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid signup JSON")
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	err := s.store.CreateUser(ctx, StoredUser{
		UserID:                 req.UserID,
		HashedPassword:         req.HashedPassword,
		ProtectedEncryptionKey: req.ProtectedEncryptionKey,
	})
	if err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		log.Err(err).Msg("create user failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if err := s.store.CreateDevice(ctx, req.UserID, models.Device{
		DeviceID: req.DeviceID, DeviceName: req.DeviceName, DeviceType: req.DeviceType,
	}); err != nil {
		log.Err(err).Msg("register device failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	token, err := issueToken(s.cfg.JWTSecret, s.cfg.TokenTTL, req.UserID, req.DeviceID, time.Now())
	if err != nil {
		log.Err(err).Msg("issue token failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeJSON(w, models.SignupResponse{Token: token}, http.StatusOK)
}

// login handles POST sync/login.
func (s *httpAPI) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid login JSON")
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	user, err := s.store.FindUser(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		log.Err(err).Msg("find user failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if subtle.ConstantTimeCompare([]byte(user.HashedPassword), []byte(req.HashedPassword)) != 1 {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	if err := s.store.CreateDevice(ctx, req.UserID, models.Device{
		DeviceID: req.DeviceID, DeviceName: req.DeviceName, DeviceType: req.DeviceType,
	}); err != nil {
		log.Err(err).Msg("register device failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	devices, err := s.store.ListDevices(ctx, req.UserID)
	if err != nil {
		log.Err(err).Msg("list devices failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	token, err := issueToken(s.cfg.JWTSecret, s.cfg.TokenTTL, req.UserID, req.DeviceID, time.Now())
	if err != nil {
		log.Err(err).Msg("issue token failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeJSON(w, models.LoginResponse{
		Token:                  token,
		ProtectedEncryptionKey: user.ProtectedEncryptionKey,
		Devices:                devices,
	}, http.StatusOK)
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
