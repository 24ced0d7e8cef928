// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package transport implements the HTTP Client (spec.md §4.4): typed,
// authenticated requests against the sync server, JSON coding, optional
// gzip request compression, and status-code-to-[models.SyncError] mapping.
//
// Building the request path/body for a sync cycle is the Request/Response
// Codec's job (internal/codec); this package only knows how to move bytes
// over HTTP and authenticate them.
package transport

import (
	"context"

	"github.com/syncvault/engine/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/transport_mock.go -package=mock

// Client is the HTTP Client contract.
type Client interface {
	// SetToken stores the bearer token used for every subsequent
	// authenticated request. An empty token removes authentication.
	SetToken(token string)

	// Token returns the bearer token currently held, or "" if none.
	Token() string

	// Signup issues POST sync/signup.
	Signup(ctx context.Context, req models.SignupRequest) (models.SignupResponse, error)

	// Login issues POST sync/login.
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error)

	// LogoutDevice issues POST sync/logout-device. Authenticated.
	LogoutDevice(ctx context.Context, req models.LogoutDeviceRequest) error

	// DeleteAccount issues an authenticated account deletion request.
	DeleteAccount(ctx context.Context) error

	// FetchDevices issues an authenticated request for the account's
	// registered device list.
	FetchDevices(ctx context.Context) ([]models.Device, error)

	// GetSync issues GET sync/{path}, where path already carries the CSV
	// feature list and the `since=` query string built by the codec.
	// Authenticated. The response envelope is keyed by feature name.
	GetSync(ctx context.Context, path string) (map[string]models.RawFeatureResponse, error)

	// PatchSync issues PATCH sync/data with the given pre-encoded JSON body.
	// If gzipped is true, body is assumed to already be gzip-compressed and
	// Content-Encoding: gzip is set. Authenticated.
	PatchSync(ctx context.Context, body []byte, gzipped bool) (map[string]models.RawFeatureResponse, error)

	// PostConnect issues POST sync/connect, delivering a sealed recovery
	// payload to the device identified by payload.DeviceID.
	PostConnect(ctx context.Context, payload models.ConnectPayload) error

	// GetConnect polls GET sync/connect/{deviceId}. Returns (nil, nil) if no
	// payload has arrived yet (HTTP 404); returns the payload once posted.
	GetConnect(ctx context.Context, deviceID string) (*models.ConnectPayload, error)
}
