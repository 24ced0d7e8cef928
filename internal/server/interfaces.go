// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"time"

	"github.com/syncvault/engine/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_mock.go -package=mock

// Server defines the lifecycle contract for the reference HTTP server.
//
// Implementations are expected to block in RunServer until shutdown is
// requested and to release resources in Shutdown.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer()

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}

// StoredUser is one persisted "users" row.
type StoredUser struct {
	UserID                 string
	HashedPassword         string
	ProtectedEncryptionKey string
}

// Store is the reference server's persistence contract. The PostgreSQL
// implementation in postgres.go is the only one shipped, but handlers only
// ever depend on this interface so tests can substitute a fake.
type Store interface {
	// CreateUser inserts a brand-new user row. Returns [ErrUserAlreadyExists]
	// on a unique-constraint violation of user_id.
	CreateUser(ctx context.Context, user StoredUser) error

	// FindUser returns the persisted row for userID, or [ErrUserNotFound].
	FindUser(ctx context.Context, userID string) (StoredUser, error)

	// DeleteUser removes userID and, via ON DELETE CASCADE, every device
	// and feature entry that belongs to it. connect_payloads rows have no
	// foreign key to users and are not removed.
	DeleteUser(ctx context.Context, userID string) error

	// CreateDevice registers deviceID under userID. Upserts on conflict so
	// logging in again from the same device is idempotent.
	CreateDevice(ctx context.Context, userID string, device models.Device) error

	// ListDevices returns every device registered under userID.
	ListDevices(ctx context.Context, userID string) ([]models.Device, error)

	// DeleteDevice removes one device registration. Returns
	// [ErrDeviceNotFound] if deviceID was not registered under userID.
	DeleteDevice(ctx context.Context, userID, deviceID string) error

	// ApplyPatch upserts each entry in updates for featureName under
	// userID, stamping modified_at with now, and returns every entry
	// (including the just-applied ones) modified strictly after
	// modifiedSince.
	ApplyPatch(ctx context.Context, userID, featureName string, updates []models.Syncable, modifiedSince string, now time.Time) (models.RawFeatureResponse, error)

	// FetchChanges returns every entry for featureName under userID
	// modified strictly after since.
	FetchChanges(ctx context.Context, userID, featureName, since string) (models.RawFeatureResponse, error)

	// PutConnectPayload stores a sealed recovery payload for deviceID,
	// replacing any payload already pending for it.
	PutConnectPayload(ctx context.Context, deviceID, sealedRecovery string) error

	// TakeConnectPayload returns and deletes the pending payload for
	// deviceID. Returns (nil, nil) if none is pending — the payload is
	// ephemeral and consumed by exactly one recipient per spec.md §4.1.
	TakeConnectPayload(ctx context.Context, deviceID string) (*models.ConnectPayload, error)

	// Close releases the underlying database connection(s).
	Close() error
}
