// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package facade implements the top-level Facade (spec.md §4.11): the
// composition root a host application talks to. It owns the SyncQueue's
// lifecycle, tying it to the local account's auth state, and republishes
// auth state, feature flags, and sync-in-progress to the host.
package facade

import (
	"context"

	"github.com/syncvault/engine/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/facade_mock.go -package=mock

// Facade is the engine's top-level contract.
type Facade interface {
	// CreateAccount signs up a brand-new account on this device and starts
	// syncing. Returns the one-time recovery key the host must show the
	// user.
	CreateAccount(ctx context.Context, deviceName, deviceType string) (models.RecoveryKey, error)

	// Login authenticates an existing account via recoveryKey on this
	// device and starts an initial sync.
	Login(ctx context.Context, recoveryKey models.RecoveryKey, deviceName, deviceType string) error

	// RemoteConnect begins the Connect Broker handshake as the new,
	// unauthenticated device: generates a connect code and polls for the
	// existing device to deliver a sealed recovery key, then logs in with
	// it automatically on success.
	RemoteConnect(ctx context.Context, deviceName, deviceType string) (models.ConnectCode, <-chan error, error)

	// TransmitRecoveryKey is called by the already-logged-in device after
	// it obtains the new device's connect code out-of-band.
	TransmitRecoveryKey(ctx context.Context, code models.ConnectCode) error

	// Disconnect logs out this device and clears the local account.
	Disconnect(ctx context.Context) error

	// DisconnectDevice revokes another device's access without affecting
	// this device's session.
	DisconnectDevice(ctx context.Context, deviceID string) error

	// FetchDevices returns the account's registered device list.
	FetchDevices(ctx context.Context) ([]models.Device, error)

	// UpdateDeviceName re-authenticates under a new device name.
	UpdateDeviceName(ctx context.Context, deviceName string) error

	// DeleteAccount deletes the account server-side and clears local state.
	DeleteAccount(ctx context.Context) error

	// UpdateServerEnvironment purges the local account and logs this
	// device out, exactly as Disconnect does. The environment argument is
	// not applied: the transport client keeps the base URL it was built
	// with.
	UpdateServerEnvironment(ctx context.Context, environment string) error

	// SetFeatureFlags resolves cfg and publishes the resulting level on
	// SyncSupportLevel. The Facade's own methods are not gated on it.
	SetFeatureFlags(cfg models.RemotePrivacyConfig)

	// NotifyDataChanged forwards a local data-changed event to the
	// Scheduler.
	NotifyDataChanged()

	// NotifyAppLifecycle forwards an app-lifecycle event to the Scheduler.
	NotifyAppLifecycle()

	// AuthState publishes the current [models.AuthState] on every
	// transition.
	AuthState() <-chan models.AuthState

	// IsSyncInProgress publishes sync start/stop, forwarded from the
	// SyncQueue while one is active.
	IsSyncInProgress() <-chan bool

	// SyncSupportLevel publishes the resolved [models.SyncSupportLevel] on
	// every SetFeatureFlags call.
	SyncSupportLevel() <-chan models.SyncSupportLevel

	// UnauthenticatedWhileLoggedIn publishes once per 401-triggered account
	// teardown. Any other API error the SyncQueue reports is republished
	// here unchanged, without a teardown.
	UnauthenticatedWhileLoggedIn() <-chan error

	// Close tears down the Facade's background goroutines. The Facade is
	// unusable afterward.
	Close()
}
