// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package account implements the Account Manager (spec.md §4.5):
// signup/login/refresh-token/logout/delete-account/fetch-devices, built on
// top of the Crypter key-derivation hierarchy and the HTTP Client.
//
// A 401 from any server call is never swallowed here — the underlying
// [models.SyncError] (with StatusCode set) propagates unchanged so the
// Facade can recognise it and tear down the local account, per spec.md
// §4.5's "any call returning 401 must propagate a recoverable
// Unauthenticated" requirement.
package account

import (
	"context"

	"github.com/syncvault/engine/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/account_mock.go -package=mock

// Manager is the Account Manager contract.
type Manager interface {
	// CreateAccount generates a random userId and password, derives the
	// account key hierarchy, signs up on the server, and returns the new
	// Account (state active, token set) plus the one and only RecoveryKey
	// a host must present to the user for safekeeping.
	CreateAccount(ctx context.Context, deviceName, deviceType string) (models.Account, models.RecoveryKey, error)

	// Login derives keys from recoveryKey, authenticates against the
	// server, and returns an Account in state addingNewDevice (so the
	// next sync cycle performs an initial sync) plus the account's
	// registered device list.
	Login(ctx context.Context, recoveryKey models.RecoveryKey, deviceName, deviceType string) (models.Account, []models.Device, error)

	// RefreshToken re-authenticates account's existing device under a
	// (possibly updated) deviceName, returning an Account with a fresh
	// token. AuthState and keys are preserved from account.
	RefreshToken(ctx context.Context, account models.Account, deviceName string) (models.Account, error)

	// Logout revokes token for deviceID server-side.
	Logout(ctx context.Context, deviceID, token string) error

	// DeleteAccount deletes account server-side, invalidating every
	// device's token.
	DeleteAccount(ctx context.Context, account models.Account) error

	// FetchDevices returns account's ordered device list.
	FetchDevices(ctx context.Context, account models.Account) ([]models.Device, error)
}
