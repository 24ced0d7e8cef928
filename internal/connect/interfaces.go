// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package connect implements the Connect Broker (spec.md §4.6): the
// asymmetric "show a code, let the other side deliver the recovery key"
// device-onboarding handshake.
package connect

import (
	"context"
	"time"

	"github.com/syncvault/engine/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/connect_mock.go -package=mock

// PollResult is delivered on the channel returned by [Broker.StartPolling]
// once polling ends, whether by success, exhausted attempts, or
// cancellation via [Broker.StopPolling].
type PollResult struct {
	RecoveryKey models.RecoveryKey
	Err         error
}

// Broker is the Connect Broker contract.
type Broker interface {
	// PrepareForConnect generates a fresh connect keypair for deviceID and
	// returns both the local [models.ConnectInfo] (kept on this device)
	// and the shareable [models.ConnectCode] (displayed as QR/text).
	PrepareForConnect(deviceID string) (models.ConnectInfo, models.ConnectCode, error)

	// TransmitRecoveryKey is called by the existing, already-logged-in
	// device after it scans/receives code: it seals recovery to
	// code.PublicKey and POSTs the sealed payload to the server.
	TransmitRecoveryKey(ctx context.Context, code models.ConnectCode, recovery models.RecoveryKey) error

	// StartPolling begins polling for a sealed recovery payload addressed
	// to info.DeviceID, at a fixed interval, up to a bounded number of
	// attempts. Starting a new poll implicitly stops any poll already in
	// progress. The returned channel receives exactly one [PollResult]
	// and is then closed.
	StartPolling(info models.ConnectInfo) <-chan PollResult

	// StopPolling cancels any in-progress poll. Idempotent: calling it
	// when no poll is running is a no-op.
	StopPolling()
}

// Config bounds the poll loop's interval and attempt budget.
type Config struct {
	PollInterval    time.Duration
	MaxPollAttempts uint64
}
