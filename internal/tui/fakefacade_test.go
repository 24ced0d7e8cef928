// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"

	"github.com/syncvault/engine/models"
)

// fakeFacade is a hand-rolled facade.Facade test double: each method
// returns whatever the test pre-loaded, and the four publish channels are
// plain buffered channels the test can feed directly. Only the page
// models' direct collaborators are exercised here; forward's wiring to a
// live facade is the TUI type's concern, not any individual page's.
type fakeFacade struct {
	createRecovery models.RecoveryKey
	createErr      error

	loginErr error

	connectCode models.ConnectCode
	connectDone chan error
	connectErr  error

	transmitErr error

	devices    []models.Device
	devicesErr error

	disconnectErr error

	authState     chan models.AuthState
	syncing       chan bool
	supportLevel  chan models.SyncSupportLevel
	unauthenticated chan error
}

func newFakeFacade() *fakeFacade {
	return &fakeFacade{
		authState:       make(chan models.AuthState, 4),
		syncing:         make(chan bool, 4),
		supportLevel:    make(chan models.SyncSupportLevel, 4),
		unauthenticated: make(chan error, 4),
	}
}

func (f *fakeFacade) CreateAccount(context.Context, string, string) (models.RecoveryKey, error) {
	return f.createRecovery, f.createErr
}

func (f *fakeFacade) Login(context.Context, models.RecoveryKey, string, string) error {
	return f.loginErr
}

func (f *fakeFacade) RemoteConnect(context.Context, string, string) (models.ConnectCode, <-chan error, error) {
	if f.connectErr != nil {
		return models.ConnectCode{}, nil, f.connectErr
	}
	if f.connectDone == nil {
		f.connectDone = make(chan error, 1)
	}
	return f.connectCode, f.connectDone, nil
}

func (f *fakeFacade) TransmitRecoveryKey(context.Context, models.ConnectCode) error {
	return f.transmitErr
}

func (f *fakeFacade) Disconnect(context.Context) error { return f.disconnectErr }

func (f *fakeFacade) DisconnectDevice(context.Context, string) error { return nil }

func (f *fakeFacade) FetchDevices(context.Context) ([]models.Device, error) {
	return f.devices, f.devicesErr
}

func (f *fakeFacade) UpdateDeviceName(context.Context, string) error { return nil }

func (f *fakeFacade) DeleteAccount(context.Context) error { return nil }

func (f *fakeFacade) UpdateServerEnvironment(context.Context, string) error { return nil }

func (f *fakeFacade) SetFeatureFlags(models.RemotePrivacyConfig) {}

func (f *fakeFacade) NotifyDataChanged() {}

func (f *fakeFacade) NotifyAppLifecycle() {}

func (f *fakeFacade) AuthState() <-chan models.AuthState { return f.authState }

func (f *fakeFacade) IsSyncInProgress() <-chan bool { return f.syncing }

func (f *fakeFacade) SyncSupportLevel() <-chan models.SyncSupportLevel { return f.supportLevel }

func (f *fakeFacade) UnauthenticatedWhileLoggedIn() <-chan error { return f.unauthenticated }

func (f *fakeFacade) Close() {}
