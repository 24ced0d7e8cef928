// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/syncvault/engine/models"

// navigateTo is a Bubble Tea message sent by any page model to instruct
// [rootModel] to switch the active page.
type navigateTo struct {
	// page is the key of the target page in the rootModel pages map.
	page string
	// payload is optionally dispatched to the new page immediately after
	// navigation. Nil when no initial data is required.
	payload any
}

// authStateMsg carries a [models.AuthState] transition published by the
// Facade, forwarded into the running program by [forward].
type authStateMsg models.AuthState

// syncProgressMsg carries a sync start/stop transition.
type syncProgressMsg bool

// supportLevelMsg carries a resolved [models.SyncSupportLevel].
type supportLevelMsg models.SyncSupportLevel

// unauthenticatedMsg carries the error from a 401-triggered account
// teardown that happened while the host believed it was still logged in.
type unauthenticatedMsg struct {
	err error
}

// createAccountResult is produced by the async create-account command.
type createAccountResult struct {
	err         error
	recoveryKey string
}

// loginResult is produced by the async recovery-key login command.
type loginResult struct {
	err error
}

// connectStartedResult is produced once [facade.Facade.RemoteConnect] hands
// back this device's connect code and a channel that resolves when the
// handshake completes.
type connectStartedResult struct {
	err         error
	connectCode string
	done        <-chan error
}

// connectFinishedMsg is produced when the channel returned alongside
// connectStartedResult fires, reporting whether the handshake succeeded.
type connectFinishedMsg struct {
	err error
}

// transmitResult is produced by the async transmit-recovery-key command,
// run on the already-logged-in device after it learns the new device's
// connect code out-of-band.
type transmitResult struct {
	err error
}

// devicesLoadedMsg is produced by the async device-list fetch.
type devicesLoadedMsg struct {
	err     error
	devices []models.Device
}

// copiedMsg confirms a clipboard write completed.
type copiedMsg struct{}

// clearStatusMsg clears a transient status line after a short delay.
type clearStatusMsg struct{}
