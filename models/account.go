// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// AuthState describes the lifecycle stage of the locally persisted [Account].
//
// token == nil implies AuthState is Initializing or Inactive; Active implies
// both the account's keys and its bearer token are present.
type AuthState int

const (
	// AuthStateInitializing is the transient state between "no account yet"
	// and the first successful signup/login response.
	AuthStateInitializing AuthState = iota
	// AuthStateInactive means no account is usable; the engine is dormant.
	AuthStateInactive
	// AuthStateActive means the account has a token and can sync normally.
	AuthStateActive
	// AuthStateAddingNewDevice means a login via recovery key succeeded but
	// the device still owes the account an initial sync pass.
	AuthStateAddingNewDevice
)

// String implements fmt.Stringer.
func (s AuthState) String() string {
	switch s {
	case AuthStateInitializing:
		return "initializing"
	case AuthStateInactive:
		return "inactive"
	case AuthStateActive:
		return "active"
	case AuthStateAddingNewDevice:
		return "addingNewDevice"
	default:
		return fmt.Sprintf("authState(%d)", int(s))
	}
}

// Account is the single persisted identity of the logged-in device. At most
// one Account exists per process; it is created by signup or login, mutated
// only by the facade, and destroyed on disconnect, delete, or a 401 purge.
type Account struct {
	DeviceID   string    `json:"device_id"`
	DeviceName string    `json:"device_name"`
	DeviceType string    `json:"device_type"`
	UserID     string    `json:"user_id"`
	PrimaryKey []byte    `json:"primary_key"`
	SecretKey  []byte    `json:"secret_key"`
	Token      string    `json:"token,omitempty"`
	AuthState  AuthState `json:"auth_state"`
}

// Active reports whether the account has the keys and token required to
// perform an authenticated sync cycle.
func (a Account) Active() bool {
	return a.AuthState == AuthStateActive && a.Token != "" && len(a.PrimaryKey) > 0 && len(a.SecretKey) > 0
}

// Device describes one member of the account's device list, as returned by
// [spec.md] §4.5 fetch_devices.
type Device struct {
	DeviceID   string `json:"device_id"`
	DeviceName string `json:"device_name"`
	DeviceType string `json:"device_type"`
}
