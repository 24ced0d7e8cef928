// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server implements the reference sync server: the HTTP-facing
// counterpart to internal/transport.Client. It is not part of the engine
// itself — spec.md's modules all describe client-side behaviour — but a
// spec for a sync protocol is incomplete without something to sync
// against, so this package provides the endpoints internal/transport
// dials: signup/login/logout-device, the GET/PATCH sync envelope, device
// management, account deletion, and the connect handshake's payload
// relay.
package server
