// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements the client-side zero-knowledge cryptography
// layer for the sync engine.
//
// # Key hierarchy
//
//  1. primaryKey — 32-byte master secret derived from (password, userId)
//     using Argon2id. It is also the payload of the recovery code, so
//     logging in on a new device from a recovery key skips the password
//     step entirely.
//  2. passwordHash / stretchedPrimaryKey — two subkeys of primaryKey,
//     derived via an HKDF-based KDF keyed with fixed 8-byte contexts
//     "Password" (id 1) and "Stretchy" (id 2). passwordHash authenticates
//     to the server; stretchedPrimaryKey wraps the secretKey.
//  3. secretKey — random 256-bit key generated once at account creation.
//     It encrypts individual DataProvider fields and is itself wrapped
//     (protectedSecretKey) by stretchedPrimaryKey using an authenticated
//     symmetric box, so it can be stored server-side.
//
// # Connect handshake
//
// Device-to-device onboarding uses a separate asymmetric keypair
// (NaCl box): the new device publishes its public key out-of-band (the
// connect code), the existing device seals the recovery key to it, and
// only the new device's private key — which never leaves the device —
// can open the sealed box.
package crypto

import "github.com/syncvault/engine/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/crypter_mock.go -package=mock

// AccountKeys is the output of [Crypter.CreateAccountKeys].
type AccountKeys struct {
	PrimaryKey          []byte
	SecretKey           []byte
	ProtectedSecretKey  []byte
	PasswordHash        []byte
	StretchedPrimaryKey []byte
}

// LoginInfo is the output of [Crypter.ExtractLoginInfo].
type LoginInfo struct {
	UserID              string
	PrimaryKey          []byte
	PasswordHash        []byte
	StretchedPrimaryKey []byte
}

// Crypter is responsible for all client-side cryptography. It has no
// knowledge of the network, storage, or account bookkeeping — its sole
// responsibility is to derive, protect, and unwrap keys.
type Crypter interface {
	// CreateAccountKeys derives a fresh primaryKey from (password, userId),
	// splits it into passwordHash and stretchedPrimaryKey, generates a
	// random secretKey, and wraps it as protectedSecretKey. Returns
	// [models.CodeFailedToCreateAccountKeys]-wrapping errors (via the
	// caller) on any primitive failure.
	CreateAccountKeys(userID, password string) (AccountKeys, error)

	// ExtractLoginInfo reverses the derivation in CreateAccountKeys,
	// skipping the password step: primaryKey comes directly from the
	// recovery key.
	ExtractLoginInfo(recovery models.RecoveryKey) (LoginInfo, error)

	// ExtractSecretKey unwraps protectedSecretKey with stretchedPrimaryKey.
	ExtractSecretKey(protectedSecretKey, stretchedPrimaryKey []byte) ([]byte, error)

	// EncryptAndEncode serializes value to JSON, encrypts it with
	// secretKey, and returns the result as a base64 string.
	EncryptAndEncode(value any, secretKey []byte) (string, error)

	// DecodeAndDecrypt reverses EncryptAndEncode into target, which must be
	// a non-nil pointer.
	DecodeAndDecrypt(encoded string, secretKey []byte, target any) error

	// PrepareForConnect generates a fresh asymmetric keypair for device
	// onboarding. The public key is safe to share out-of-band; the private
	// key stays in the returned [models.ConnectInfo] and must never leave
	// the device.
	PrepareForConnect(deviceID string) (models.ConnectInfo, error)

	// Seal encrypts data for recipientPublicKey using a NaCl sealed box:
	// only the holder of the matching private key can open it.
	Seal(data []byte, recipientPublicKey []byte) ([]byte, error)

	// Unseal opens a sealed box produced by Seal using the local
	// keypair's private key.
	Unseal(ciphertext []byte, info models.ConnectInfo) ([]byte, error)
}
