// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// RecoveryKey carries the two values a new device needs to join an existing
// account without a central directory lookup: the user identifier and the
// primary key the whole key hierarchy is derived from. It is serialized as
// base64 of a JSON envelope keyed "recovery", matching the companion PDF
// rendering (an external collaborator, out of scope here) that embeds the
// same string as a QR code.
type RecoveryKey struct {
	UserID     string
	PrimaryKey []byte
}

type recoveryEnvelope struct {
	Recovery recoveryPayload `json:"recovery"`
}

type recoveryPayload struct {
	UserID     string `json:"user_id"`
	PrimaryKey string `json:"primary_key"`
}

// Encode renders the recovery code string: base64( {"recovery":{...}} ).
func (r RecoveryKey) Encode() (string, error) {
	envelope := recoveryEnvelope{Recovery: recoveryPayload{
		UserID:     r.UserID,
		PrimaryKey: base64.StdEncoding.EncodeToString(r.PrimaryKey),
	}}

	raw, err := json.Marshal(envelope)
	if err != nil {
		return "", fmt.Errorf("marshal recovery envelope: %w", err)
	}

	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodeRecoveryKey parses the base64/JSON form produced by [RecoveryKey.Encode].
func DecodeRecoveryKey(code string) (RecoveryKey, error) {
	raw, err := base64.StdEncoding.DecodeString(code)
	if err != nil {
		return RecoveryKey{}, fmt.Errorf("decode recovery code base64: %w", err)
	}

	var envelope recoveryEnvelope
	if err = json.Unmarshal(raw, &envelope); err != nil {
		return RecoveryKey{}, fmt.Errorf("decode recovery code json: %w", err)
	}

	primaryKey, err := base64.StdEncoding.DecodeString(envelope.Recovery.PrimaryKey)
	if err != nil {
		return RecoveryKey{}, fmt.Errorf("decode recovery primary key: %w", err)
	}

	return RecoveryKey{UserID: envelope.Recovery.UserID, PrimaryKey: primaryKey}, nil
}
