// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// ConnectInfo is the asymmetric keypair an initiating device generates for a
// connect handshake. PublicKey is shared out-of-band (QR code / paste) as a
// [ConnectCode]; PrivateKey never leaves the device that generated it.
type ConnectInfo struct {
	DeviceID   string
	PublicKey  []byte
	PrivateKey []byte
}

// ConnectCode is the portable, shareable half of a [ConnectInfo]: the device
// id and the ephemeral public key, encoded the way spec.md §6 specifies.
//
// The wire envelope's field is named "secret_key" even though the value
// transmitted is the connect keypair's public half — that is the literal
// format spec.md §3/§6 describe, preserved here for wire compatibility; it
// is not a contradiction of §4.1's "the private key stays local", since the
// private key is never put in this struct at all.
type ConnectCode struct {
	DeviceID  string
	PublicKey []byte
}

type connectEnvelope struct {
	Connect connectPayload `json:"connect"`
}

type connectPayload struct {
	DeviceID  string `json:"device_id"`
	SecretKey string `json:"secret_key"`
}

// Encode renders the connect code string: base64( {"connect":{...}} ).
func (c ConnectCode) Encode() (string, error) {
	envelope := connectEnvelope{Connect: connectPayload{
		DeviceID:  c.DeviceID,
		SecretKey: base64.StdEncoding.EncodeToString(c.PublicKey),
	}}

	raw, err := json.Marshal(envelope)
	if err != nil {
		return "", fmt.Errorf("marshal connect envelope: %w", err)
	}

	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodeConnectCode parses the base64/JSON form produced by [ConnectCode.Encode].
func DecodeConnectCode(code string) (ConnectCode, error) {
	raw, err := base64.StdEncoding.DecodeString(code)
	if err != nil {
		return ConnectCode{}, fmt.Errorf("decode connect code base64: %w", err)
	}

	var envelope connectEnvelope
	if err = json.Unmarshal(raw, &envelope); err != nil {
		return ConnectCode{}, fmt.Errorf("decode connect code json: %w", err)
	}

	publicKey, err := base64.StdEncoding.DecodeString(envelope.Connect.SecretKey)
	if err != nil {
		return ConnectCode{}, fmt.Errorf("decode connect public key: %w", err)
	}

	return ConnectCode{DeviceID: envelope.Connect.DeviceID, PublicKey: publicKey}, nil
}
