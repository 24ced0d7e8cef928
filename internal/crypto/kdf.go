// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/sha256"
	"encoding/binary"
	"io"

	"golang.org/x/crypto/hkdf"
)

// Fixed 8-byte subkey contexts. These values are part of the wire/recovery
// format and must never change once deployed.
var (
	contextPassword = [8]byte{'P', 'a', 's', 's', 'w', 'o', 'r', 'd'}
	contextStretchy = [8]byte{'S', 't', 'r', 'e', 't', 'c', 'h', 'y'}
)

const subkeyLen = 32

// deriveSubkey derives a 32-byte subkey from primaryKey using HKDF-SHA256,
// keyed by an 8-byte context and a numeric subkey id. The (context, id)
// pair domain-separates subkeys so that passwordHash and
// stretchedPrimaryKey are computationally independent even though both
// derive from the same primaryKey.
func deriveSubkey(primaryKey []byte, context [8]byte, id uint64) ([]byte, error) {
	info := make([]byte, 16)
	copy(info, context[:])
	binary.BigEndian.PutUint64(info[8:], id)

	r := hkdf.New(sha256.New, primaryKey, nil, info)
	subkey := make([]byte, subkeyLen)
	if _, err := io.ReadFull(r, subkey); err != nil {
		return nil, err
	}
	return subkey, nil
}
