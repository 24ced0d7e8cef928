// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/nacl/box"
	"golang.org/x/crypto/nacl/secretbox"

	"github.com/syncvault/engine/models"
)

// crypter is the private implementation of [Crypter].
type crypter struct {
	// Argon2id tuning parameters, OWASP (2024) recommended baseline.
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	argonKeyLen  uint32
}

// NewCrypter constructs a [Crypter] with Argon2id parameters:
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
func NewCrypter() Crypter {
	return &crypter{
		argonTime:    1,
		argonMemory:  64 * 1024,
		argonThreads: 4,
		argonKeyLen:  32,
	}
}

// primaryKeyFor derives the 32-byte primaryKey from (password, salt=userID)
// using Argon2id.
func (c *crypter) primaryKeyFor(password, userID string) []byte {
	return argon2.IDKey(
		[]byte(password),
		[]byte(userID),
		c.argonTime,
		c.argonMemory,
		c.argonThreads,
		c.argonKeyLen,
	)
}

func (c *crypter) CreateAccountKeys(userID, password string) (AccountKeys, error) {
	primaryKey := c.primaryKeyFor(password, userID)

	passwordHash, err := deriveSubkey(primaryKey, contextPassword, 1)
	if err != nil {
		return AccountKeys{}, wrapCrypto(models.CodeFailedToCreateAccountKeys, "derive password subkey", err)
	}
	stretchedPrimaryKey, err := deriveSubkey(primaryKey, contextStretchy, 2)
	if err != nil {
		return AccountKeys{}, wrapCrypto(models.CodeFailedToCreateAccountKeys, "derive stretched subkey", err)
	}

	secretKey := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, secretKey); err != nil {
		return AccountKeys{}, wrapCrypto(models.CodeFailedToCreateAccountKeys, "generate secret key", err)
	}

	protectedSecretKey, err := sealSymmetric(secretKey, stretchedPrimaryKey)
	if err != nil {
		return AccountKeys{}, wrapCrypto(models.CodeFailedToCreateAccountKeys, "wrap secret key", err)
	}

	return AccountKeys{
		PrimaryKey:          primaryKey,
		SecretKey:           secretKey,
		ProtectedSecretKey:  protectedSecretKey,
		PasswordHash:        passwordHash,
		StretchedPrimaryKey: stretchedPrimaryKey,
	}, nil
}

func (c *crypter) ExtractLoginInfo(recovery models.RecoveryKey) (LoginInfo, error) {
	if len(recovery.PrimaryKey) != c.argonKeyLen {
		return LoginInfo{}, models.NewSyncError(models.CodeInvalidRecoveryKey, "recovery key has wrong length", nil)
	}

	passwordHash, err := deriveSubkey(recovery.PrimaryKey, contextPassword, 1)
	if err != nil {
		return LoginInfo{}, wrapCrypto(models.CodeInvalidRecoveryKey, "derive password subkey", err)
	}
	stretchedPrimaryKey, err := deriveSubkey(recovery.PrimaryKey, contextStretchy, 2)
	if err != nil {
		return LoginInfo{}, wrapCrypto(models.CodeInvalidRecoveryKey, "derive stretched subkey", err)
	}

	return LoginInfo{
		UserID:              recovery.UserID,
		PrimaryKey:           recovery.PrimaryKey,
		PasswordHash:        passwordHash,
		StretchedPrimaryKey: stretchedPrimaryKey,
	}, nil
}

func (c *crypter) ExtractSecretKey(protectedSecretKey, stretchedPrimaryKey []byte) ([]byte, error) {
	secretKey, err := openSymmetric(protectedSecretKey, stretchedPrimaryKey)
	if err != nil {
		return nil, wrapCrypto(models.CodeFailedToOpenSealedBox, "unwrap secret key", err)
	}
	return secretKey, nil
}

func (c *crypter) EncryptAndEncode(value any, secretKey []byte) (string, error) {
	plaintext, err := json.Marshal(value)
	if err != nil {
		return "", wrapCrypto(models.CodeFailedToEncryptValue, "marshal value", err)
	}

	blob, err := sealSymmetric(plaintext, secretKey)
	if err != nil {
		return "", wrapCrypto(models.CodeFailedToEncryptValue, "seal value", err)
	}

	return base64.StdEncoding.EncodeToString(blob), nil
}

func (c *crypter) DecodeAndDecrypt(encoded string, secretKey []byte, target any) error {
	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return wrapCrypto(models.CodeFailedToDecryptValue, "decode base64", err)
	}

	plaintext, err := openSymmetric(blob, secretKey)
	if err != nil {
		return wrapCrypto(models.CodeFailedToDecryptValue, "open value", err)
	}

	if err := json.Unmarshal(plaintext, target); err != nil {
		return wrapCrypto(models.CodeFailedToDecryptValue, "unmarshal value", err)
	}

	return nil
}

func (c *crypter) PrepareForConnect(deviceID string) (models.ConnectInfo, error) {
	pub, priv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return models.ConnectInfo{}, wrapCrypto(models.CodeFailedToPrepareForConnect, "generate keypair", err)
	}

	return models.ConnectInfo{
		DeviceID:   deviceID,
		PublicKey:  pub[:],
		PrivateKey: priv[:],
	}, nil
}

func (c *crypter) Seal(data []byte, recipientPublicKey []byte) ([]byte, error) {
	if len(recipientPublicKey) != 32 {
		return nil, models.NewSyncError(models.CodeFailedToSealData, "recipient public key has wrong length", nil)
	}
	var pub [32]byte
	copy(pub[:], recipientPublicKey)

	sealed, err := box.SealAnonymous(nil, data, &pub, rand.Reader)
	if err != nil {
		return nil, wrapCrypto(models.CodeFailedToSealData, "seal box", err)
	}
	return sealed, nil
}

func (c *crypter) Unseal(ciphertext []byte, info models.ConnectInfo) ([]byte, error) {
	if len(info.PublicKey) != 32 || len(info.PrivateKey) != 32 {
		return nil, models.NewSyncError(models.CodeFailedToOpenSealedBox, "connect keypair has wrong length", nil)
	}
	var pub, priv [32]byte
	copy(pub[:], info.PublicKey)
	copy(priv[:], info.PrivateKey)

	plaintext, ok := box.OpenAnonymous(nil, ciphertext, &pub, &priv)
	if !ok {
		return nil, models.NewSyncError(models.CodeFailedToOpenSealedBox, "authentication failed", nil)
	}
	return plaintext, nil
}

// sealSymmetric encrypts plaintext with key using an XSalsa20-Poly1305
// secret box (golang.org/x/crypto/nacl/secretbox), prepending the random
// 24-byte nonce: blob = nonce ‖ ciphertext.
func sealSymmetric(plaintext, key []byte) ([]byte, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("key must be 32 bytes, got %d", len(key))
	}
	var k [32]byte
	copy(k[:], key)

	var nonce [24]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, err
	}

	return secretbox.Seal(nonce[:], plaintext, &nonce, &k), nil
}

// openSymmetric reverses sealSymmetric.
func openSymmetric(blob, key []byte) ([]byte, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("key must be 32 bytes, got %d", len(key))
	}
	if len(blob) < 24 {
		return nil, fmt.Errorf("ciphertext too short")
	}
	var k [32]byte
	copy(k[:], key)
	var nonce [24]byte
	copy(nonce[:], blob[:24])

	plaintext, ok := secretbox.Open(nil, blob[24:], &nonce, &k)
	if !ok {
		return nil, fmt.Errorf("decryption failed")
	}
	return plaintext, nil
}

func wrapCrypto(code models.SyncErrorCode, message string, err error) error {
	return models.NewSyncError(code, message, err)
}
