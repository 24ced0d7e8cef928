// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package account

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"

	"github.com/syncvault/engine/internal/crypto"
	"github.com/syncvault/engine/internal/transport"
	"github.com/syncvault/engine/models"
)

const generatedPasswordBytes = 32

type manager struct {
	client  transport.Client
	crypter crypto.Crypter
}

// NewManager constructs a [Manager] wired to client and crypter.
func NewManager(client transport.Client, crypter crypto.Crypter) Manager {
	return &manager{client: client, crypter: crypter}
}

func (m *manager) CreateAccount(ctx context.Context, deviceName, deviceType string) (models.Account, models.RecoveryKey, error) {
	userID := uuid.NewString()
	deviceID := uuid.NewString()

	password, err := generatePassword()
	if err != nil {
		return models.Account{}, models.RecoveryKey{}, models.NewSyncError(models.CodeFailedToCreateAccountKeys, "generate password", err)
	}

	keys, err := m.crypter.CreateAccountKeys(userID, password)
	if err != nil {
		return models.Account{}, models.RecoveryKey{}, fmt.Errorf("create account keys: %w", err)
	}

	req := models.SignupRequest{
		UserID:                 userID,
		HashedPassword:         base64.StdEncoding.EncodeToString(keys.PasswordHash),
		ProtectedEncryptionKey: base64.StdEncoding.EncodeToString(keys.ProtectedSecretKey),
		DeviceID:               deviceID,
		DeviceName:             deviceName,
		DeviceType:             deviceType,
	}

	resp, err := m.client.Signup(ctx, req)
	if err != nil {
		return models.Account{}, models.RecoveryKey{}, err
	}

	m.client.SetToken(resp.Token)

	acc := models.Account{
		DeviceID:   deviceID,
		DeviceName: deviceName,
		DeviceType: deviceType,
		UserID:     userID,
		PrimaryKey: keys.PrimaryKey,
		SecretKey:  keys.SecretKey,
		Token:      resp.Token,
		AuthState:  models.AuthStateActive,
	}
	recovery := models.RecoveryKey{UserID: userID, PrimaryKey: keys.PrimaryKey}

	return acc, recovery, nil
}

func (m *manager) Login(ctx context.Context, recoveryKey models.RecoveryKey, deviceName, deviceType string) (models.Account, []models.Device, error) {
	loginInfo, err := m.crypter.ExtractLoginInfo(recoveryKey)
	if err != nil {
		return models.Account{}, nil, fmt.Errorf("extract login info: %w", err)
	}

	deviceID := uuid.NewString()
	req := models.LoginRequest{
		UserID:         loginInfo.UserID,
		HashedPassword: base64.StdEncoding.EncodeToString(loginInfo.PasswordHash),
		DeviceID:       deviceID,
		DeviceName:     deviceName,
		DeviceType:     deviceType,
	}

	resp, err := m.client.Login(ctx, req)
	if err != nil {
		return models.Account{}, nil, err
	}

	protectedSecretKey, err := base64.StdEncoding.DecodeString(resp.ProtectedEncryptionKey)
	if err != nil {
		return models.Account{}, nil, models.NewSyncError(models.CodeUnexpectedResponseBody, "decode protected encryption key", err)
	}

	secretKey, err := m.crypter.ExtractSecretKey(protectedSecretKey, loginInfo.StretchedPrimaryKey)
	if err != nil {
		return models.Account{}, nil, fmt.Errorf("extract secret key: %w", err)
	}

	m.client.SetToken(resp.Token)

	acc := models.Account{
		DeviceID:   deviceID,
		DeviceName: deviceName,
		DeviceType: deviceType,
		UserID:     loginInfo.UserID,
		PrimaryKey: loginInfo.PrimaryKey,
		SecretKey:  secretKey,
		Token:      resp.Token,
		AuthState:  models.AuthStateAddingNewDevice,
	}

	return acc, resp.Devices, nil
}

func (m *manager) RefreshToken(ctx context.Context, account models.Account, deviceName string) (models.Account, error) {
	recoveryKey := models.RecoveryKey{UserID: account.UserID, PrimaryKey: account.PrimaryKey}
	loginInfo, err := m.crypter.ExtractLoginInfo(recoveryKey)
	if err != nil {
		return models.Account{}, fmt.Errorf("extract login info: %w", err)
	}

	req := models.LoginRequest{
		UserID:         loginInfo.UserID,
		HashedPassword: base64.StdEncoding.EncodeToString(loginInfo.PasswordHash),
		DeviceID:       account.DeviceID,
		DeviceName:     deviceName,
		DeviceType:     account.DeviceType,
	}

	resp, err := m.client.Login(ctx, req)
	if err != nil {
		return models.Account{}, err
	}

	m.client.SetToken(resp.Token)

	refreshed := account
	refreshed.DeviceName = deviceName
	refreshed.Token = resp.Token
	return refreshed, nil
}

func (m *manager) Logout(ctx context.Context, deviceID, token string) error {
	m.client.SetToken(token)
	return m.client.LogoutDevice(ctx, models.LogoutDeviceRequest{DeviceID: deviceID})
}

func (m *manager) DeleteAccount(ctx context.Context, account models.Account) error {
	m.client.SetToken(account.Token)
	return m.client.DeleteAccount(ctx)
}

func (m *manager) FetchDevices(ctx context.Context, account models.Account) ([]models.Device, error) {
	m.client.SetToken(account.Token)
	return m.client.FetchDevices(ctx)
}

func generatePassword() (string, error) {
	buf := make([]byte, generatedPasswordBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
