// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims identifies the device issuing a request, not just the user,
// so logout-device and connect-handshake flows can distinguish between
// sibling devices sharing one account.
type tokenClaims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	DeviceID string `json:"device_id"`
}

var errTokenInvalid = errors.New("token is invalid or expired")

func issueToken(secret string, ttl time.Duration, userID, deviceID string, now time.Time) (string, error) {
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:   userID,
		DeviceID: deviceID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func parseToken(secret, tokenString string) (userID, deviceID string, err error) {
	claims := &tokenClaims{}
	_, err = jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", errTokenInvalid
	}
	return claims.UserID, claims.DeviceID, nil
}
