// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

type ctxKey int

const (
	userIDCtxKey ctxKey = iota
	deviceIDCtxKey
)

func userIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(userIDCtxKey).(string)
	return v, ok
}

func deviceIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(deviceIDCtxKey).(string)
	return v, ok
}
