// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"github.com/syncvault/engine/internal/logger"
)

// httpAPI is the root HTTP handler: it wires every route group and
// middleware chain together and holds the collaborators route handlers
// delegate to, mirroring the teacher's single-struct Handler.
type httpAPI struct {
	store Store
	cfg   Config
	log   *logger.Logger
}

func newHTTPAPI(store Store, cfg Config, log *logger.Logger) *httpAPI {
	return &httpAPI{store: store, cfg: cfg, log: log}
}
