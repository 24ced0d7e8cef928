// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"net/http"

	"github.com/syncvault/engine/internal/logger"
)

type server struct {
	httpServer *http.Server
	log        *logger.Logger
}

// NewServer constructs the reference server's HTTP listener, wired against
// store. Mirrors the teacher's *server{httpServer, gRPCServer} lifecycle
// wrapper, minus the unused gRPC half: this project exposes one transport.
func NewServer(store Store, cfg Config, log *logger.Logger) Server {
	api := newHTTPAPI(store, cfg, log)

	return &server{
		httpServer: &http.Server{
			Addr:         cfg.HTTPAddress,
			Handler:      api.routes(),
			ReadTimeout:  cfg.RequestTimeout,
			WriteTimeout: cfg.RequestTimeout,
		},
		log: log,
	}
}

func (s *server) RunServer() {
	s.log.Info().Str("addr", s.httpServer.Addr).Msg("starting sync server")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.log.Err(err).Msg("http server ListenAndServe")
	}
}

func (s *server) Shutdown() {
	if err := s.httpServer.Shutdown(context.Background()); err != nil {
		s.log.Err(err).Msg("http server Shutdown")
	}
}
