// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// routes builds the [chi.Mux] serving every endpoint internal/transport.Client
// dials: sync/signup, sync/login, sync/logout-device, sync/account,
// sync/devices, sync/{csv} (GET), sync/data (PATCH), and the connect
// handshake's payload relay.
func (s *httpAPI) routes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, withLogging(s.log), withGZip)

	router.Route("/sync", func(sync chi.Router) {
		sync.Post("/signup", s.signup)
		sync.Post("/login", s.login)
		sync.Post("/connect", s.postConnect)
		sync.Get("/connect/{deviceId}", s.getConnect)

		sync.Group(func(authed chi.Router) {
			authed.Use(s.auth)

			authed.Post("/logout-device", s.logoutDevice)
			authed.Delete("/account", s.deleteAccount)
			authed.Get("/devices", s.fetchDevices)
			authed.Patch("/data", s.patchSync)
			authed.Get("/{features}", s.getSync)
		})
	})

	return router
}
