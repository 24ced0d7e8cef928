// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"net/http"
	"time"

	"github.com/syncvault/engine/internal/logger"
)

// responseWriter decorates [http.ResponseWriter] to capture the status code
// and byte count written by the downstream handler, for access logging.
type responseWriter struct {
	http.ResponseWriter
	status      int
	size        int
	wroteHeader bool
}

func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// withLogging attaches log to the request context (so downstream handlers'
// logger.FromContext calls pick up the "role" field) and emits one
// structured access-log entry per request.
func withLogging(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lw := &responseWriter{ResponseWriter: w}
			ctx := log.WithContext(r.Context())
			r = r.WithContext(ctx)

			next.ServeHTTP(lw, r)

			log.Info().
				Str("uri", r.RequestURI).
				Str("method", r.Method).
				Int("status", lw.status).
				Dur("duration", time.Since(start)).
				Int("size", lw.size).
				Send()
		})
	}
}
