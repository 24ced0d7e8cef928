// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

// gzipReaderPool pools [gzip.Reader]s used to transparently decompress PATCH
// bodies the client compressed per spec.md §4.4/§4.8 (codec.ShouldCompress).
var gzipReaderPool = sync.Pool{
	New: func() any { return new(gzip.Reader) },
}

// withGZip decompresses a gzip-encoded request body and, if the caller
// doesn't need response compression, leaves the response alone. The
// reference server's responses are small JSON envelopes, so unlike the
// request side there's no compression threshold to apply here.
func withGZip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Content-Encoding"), "gzip") || r.Body == nil {
			next.ServeHTTP(w, r)
			return
		}

		reader := gzipReaderPool.Get().(*gzip.Reader)
		if err := reader.Reset(r.Body); err != nil {
			gzipReaderPool.Put(reader)
			http.Error(w, "invalid gzip data", http.StatusBadRequest)
			return
		}

		r.Body = &wrappedReadCloser{
			Reader: reader,
			onClose: func() {
				reader.Close()
				gzipReaderPool.Put(reader)
			},
		}
		r.Header.Del("Content-Encoding")

		next.ServeHTTP(w, r)
	})
}

// wrappedReadCloser pairs a pooled [gzip.Reader] with the cleanup needed to
// return it to the pool once the request body is closed.
type wrappedReadCloser struct {
	io.Reader
	onClose func()
}

func (w *wrappedReadCloser) Close() error {
	if w.onClose != nil {
		w.onClose()
	}
	return nil
}
