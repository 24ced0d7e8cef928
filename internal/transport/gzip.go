// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package transport

import (
	"bytes"
	"compress/gzip"

	"github.com/syncvault/engine/models"
)

// CompressBody gzip-compresses body for use with [Client.PatchSync]'s
// gzipped=true form. It is the client-side counterpart of the reference
// server's gzip middleware (internal/server), which decompresses with
// pooled [gzip.Reader]s; here a fresh [gzip.Writer] is used per call, since
// the codec only compresses a payload right before a single PATCH call.
func CompressBody(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)

	if _, err := gw.Write(body); err != nil {
		return nil, models.NewSyncError(models.CodePatchPayloadCompressionFailed, "gzip write", err)
	}
	if err := gw.Close(); err != nil {
		return nil, models.NewSyncError(models.CodePatchPayloadCompressionFailed, "gzip close", err)
	}
	return buf.Bytes(), nil
}
