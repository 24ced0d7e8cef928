// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package connect

import "errors"

// errNotReady marks a poll attempt as retryable: no sealed recovery payload
// has been posted yet.
var errNotReady = errors.New("connect: no recovery payload posted yet")
