// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoTransport is returned by NewHandlers when the server config names no
// HTTP address (REST and note channel) and no gRPC address (health).
var errNoTransport = errors.New("handler: no transport configured")
