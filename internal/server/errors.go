// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoListeners means neither the HTTP nor the gRPC listener was configured.
var errNoListeners = errors.New("server: no HTTP or gRPC listener configured")
