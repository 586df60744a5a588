// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server is the lifecycle contract of a transport server.
type Server interface {
	// RunServer serves until ctx is done or serving fails, then shuts down.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops serving. It is safe to call more than once.
	Shutdown(ctx context.Context) error
}
