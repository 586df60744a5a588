// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-notes-sync/internal/realtime"
)

// Worker is a background job. Run blocks until ctx is done.
type Worker interface {
	Run(ctx context.Context)
}

// Session is a room member whose credential can run out.
type Session interface {
	realtime.Member

	ExpiresAt() time.Time

	// Terminate reports err to the device and disconnects it.
	Terminate(err error)
}
