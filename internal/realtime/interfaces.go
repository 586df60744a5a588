// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package realtime implements the synchronization layer of the notes
// channel: the room router mapping owners to their live connections, the
// per-owner sequencing of mutations, the create/update/delete protocol and
// the two error channels (localError, globalError).
//
// The package is transport-agnostic. A connection takes part through the
// [Member] interface; the websocket gateway in handler/ws is one
// implementation, the REST surface drives [Protocol] with no member at all.
package realtime

import "github.com/MKhiriev/go-notes-sync/models"

// Member is one live connection of an owner.
type Member interface {
	// ID is unique among all live connections.
	ID() string

	// OwnerID is the owner the connection authenticated as.
	OwnerID() string

	// Send enqueues event for delivery. It must not block; a connection
	// that cannot keep up is expected to drop itself.
	Send(event models.Event) error
}
