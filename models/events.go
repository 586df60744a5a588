// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// Event names of the "notes" channel.
const (
	// inbound
	EventCreateNote = "createNote"
	EventUpdateNote = "updateNote"
	EventDeleteNote = "deleteNote"
	EventGetNotes   = "getNotes"

	// outbound
	EventGlobal      = "global"
	EventLocal       = "local"
	EventLocalError  = "localError"
	EventGlobalError = "globalError"
	EventJoinRoom    = "joinRoom"
	EventNotes       = "notes"
)

// Event is a named frame of the channel.
type Event struct {
	Name string `json:"event"`
	Data any    `json:"data,omitempty"`
}

// InboundEvent is an event as read from a device. Data stays raw until the
// handler for Name decodes it.
type InboundEvent struct {
	Name string          `json:"event"`
	Data json.RawMessage `json:"data,omitempty"`
}

// NoteEvent is the payload of "global" and "local" events.
type NoteEvent struct {
	Status NoteStatus `json:"status"`
	Note   Note       `json:"note"`

	// IsDeleteOrigin is only set on "local" events about a deletion: true on
	// the device that deleted the note, false on every other device.
	IsDeleteOrigin *bool `json:"isDeleteOrigin,omitempty"`
}

// LocalError is the payload of "localError": a single action failed.
type LocalError struct {
	Status  int            `json:"status"`
	Data    LocalErrorData `json:"data"`
	Message string         `json:"message"`
}

// LocalErrorData names the action that failed and echoes its payload.
type LocalErrorData struct {
	Status NoteStatus `json:"status"`
	Note   any        `json:"note"`
}

// GlobalError is the payload of "globalError": a connection-level failure.
type GlobalError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// DeleteNoteRequest is the payload of "deleteNote".
type DeleteNoteRequest struct {
	NoteID string `json:"noteId"`
}
