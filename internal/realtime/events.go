// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package realtime

import "github.com/MKhiriev/go-notes-sync/models"

func globalEvent(status models.NoteStatus, note models.Note) models.Event {
	return models.Event{
		Name: models.EventGlobal,
		Data: models.NoteEvent{Status: status, Note: note},
	}
}

func localEvent(status models.NoteStatus, note models.Note) models.Event {
	return models.Event{
		Name: models.EventLocal,
		Data: models.NoteEvent{Status: status, Note: note},
	}
}

func localDeleteEvent(note models.Note, isDeleteOrigin bool) models.Event {
	return models.Event{
		Name: models.EventLocal,
		Data: models.NoteEvent{Status: models.NoteDeleted, Note: note, IsDeleteOrigin: &isDeleteOrigin},
	}
}

func notesEvent(page models.Page) models.Event {
	return models.Event{Name: models.EventNotes, Data: page}
}

// JoinRoomEvent acknowledges a successful handshake.
func JoinRoomEvent() models.Event {
	return models.Event{Name: models.EventJoinRoom, Data: struct{}{}}
}
