// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package realtime

import (
	"errors"
	"sync"

	"github.com/MKhiriev/go-notes-sync/models"
)

var errSendBufferFull = errors.New("send buffer is full")

// fakeMember records every event sent to it.
type fakeMember struct {
	id      string
	ownerID string
	failing bool

	mu     sync.Mutex
	events []models.Event
}

func newMember(id, ownerID string) *fakeMember {
	return &fakeMember{id: id, ownerID: ownerID}
}

func (m *fakeMember) ID() string      { return m.id }
func (m *fakeMember) OwnerID() string { return m.ownerID }

func (m *fakeMember) Send(event models.Event) error {
	if m.failing {
		return errSendBufferFull
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *fakeMember) Events() []models.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Event(nil), m.events...)
}

func (m *fakeMember) Names() []string {
	var names []string
	for _, e := range m.Events() {
		names = append(names, e.Name)
	}
	return names
}

func (m *fakeMember) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}

func noteEventOf(e models.Event) models.NoteEvent {
	ne, _ := e.Data.(models.NoteEvent)
	return ne
}

func strPtr(s string) *string { return &s }
