// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package realtime

import (
	"sync"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/models"
)

// Router keeps the rooms: for every owner, the set of their live
// connections. A room exists only while it has members.
//
// The router has its own lock and never calls into the store, so
// membership changes never wait on storage I/O.
type Router struct {
	mu    sync.RWMutex
	rooms map[string]map[string]Member

	logger *logger.Logger
}

func NewRouter(logger *logger.Logger) *Router {
	return &Router{
		rooms:  make(map[string]map[string]Member),
		logger: logger,
	}
}

// Join adds m to the room of its owner. Joining twice is a no-op.
func (r *Router) Join(m Member) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[m.OwnerID()]
	if !ok {
		room = make(map[string]Member)
		r.rooms[m.OwnerID()] = room
	}
	room[m.ID()] = m

	r.logger.Debug().
		Str("owner_id", m.OwnerID()).
		Str("conn_id", m.ID()).
		Int("members", len(room)).
		Msg("connection joined room")
}

// Leave removes m from its room and drops the room when it becomes empty.
// Leaving a room m is not in is a no-op.
func (r *Router) Leave(m Member) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[m.OwnerID()]
	if !ok {
		return
	}
	if _, ok = room[m.ID()]; !ok {
		return
	}

	delete(room, m.ID())
	if len(room) == 0 {
		delete(r.rooms, m.OwnerID())
	}

	r.logger.Debug().
		Str("owner_id", m.OwnerID()).
		Str("conn_id", m.ID()).
		Int("members", len(room)).
		Msg("connection left room")
}

// EmitToAll delivers event to every live connection of ownerID.
func (r *Router) EmitToAll(ownerID string, event models.Event) {
	r.emit(r.members(ownerID, nil), event)
}

// EmitExceptSender delivers event to every live connection of ownerID other
// than sender. A nil sender excludes no one.
func (r *Router) EmitExceptSender(ownerID string, sender Member, event models.Event) {
	r.emit(r.members(ownerID, sender), event)
}

// EmitToSender delivers event to sender only. A nil sender, or one that has
// already left its room, receives nothing.
func (r *Router) EmitToSender(sender Member, event models.Event) {
	if sender == nil || !r.IsMember(sender) {
		return
	}
	r.emit([]Member{sender}, event)
}

// IsMember reports whether m is currently in its owner's room.
func (r *Router) IsMember(m Member) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.rooms[m.OwnerID()][m.ID()]
	return ok
}

// RoomSize returns the number of live connections of ownerID.
func (r *Router) RoomSize(ownerID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.rooms[ownerID])
}

// Members returns a snapshot of every live connection of every room.
func (r *Router) Members() []Member {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []Member
	for _, room := range r.rooms {
		for _, m := range room {
			all = append(all, m)
		}
	}
	return all
}

// members snapshots the room of ownerID without except.
func (r *Router) members(ownerID string, except Member) []Member {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room := r.rooms[ownerID]
	out := make([]Member, 0, len(room))
	for id, m := range room {
		if except != nil && id == except.ID() {
			continue
		}
		out = append(out, m)
	}
	return out
}

func (r *Router) emit(members []Member, event models.Event) {
	for _, m := range members {
		if err := m.Send(event); err != nil {
			r.logger.Warn().Err(err).
				Str("conn_id", m.ID()).
				Str("event", event.Name).
				Msg("event was not delivered")
		}
	}
}
