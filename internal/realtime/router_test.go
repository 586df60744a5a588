// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package realtime

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/models"
)

var pingEvent = models.Event{Name: "ping"}

func TestRouter_JoinIsIdempotent(t *testing.T) {
	r := NewRouter(logger.Nop())
	a1 := newMember("a1", "alice")

	r.Join(a1)
	r.Join(a1)
	r.EmitToAll("alice", pingEvent)

	assert.Equal(t, 1, r.RoomSize("alice"))
	assert.Len(t, a1.Events(), 1)
}

func TestRouter_LeaveTwiceAndDropEmptyRoom(t *testing.T) {
	r := NewRouter(logger.Nop())
	a1 := newMember("a1", "alice")
	a2 := newMember("a2", "alice")
	r.Join(a1)
	r.Join(a2)

	r.Leave(a1)
	r.Leave(a1)
	assert.Equal(t, 1, r.RoomSize("alice"))
	assert.False(t, r.IsMember(a1))

	r.Leave(a2)
	assert.Equal(t, 0, r.RoomSize("alice"))
	assert.Empty(t, r.rooms)

	r.Leave(newMember("ghost", "nobody"))
}

func TestRouter_Emits(t *testing.T) {
	r := NewRouter(logger.Nop())
	a1 := newMember("a1", "alice")
	a2 := newMember("a2", "alice")
	a3 := newMember("a3", "alice")
	b1 := newMember("b1", "bob")
	for _, m := range []*fakeMember{a1, a2, a3, b1} {
		r.Join(m)
	}

	r.EmitToAll("alice", models.Event{Name: "all"})
	r.EmitExceptSender("alice", a1, models.Event{Name: "others"})
	r.EmitExceptSender("alice", nil, models.Event{Name: "nobody-excluded"})
	r.EmitToSender(a1, models.Event{Name: "sender"})

	assert.Equal(t, []string{"all", "nobody-excluded", "sender"}, a1.Names())
	assert.Equal(t, []string{"all", "others", "nobody-excluded"}, a2.Names())
	assert.Equal(t, []string{"all", "others", "nobody-excluded"}, a3.Names())
	assert.Empty(t, b1.Events())
}

func TestRouter_EmitToSender_NilOrGone(t *testing.T) {
	r := NewRouter(logger.Nop())
	a1 := newMember("a1", "alice")

	r.EmitToSender(nil, pingEvent)
	r.EmitToSender(a1, pingEvent)

	assert.Empty(t, a1.Events())
}

func TestRouter_FailingMemberDoesNotStopFanOut(t *testing.T) {
	r := NewRouter(logger.Nop())
	broken := newMember("a1", "alice")
	broken.failing = true
	healthy := newMember("a2", "alice")
	r.Join(broken)
	r.Join(healthy)

	r.EmitToAll("alice", pingEvent)

	assert.Len(t, healthy.Events(), 1)
}

func TestRouter_Members(t *testing.T) {
	r := NewRouter(logger.Nop())
	r.Join(newMember("a1", "alice"))
	r.Join(newMember("b1", "bob"))
	r.Join(newMember("b2", "bob"))

	assert.Len(t, r.Members(), 3)
}

func TestRouter_Concurrent(t *testing.T) {
	r := NewRouter(logger.Nop())
	stable := newMember("stable", "alice")
	r.Join(stable)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m := newMember(fmt.Sprintf("m%d", i), "alice")
			r.Join(m)
			r.EmitExceptSender("alice", m, pingEvent)
			r.Leave(m)
		}(i)
	}
	wg.Wait()

	require.Equal(t, 1, r.RoomSize("alice"))
	assert.Len(t, stable.Events(), 50)
}
