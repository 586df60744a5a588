// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-notes-sync/models"
)

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func inbound(t *testing.T, name string, data any) models.InboundEvent {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	return models.InboundEvent{Name: name, Data: raw}
}

// ── Page ──

func TestPrinter_Page(t *testing.T) {
	oldest := time.Date(2026, 3, 1, 10, 0, 0, 123, time.UTC)
	page := models.Page{Notes: []models.Note{
		{ID: "n2", Title: strPtr("groceries"), Content: strPtr("milk"), Timestamp: oldest.Add(time.Hour)},
		{ID: "n1", Content: strPtr("call mom"), Timestamp: oldest},
	}}

	var buf bytes.Buffer
	NewPrinter(&buf).Page(page)
	out := buf.String()

	assert.Contains(t, out, "n2")
	assert.Contains(t, out, "groceries")
	assert.Contains(t, out, "milk")
	assert.Contains(t, out, "call mom")
	assert.Contains(t, out, "--cursor "+oldest.Format(time.RFC3339Nano))
	assert.NotContains(t, out, "end of notes")
}

func TestPrinter_PageEnd(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Page(models.Page{Notes: []models.Note{{ID: "n1", Title: strPtr("only")}}, IsEnd: true})
	assert.Contains(t, buf.String(), "end of notes")

	buf.Reset()
	p.Page(models.Page{IsEnd: true})
	assert.Contains(t, buf.String(), "no notes")
}

// ── Event ──

func TestPrinter_Event(t *testing.T) {
	note := models.Note{ID: "n1", Title: strPtr("groceries")}

	tests := []struct {
		name  string
		event models.InboundEvent
		want  []string
	}{
		{
			name:  "join",
			event: inbound(t, models.EventJoinRoom, struct{}{}),
			want:  []string{"joined"},
		},
		{
			name:  "global",
			event: inbound(t, models.EventGlobal, models.NoteEvent{Status: models.NoteCreated, Note: note}),
			want:  []string{"[created]", "n1", "groceries"},
		},
		{
			name:  "local",
			event: inbound(t, models.EventLocal, models.NoteEvent{Status: models.NoteUpdated, Note: note}),
			want:  []string{"[updated]", "this device"},
		},
		{
			name:  "remote delete",
			event: inbound(t, models.EventLocal, models.NoteEvent{Status: models.NoteDeleted, Note: note, IsDeleteOrigin: boolPtr(false)}),
			want:  []string{"[deleted]", "another device"},
		},
		{
			name: "local error",
			event: inbound(t, models.EventLocalError, models.LocalError{
				Status:  400,
				Data:    models.LocalErrorData{Status: models.NoteCreated},
				Message: "At least one field is required.",
			}),
			want: []string{"create failed", "At least one field is required.", "400"},
		},
		{
			name:  "global error",
			event: inbound(t, models.EventGlobalError, models.GlobalError{Status: 401, Message: "token is expired"}),
			want:  []string{"token is expired", "401"},
		},
		{
			name:  "notes",
			event: inbound(t, models.EventNotes, models.Page{Notes: []models.Note{note}, IsEnd: true}),
			want:  []string{"groceries", "end of notes"},
		},
		{
			name:  "unknown",
			event: inbound(t, "mystery", nil),
			want:  []string{"unknown event mystery"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewPrinter(&buf).Event(tt.event))
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestPrinter_EventUndecodable(t *testing.T) {
	var buf bytes.Buffer

	err := NewPrinter(&buf).Event(models.InboundEvent{Name: models.EventGlobal, Data: json.RawMessage(`"nope"`)})

	assert.Error(t, err)
}

func TestPrinter_Failure(t *testing.T) {
	var buf bytes.Buffer

	NewPrinter(&buf).Failure(errors.New("server unreachable"))

	assert.Contains(t, buf.String(), "error: server unreachable")
}
