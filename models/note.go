// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Note is a short text note owned by exactly one user.
//
// Title and Content are both optional, but a stored note always has at least
// one of them. An empty string is never stored: it is normalized to nil.
type Note struct {
	ID        string    `json:"id"`
	Title     *string   `json:"title,omitempty"`
	Content   *string   `json:"content,omitempty"`
	Timestamp time.Time `json:"timestamp"`

	// OwnerID references the owning [User]. Devices only ever see their own
	// notes, so it is not part of the wire shape.
	OwnerID string `json:"-"`
}

// TableName returns the name of the database table
// associated with the Note model.
func (n Note) TableName() string {
	return "notes"
}

// NoteInput is the client-supplied part of a note for create and update.
//
// Update applies NoteInput as a full replace: a field missing from the input
// is cleared on the stored note, not kept.
type NoteInput struct {
	ID      string  `json:"id,omitempty"`
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// Normalized returns a copy of the input with empty strings turned into nil.
func (in NoteInput) Normalized() NoteInput {
	return NoteInput{
		ID:      in.ID,
		Title:   nonEmpty(in.Title),
		Content: nonEmpty(in.Content),
	}
}

// IsEmpty reports whether neither title nor content carries text.
func (in NoteInput) IsEmpty() bool {
	n := in.Normalized()
	return n.Title == nil && n.Content == nil
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}

// NoteStatus names the mutation a note event is about.
type NoteStatus string

const (
	NoteCreated NoteStatus = "created"
	NoteUpdated NoteStatus = "updated"
	NoteDeleted NoteStatus = "deleted"

	// NotesListed tags failures of the read path.
	NotesListed NoteStatus = "listed"
)
