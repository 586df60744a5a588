// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"

	"github.com/MKhiriev/go-notes-sync/internal/utils"
	"github.com/MKhiriev/go-notes-sync/models"
)

// Field names accepted by [NoteValidator].
const (
	// FieldNoteID requires a UUID-shaped note id.
	FieldNoteID = "id"

	// FieldNoteBody requires a non-empty title or content.
	FieldNoteBody = "body"
)

// NoteValidator validates note mutations: [models.NoteInput] for create and
// update, [models.DeleteNoteRequest] for delete.
type NoteValidator struct {
}

func NewNoteValidator() Validator {
	return &NoteValidator{}
}

// Validate checks obj. With no fields, a NoteInput is checked for a body
// only (the create rule); update callers pass FieldNoteID and FieldNoteBody.
// A nil pointer is reported as ErrNoDataSubmitted.
func (v *NoteValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.NoteInput:
		return v.validateInput(value, fields...)
	case *models.NoteInput:
		if value == nil {
			return ErrNoDataSubmitted
		}
		return v.validateInput(*value, fields...)

	case models.DeleteNoteRequest:
		return v.validateDelete(value)
	case *models.DeleteNoteRequest:
		if value == nil {
			return ErrNoDataSubmitted
		}
		return v.validateDelete(*value)

	default:
		return ErrUnsupportedType
	}
}

func (v *NoteValidator) validateInput(in models.NoteInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldNoteBody}
	}

	for _, f := range fields {
		switch f {
		case FieldNoteID:
			if !utils.IsUUID(in.ID) {
				return ErrInvalidNoteID
			}
		case FieldNoteBody:
			if in.IsEmpty() {
				return ErrEmptyNote
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *NoteValidator) validateDelete(req models.DeleteNoteRequest) error {
	if !utils.IsUUID(req.NoteID) {
		return ErrInvalidNoteID
	}

	return nil
}
