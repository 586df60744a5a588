// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-notes-sync/internal/validators"
	"github.com/MKhiriev/go-notes-sync/models"
)

// NoteValidationService rejects malformed input before it reaches the
// wrapped NoteService, so invalid requests never touch the store.
type NoteValidationService struct {
	inner     NoteService
	validator validators.Validator
}

func NewNoteValidationService() NoteServiceWrapper {
	return &NoteValidationService{
		validator: validators.NewNoteValidator(),
	}
}

func (v *NoteValidationService) CreateNote(ctx context.Context, ownerID string, input models.NoteInput) (models.Note, error) {
	if err := v.validator.Validate(ctx, input, validators.FieldNoteBody); err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.CreateNote(ctx, ownerID, input)
}

func (v *NoteValidationService) UpdateNote(ctx context.Context, ownerID string, input models.NoteInput) (models.Note, error) {
	if err := v.validator.Validate(ctx, input, validators.FieldNoteID, validators.FieldNoteBody); err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.UpdateNote(ctx, ownerID, input)
}

func (v *NoteValidationService) DeleteNote(ctx context.Context, ownerID, noteID string) (models.Note, error) {
	if err := v.validator.Validate(ctx, models.DeleteNoteRequest{NoteID: noteID}); err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.DeleteNote(ctx, ownerID, noteID)
}

func (v *NoteValidationService) GetNote(ctx context.Context, ownerID, noteID string) (models.Note, error) {
	if err := v.validator.Validate(ctx, models.DeleteNoteRequest{NoteID: noteID}); err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.GetNote(ctx, ownerID, noteID)
}

func (v *NoteValidationService) ListNotes(ctx context.Context, ownerID string, request models.ListRequest) (models.Page, error) {
	return v.inner.ListNotes(ctx, ownerID, request)
}

func (v *NoteValidationService) Wrap(wrapped NoteService) NoteService {
	v.inner = wrapped
	return v
}
