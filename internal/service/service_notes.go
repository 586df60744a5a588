// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/store"
	"github.com/MKhiriev/go-notes-sync/internal/utils"
	"github.com/MKhiriev/go-notes-sync/models"
)

type noteService struct {
	noteRepository store.NoteRepository

	ids   idGenerator
	clock *clock

	logger *logger.Logger
}

func NewNoteService(noteRepository store.NoteRepository, logger *logger.Logger) NoteService {
	return &noteService{
		noteRepository: noteRepository,
		ids:            utils.NewUUIDGenerator(),
		clock:          newClock(),
		logger:         logger,
	}
}

func (s *noteService) CreateNote(ctx context.Context, ownerID string, input models.NoteInput) (models.Note, error) {
	in := input.Normalized()
	note := models.Note{
		ID:        s.ids.Generate(),
		Title:     in.Title,
		Content:   in.Content,
		Timestamp: s.clock.Now(),
		OwnerID:   ownerID,
	}

	if err := s.noteRepository.Save(ctx, note); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*noteService.CreateNote").Msg("note creation ended with error")
		return models.Note{}, fmt.Errorf("note creation ended with error: %w", err)
	}

	return note, nil
}

// UpdateNote is a full replace: title and content of the stored note become
// exactly those of input.
func (s *noteService) UpdateNote(ctx context.Context, ownerID string, input models.NoteInput) (models.Note, error) {
	in := input.Normalized()

	stored, err := s.find(ctx, ownerID, in.ID)
	if err != nil {
		return models.Note{}, err
	}

	note := models.Note{
		ID:        stored.ID,
		Title:     in.Title,
		Content:   in.Content,
		Timestamp: s.clock.Now(),
		OwnerID:   ownerID,
	}

	err = s.noteRepository.Save(ctx, note)
	if errors.Is(err, store.ErrNoteNotFound) {
		return models.Note{}, ErrNoteDoesNotExist
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*noteService.UpdateNote").Str("note_id", note.ID).Msg("note update ended with error")
		return models.Note{}, fmt.Errorf("note update ended with error: %w", err)
	}

	return note, nil
}

func (s *noteService) DeleteNote(ctx context.Context, ownerID, noteID string) (models.Note, error) {
	stored, err := s.find(ctx, ownerID, noteID)
	if err != nil {
		return models.Note{}, err
	}

	err = s.noteRepository.Remove(ctx, ownerID, noteID)
	if errors.Is(err, store.ErrNoteNotFound) {
		return models.Note{}, ErrNoteDoesNotExist
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*noteService.DeleteNote").Str("note_id", noteID).Msg("note removal ended with error")
		return models.Note{}, fmt.Errorf("note removal ended with error: %w", err)
	}

	return stored, nil
}

func (s *noteService) GetNote(ctx context.Context, ownerID, noteID string) (models.Note, error) {
	return s.find(ctx, ownerID, noteID)
}

// ListNotes returns one page of the owner's notes, newest first. One row
// more than a page is fetched: its presence means an older page exists.
func (s *noteService) ListNotes(ctx context.Context, ownerID string, request models.ListRequest) (models.Page, error) {
	query := models.PageQuery{
		OwnerID: ownerID,
		Pattern: request.Pattern,
		Limit:   models.PageSize + 1,
	}
	if cursor, ok := parseCursor(request.Cursor); ok {
		query.Cursor = &cursor
	}

	notes, err := s.noteRepository.FindPage(ctx, query)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*noteService.ListNotes").Msg("page query ended with error")
		return models.Page{}, fmt.Errorf("page query ended with error: %w", err)
	}

	isEnd := len(notes) <= models.PageSize
	if !isEnd {
		notes = notes[:models.PageSize]
	}
	if notes == nil {
		notes = []models.Note{}
	}

	return models.Page{Notes: notes, IsEnd: isEnd}, nil
}

func (s *noteService) find(ctx context.Context, ownerID, noteID string) (models.Note, error) {
	note, err := s.noteRepository.FindByOwnerAndID(ctx, ownerID, noteID)
	if errors.Is(err, store.ErrNoteNotFound) {
		return models.Note{}, ErrNoteDoesNotExist
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*noteService.find").Str("note_id", noteID).Msg("note search ended with error")
		return models.Note{}, fmt.Errorf("note search ended with error: %w", err)
	}

	return note, nil
}

// parseCursor accepts an RFC 3339 instant, the format notes carry their
// timestamps in. Anything else means "no cursor".
//
// Stored timestamps have microsecond resolution, so a cursor with finer
// digits is rounded up: notes of its own microsecond are older than it.
func parseCursor(cursor string) (time.Time, bool) {
	if cursor == "" {
		return time.Time{}, false
	}

	t, err := time.Parse(time.RFC3339Nano, cursor)
	if err != nil {
		return time.Time{}, false
	}

	t = t.UTC()
	if truncated := t.Truncate(time.Microsecond); !truncated.Equal(t) {
		t = truncated.Add(time.Microsecond)
	}

	return t, true
}
