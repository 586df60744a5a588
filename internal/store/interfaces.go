// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store persists owners and their notes.
//
// Three backends implement the same repositories: PostgreSQL (pgx),
// SQLite (mattn/go-sqlite3) and process memory. [NewStorages] picks one from
// the configured DSN.
package store

import (
	"context"

	"github.com/MKhiriev/go-notes-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// NoteRepository is the Note Store: owner-scoped persistence of notes.
type NoteRepository interface {
	// FindByOwnerAndID returns the note with id if it belongs to ownerID,
	// ErrNoteNotFound otherwise.
	FindByOwnerAndID(ctx context.Context, ownerID, id string) (models.Note, error)

	// FindPage returns up to query.Limit notes of query.OwnerID, newest
	// first, filtered by query.Cursor and query.Pattern.
	FindPage(ctx context.Context, query models.PageQuery) ([]models.Note, error)

	// Save inserts note or replaces title, content and timestamp of the
	// stored note with the same id. A note with that id owned by someone
	// else is left untouched and ErrNoteNotFound is returned.
	Save(ctx context.Context, note models.Note) error

	// Remove deletes the note if it belongs to ownerID, ErrNoteNotFound
	// otherwise.
	Remove(ctx context.Context, ownerID, id string) error
}

// UserRepository stores owner accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByNickname(ctx context.Context, nickname string) (models.User, error)
	FindUserByID(ctx context.Context, id string) (models.User, error)
}

// ErrorClassificator maps a driver error to an [ErrorClassification].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
