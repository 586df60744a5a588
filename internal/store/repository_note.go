// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/models"
)

// noteRepository is the SQL implementation of [NoteRepository] shared by the
// PostgreSQL and SQLite backends.
type noteRepository struct {
	*DB
	logger *logger.Logger
}

func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	logger.Debug().Str("dialect", string(db.dialect)).Msg("creating note repository")
	return &noteRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *noteRepository) FindByOwnerAndID(ctx context.Context, ownerID, id string) (models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindNoteQuery(r.DB, ownerID, id)
	if err != nil {
		log.Err(err).Str("func", "noteRepository.FindByOwnerAndID").Msg("failed to create query")
		return models.Note{}, err
	}

	note, err := scanNote(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Note{}, ErrNoteNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.FindByOwnerAndID").
			Str("note_id", id).
			Msg("failed to find note")
		return models.Note{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return note, nil
}

func (r *noteRepository) FindPage(ctx context.Context, q models.PageQuery) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindPageQuery(r.DB, q)
	if err != nil {
		log.Err(err).Str("func", "noteRepository.FindPage").Msg("failed to create query")
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.FindPage").
			Bool("has_cursor", q.Cursor != nil).
			Bool("has_pattern", q.Pattern != "").
			Msg("failed to execute page query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0, models.PageSize+1)
	for rows.Next() {
		note, scanErr := scanNote(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "noteRepository.FindPage").Msg("failed to scan note row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		notes = append(notes, note)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "noteRepository.FindPage").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return notes, nil
}

func (r *noteRepository) Save(ctx context.Context, note models.Note) error {
	log := logger.FromContext(ctx)

	query, args, err := buildSaveNoteQuery(r.DB, note)
	if err != nil {
		log.Err(err).Str("func", "noteRepository.Save").Msg("failed to create query")
		return err
	}

	var affected int64
	err = r.withRetry(ctx, func() error {
		res, execErr := r.DB.ExecContext(ctx, query, args...)
		if execErr != nil {
			return execErr
		}
		affected, execErr = res.RowsAffected()
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "noteRepository.Save").Str("note_id", note.ID).Msg("failed to save note")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	// the conflict guard skipped a note of another owner
	if affected == 0 {
		return ErrNoteNotFound
	}

	return nil
}

func (r *noteRepository) Remove(ctx context.Context, ownerID, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildRemoveNoteQuery(r.DB, ownerID, id)
	if err != nil {
		log.Err(err).Str("func", "noteRepository.Remove").Msg("failed to create query")
		return err
	}

	var affected int64
	err = r.withRetry(ctx, func() error {
		res, execErr := r.DB.ExecContext(ctx, query, args...)
		if execErr != nil {
			return execErr
		}
		affected, execErr = res.RowsAffected()
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "noteRepository.Remove").Str("note_id", id).Msg("failed to remove note")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected == 0 {
		return ErrNoteNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (models.Note, error) {
	var (
		note    models.Note
		title   sql.NullString
		content sql.NullString
	)

	if err := row.Scan(&note.ID, &note.OwnerID, &title, &content, timeValue{&note.Timestamp}); err != nil {
		return models.Note{}, err
	}
	if title.Valid {
		note.Title = &title.String
	}
	if content.Valid {
		note.Content = &content.String
	}

	return note, nil
}
