// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-notes-sync/models"
)

var (
	notesTable = models.Note{}.TableName()
	usersTable = models.User{}.TableName()

	noteColumns = []string{"id", "owner_id", "title", "content", "updated_at"}
	userColumns = []string{"id", "nickname", "password_hash", "avatar", "created_at"}
)

// upsertNoteSuffix replaces a stored note only when it has the same owner.
// Both PostgreSQL and SQLite (3.24+) understand it.
const upsertNoteSuffix = `ON CONFLICT (id) DO UPDATE SET
	title = excluded.title,
	content = excluded.content,
	updated_at = excluded.updated_at
	WHERE notes.owner_id = excluded.owner_id`

func buildFindNoteQuery(db *DB, ownerID, id string) (string, []any, error) {
	query, args, err := db.builder().
		Select(noteColumns...).
		From(notesTable).
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildFindPageQuery builds the keyset page query: notes of the owner,
// strictly older than the cursor when set, matching the pattern when set,
// newest first.
func buildFindPageQuery(db *DB, q models.PageQuery) (string, []any, error) {
	where := sq.And{sq.Eq{"owner_id": q.OwnerID}}
	if q.Cursor != nil {
		where = append(where, sq.Lt{"updated_at": db.timeArg(*q.Cursor)})
	}
	if q.Pattern != "" {
		where = append(where, db.matchPattern(q.Pattern))
	}

	limit := q.Limit
	if limit == 0 {
		limit = models.PageSize + 1
	}

	query, args, err := db.builder().
		Select(noteColumns...).
		From(notesTable).
		Where(where).
		OrderBy("updated_at DESC", "id DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildSaveNoteQuery(db *DB, note models.Note) (string, []any, error) {
	query, args, err := db.builder().
		Insert(notesTable).
		Columns(noteColumns...).
		Values(note.ID, note.OwnerID, note.Title, note.Content, db.timeArg(note.Timestamp)).
		Suffix(upsertNoteSuffix).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildRemoveNoteQuery(db *DB, ownerID, id string) (string, []any, error) {
	query, args, err := db.builder().
		Delete(notesTable).
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildCreateUserQuery(db *DB, user models.User) (string, []any, error) {
	query, args, err := db.builder().
		Insert(usersTable).
		Columns(userColumns...).
		Values(user.ID, user.Nickname, user.PasswordHash, user.Avatar, db.timeArg(user.CreatedAt)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildFindUserQuery(db *DB, where sq.Eq) (string, []any, error) {
	query, args, err := db.builder().
		Select(userColumns...).
		From(usersTable).
		Where(where).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
