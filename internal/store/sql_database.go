// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/migrations"
)

// Dialect selects SQL flavour details that differ between backends.
type Dialect string

const (
	DialectPostgres Dialect = migrations.DialectPostgres
	DialectSQLite   Dialect = migrations.DialectSQLite
)

// DB wraps a *sql.DB with its dialect and error classifier.
type DB struct {
	*sql.DB
	dialect            Dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies the embedded migrations of the connection's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, string(db.dialect))
}

// builder returns a squirrel statement builder with the dialect's
// placeholder format.
func (db *DB) builder() sq.StatementBuilderType {
	if db.dialect == DialectPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// timeArg converts t into the column representation of the dialect:
// TIMESTAMPTZ on PostgreSQL, unix microseconds on SQLite.
func (db *DB) timeArg(t time.Time) any {
	if db.dialect == DialectSQLite {
		return t.UnixMicro()
	}
	return t.UTC()
}

// matchPattern builds the case-insensitive "title or content contains"
// predicate for pattern.
func (db *DB) matchPattern(pattern string) sq.Sqlizer {
	like := "%" + escapeLike(pattern) + "%"
	if db.dialect == DialectPostgres {
		return sq.Or{sq.ILike{"title": like}, sq.ILike{"content": like}}
	}
	// SQLite LIKE is case-insensitive for ASCII and has no default escape.
	return sq.Or{
		sq.Expr(`title LIKE ? ESCAPE '\'`, like),
		sq.Expr(`content LIKE ? ESCAPE '\'`, like),
	}
}

// isUniqueViolation reports whether err is a unique constraint violation.
func (db *DB) isUniqueViolation(err error) bool {
	return db.errorClassificator != nil && db.errorClassificator.Classify(err) == UniqueViolation
}

// withRetry runs op again while it fails with a retryable error, up to
// maxRetries extra attempts.
func (db *DB) withRetry(ctx context.Context, op func() error) error {
	err := op()
	for attempt := 0; attempt < maxRetries && err != nil; attempt++ {
		if db.errorClassificator == nil || db.errorClassificator.Classify(err) != Retryable {
			return err
		}

		select {
		case <-ctx.Done():
			return err
		case <-time.After(retryBackoff * time.Duration(attempt+1)):
		}

		logger.FromContext(ctx).Warn().Err(err).Int("attempt", attempt+1).Msg("retrying database operation")
		err = op()
	}

	return err
}

const (
	maxRetries   = 2
	retryBackoff = 50 * time.Millisecond
)

// timeValue scans a timestamp column of either dialect.
type timeValue struct {
	t *time.Time
}

func (v timeValue) Scan(src any) error {
	switch s := src.(type) {
	case time.Time:
		*v.t = s.UTC()
	case int64:
		*v.t = time.UnixMicro(s).UTC()
	case nil:
		*v.t = time.Time{}
	default:
		return errUnexpectedTimeType
	}
	return nil
}
