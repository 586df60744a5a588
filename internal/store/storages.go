// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
)

// Storages bundles the repositories of one backend.
type Storages struct {
	NoteRepository NoteRepository
	UserRepository UserRepository

	db *DB
}

// NewStorages connects the backend selected by cfg.DB.DSN, applies its
// migrations and builds the repositories:
//   - "" or "memory": in-process maps;
//   - "postgres://", "postgresql://": PostgreSQL;
//   - "sqlite://", "file:" or a path ending in ".db": SQLite.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	dsn := cfg.DB.DSN

	var (
		db  *DB
		err error
	)
	switch {
	case dsn == "" || dsn == "memory":
		log.Info().Str("func", "NewStorages").Msg("using in-memory storage")
		notes, users := NewMemoryRepositories()
		return &Storages{NoteRepository: notes, UserRepository: users}, nil

	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		db, err = NewConnectPostgres(ctx, dsn, log)

	case strings.HasPrefix(dsn, "sqlite://"), strings.HasPrefix(dsn, "file:"), strings.HasSuffix(dsn, ".db"):
		db, err = NewConnectSQLite(ctx, dsn, log)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDSN, redactDSN(dsn))
	}
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("failed to apply migrations")
		_ = db.Close()
		return nil, err
	}

	return &Storages{
		NoteRepository: NewNoteRepository(db, log),
		UserRepository: NewUserRepository(db, log),
		db:             db,
	}, nil
}

// Ping checks the database connection. The in-memory backend is always up.
func (s *Storages) Ping(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.PingContext(ctx)
}

// Close releases the database connection, if any.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// redactDSN drops everything after the scheme so credentials never reach
// logs or errors.
func redactDSN(dsn string) string {
	if i := strings.Index(dsn, "://"); i >= 0 {
		return dsn[:i+3] + "..."
	}
	return "..."
}
