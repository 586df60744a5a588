// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/models"
)

func newTestUserRepo(t *testing.T, dialect Dialect) (*userRepository, sqlmock.Sqlmock) {
	db, mock := newMockDB(t, dialect)
	return &userRepository{db: db, logger: logger.Nop()}, mock
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t, DialectPostgres)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	user := models.User{ID: testOwner, Nickname: "john", PasswordHash: "hash", CreatedAt: now}

	mock.ExpectExec(`INSERT INTO users \(id,nickname,password_hash,avatar,created_at\)`).
		WithArgs(testOwner, "john", "hash", nil, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.CreateUser(context.Background(), user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != testOwner || created.Nickname != "john" {
		t.Errorf("unexpected user %+v", created)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock := newTestUserRepo(t, DialectPostgres)

	mock.ExpectExec("INSERT INTO users").WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), models.User{ID: testOwner, Nickname: "john"})
	if !errors.Is(err, ErrNicknameAlreadyExists) {
		t.Fatalf("expected ErrNicknameAlreadyExists, got %v", err)
	}
}

func TestCreateUser_SQLiteUniqueViolation(t *testing.T) {
	repo, mock := newTestUserRepo(t, DialectSQLite)

	mock.ExpectExec("INSERT INTO users").
		WithArgs(testOwner, "john", "", nil, sqlmock.AnyArg()).
		WillReturnError(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique})

	_, err := repo.CreateUser(context.Background(), models.User{ID: testOwner, Nickname: "john"})
	if !errors.Is(err, ErrNicknameAlreadyExists) {
		t.Fatalf("expected ErrNicknameAlreadyExists, got %v", err)
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock := newTestUserRepo(t, DialectPostgres)

	mock.ExpectExec("INSERT INTO users").WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(context.Background(), models.User{ID: testOwner, Nickname: "john"})
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestFindUserByNickname_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t, DialectPostgres)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT id, nickname, password_hash, avatar, created_at FROM users WHERE nickname = \$1`).
		WithArgs("john").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(testOwner, "john", "hash", "https://a/b.png", now))

	user, err := repo.FindUserByNickname(context.Background(), "john")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != testOwner || user.PasswordHash != "hash" {
		t.Errorf("unexpected user %+v", user)
	}
	if user.Avatar == nil || *user.Avatar != "https://a/b.png" {
		t.Errorf("unexpected avatar %v", user.Avatar)
	}
}

func TestFindUserByID_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t, DialectPostgres)

	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs(testOwner).
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.FindUserByID(context.Background(), testOwner)
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindUserByID_SQLiteTimestamp(t *testing.T) {
	repo, mock := newTestUserRepo(t, DialectSQLite)
	created := time.Date(2026, 2, 3, 4, 5, 6, 7000, time.UTC)

	mock.ExpectQuery(`FROM users WHERE id = \?`).
		WithArgs(testOwner).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(testOwner, "john", "hash", nil, created.UnixMicro()))

	user, err := repo.FindUserByID(context.Background(), testOwner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !user.CreatedAt.Equal(created) {
		t.Errorf("expected %v, got %v", created, user.CreatedAt)
	}
	if user.Avatar != nil {
		t.Errorf("expected nil avatar")
	}
}

func TestFindUserByID_ScanError(t *testing.T) {
	repo, mock := newTestUserRepo(t, DialectPostgres)

	mock.ExpectQuery("FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(testOwner))

	_, err := repo.FindUserByID(context.Background(), testOwner)
	if !errors.Is(err, ErrScanningRow) {
		t.Fatalf("expected ErrScanningRow, got %v", err)
	}
}
