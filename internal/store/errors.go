// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNicknameAlreadyExists is returned when registering a nickname that
	// is already taken.
	ErrNicknameAlreadyExists = errors.New("nickname already exists")

	// ErrNoUserWasFound is returned when no user matches the lookup.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrNoteNotFound is returned when a note does not exist or belongs to
	// another owner. Both cases look the same to the caller.
	ErrNoteNotFound = errors.New("note was not found")

	// ErrUnsupportedDSN is returned for a DSN no backend understands.
	ErrUnsupportedDSN = errors.New("unsupported database DSN")
)

// Low-level database operation errors, wrapped around the driver error.
var (
	ErrBuildingSQLQuery   = errors.New("error building sql query")
	ErrExecutingQuery     = errors.New("error executing sql query")
	ErrExecutingStatement = errors.New("failed to executing statement")
	ErrScanningRow        = errors.New("failed to scan row")
	ErrScanningRows       = errors.New("failed to scan rows")
)
