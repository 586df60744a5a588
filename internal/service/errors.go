// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	// ErrInvalidDataProvided wraps every validation failure. The wrapped
	// validator error tells what exactly was wrong.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrWrongCredentials is returned by login for an unknown nickname and
	// for a wrong password alike.
	ErrWrongCredentials = errors.New("user with these credentials does not exist")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	// ErrUnauthenticated is returned when a connection credential is
	// absent, malformed, expired, badly signed or resolves to no user.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNoteDoesNotExist hides whether a note is absent or owned by
	// someone else.
	ErrNoteDoesNotExist = errors.New("note does not exist")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
