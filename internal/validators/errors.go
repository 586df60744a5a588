// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrNoDataSubmitted = errors.New("no data submitted")
	ErrEmptyNote       = errors.New("at least one field is required")
	ErrInvalidNoteID   = errors.New("note id must be a UUID")

	ErrInvalidNickname = errors.New("nickname must be 3-32 letters, digits, '_' or '-'")
	ErrWeakPassword    = errors.New("password must be at least 8 letters and digits with an uppercase letter, a lowercase letter and a digit")
)
