// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"unicode"

	"github.com/MKhiriev/go-notes-sync/models"
)

const (
	FieldNickname = "nickname"
	FieldPassword = "password"

	minNicknameLength = 3
	maxNicknameLength = 32
	minPasswordLength = 8
)

// CredentialsValidator validates sign-up input.
type CredentialsValidator struct {
}

func NewCredentialsValidator() Validator {
	return &CredentialsValidator{}
}

func (v *CredentialsValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Credentials:
		return v.validateCredentials(value, fields...)
	case *models.Credentials:
		if value == nil {
			return ErrNoDataSubmitted
		}
		return v.validateCredentials(*value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *CredentialsValidator) validateCredentials(c models.Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldNickname, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldNickname:
			if !isValidNickname(c.Nickname) {
				return ErrInvalidNickname
			}
		case FieldPassword:
			if !isStrongPassword(c.Password) {
				return ErrWeakPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func isValidNickname(s string) bool {
	if len(s) < minNicknameLength || len(s) > maxNicknameLength {
		return false
	}
	for _, r := range s {
		if !isASCIILetterOrDigit(r) && r != '_' && r != '-' {
			return false
		}
	}
	return true
}

// isStrongPassword accepts only ASCII letters and digits, at least 8 of
// them, with at least one lowercase letter, one uppercase letter and one
// digit.
func isStrongPassword(s string) bool {
	if len(s) < minPasswordLength {
		return false
	}

	var lower, upper, digit bool
	for _, r := range s {
		if !isASCIILetterOrDigit(r) {
			return false
		}
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}

	return lower && upper && digit
}

func isASCIILetterOrDigit(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
