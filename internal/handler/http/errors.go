// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// request has no "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidJSON is reported for a request body that cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	errNoOwnerInContext = errors.New("no owner id in request context")
)
