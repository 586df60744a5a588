// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators holds input validation shared by the REST surface and
// the notes channel. Validation runs before any store access.
package validators

import "context"

// Validator validates arbitrary input. Optional field names restrict
// validation to a subset of the input's fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
