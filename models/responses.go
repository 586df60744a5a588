// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ErrorResponse is the JSON body of every failed REST request. It carries
// the same normalized shape the channel uses: a status code and a
// human-readable message, never raw internal error text.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// SignUpResponse is returned by a successful sign-up.
type SignUpResponse struct {
	ID string `json:"id"`
}
