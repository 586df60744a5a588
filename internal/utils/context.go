// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides small helpers shared by the server and the client:
// typed context keys, password hashing, JWT issuing and verification, JSON
// response writing, the HTTP client and id generation.
package utils

import (
	"context"
	"time"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String implements fmt.Stringer.
func (c contextKey) String() string {
	return string(c)
}

var (
	// OwnerIDCtxKey stores the authenticated owner's id (string).
	OwnerIDCtxKey = contextKey("ownerID")

	// TokenExpiryCtxKey stores the expiry of the access token the request
	// was authenticated with (time.Time).
	TokenExpiryCtxKey = contextKey("tokenExpiry")
)

// WithOwnerID returns a copy of ctx carrying the owner id.
func WithOwnerID(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, OwnerIDCtxKey, ownerID)
}

// GetOwnerIDFromContext retrieves the owner id stored by WithOwnerID.
// ok is false when the value is missing, has the wrong type or is empty.
func GetOwnerIDFromContext(ctx context.Context) (string, bool) {
	ownerID, ok := ctx.Value(OwnerIDCtxKey).(string)
	return ownerID, ok && ownerID != ""
}

// WithTokenExpiry returns a copy of ctx carrying the access token expiry.
func WithTokenExpiry(ctx context.Context, expiresAt time.Time) context.Context {
	return context.WithValue(ctx, TokenExpiryCtxKey, expiresAt)
}

// GetTokenExpiryFromContext retrieves the expiry stored by WithTokenExpiry.
func GetTokenExpiryFromContext(ctx context.Context) (time.Time, bool) {
	expiresAt, ok := ctx.Value(TokenExpiryCtxKey).(time.Time)
	return expiresAt, ok
}
