// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User is the owner of a set of notes. It is created by the account endpoints
// and only ever read by the synchronization layer.
type User struct {
	// ID is the stable opaque owner identifier (UUID). It is the "sub" claim of
	// every token issued for the user and the key of the user's room.
	ID string `json:"id"`

	// Nickname is the unique login name.
	Nickname string `json:"nickname"`

	// PasswordHash is the bcrypt hash of the user's password. It never leaves
	// the server.
	PasswordHash string `json:"-"`

	// Avatar is an optional URL of the user's avatar image.
	Avatar *string `json:"avatar,omitempty"`

	// CreatedAt is the moment the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Credentials is the body of sign-up and login requests.
type Credentials struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

// UserPublicData is the subset of [User] that may be shown to the user's own
// devices.
type UserPublicData struct {
	Nickname string  `json:"nickname"`
	Avatar   *string `json:"avatar"`
}

// Session is the result of a successful connection handshake: the owner the
// credential resolved to and the moment the credential stops being valid.
type Session struct {
	User      User
	ExpiresAt time.Time
}
