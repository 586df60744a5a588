// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client's transport to the notes server.
//
// [ServerAdapter] covers the REST surface (accounts, tokens, paginated
// listing) and opens a [NoteStream], the persistent channel that carries
// mutations and live events. Transport failures are mapped onto the sentinel
// errors in errors.go so callers can use [errors.Is] (e.g. [ErrUnauthorized]
// for 401, [ErrNotFound] for 404).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-notes-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// ServerAdapter defines communication with the notes server.
type ServerAdapter interface {
	// SetTokens replaces the token pair attached to authenticated requests.
	SetTokens(pair models.TokenPair)

	// Tokens returns the current token pair. It changes after a refresh.
	Tokens() models.TokenPair

	// SignUp registers a new account. It does not log in.
	SignUp(ctx context.Context, credentials models.Credentials) (models.SignUpResponse, error)

	// Login exchanges credentials for a token pair and stores it.
	Login(ctx context.Context, credentials models.Credentials) (models.TokenPair, error)

	// Refresh exchanges the stored refresh token for a new pair and stores it.
	Refresh(ctx context.Context) (models.TokenPair, error)

	// GetUser returns the public profile of the logged in user.
	GetUser(ctx context.Context) (models.UserPublicData, error)

	// ListNotes fetches one page of the user's notes, newest first.
	ListNotes(ctx context.Context, request models.ListRequest) (models.Page, error)

	// GetNote fetches a single note.
	GetNote(ctx context.Context, noteID string) (models.Note, error)

	// Version returns the server build information.
	Version(ctx context.Context) (models.AppBuildInfo, error)

	// OpenStream dials the persistent channel with the current access token.
	OpenStream(ctx context.Context) (NoteStream, error)
}

// NoteStream is an open persistent channel to the user's room.
type NoteStream interface {
	// Send writes one outbound frame.
	Send(ctx context.Context, event models.Event) error

	// Events delivers inbound frames in arrival order. It is closed when the
	// channel is gone.
	Events() <-chan models.InboundEvent

	// Err reports why Events was closed. It is nil after a normal closure.
	Err() error

	// Close sends a normal closure and releases the connection.
	Close() error
}
