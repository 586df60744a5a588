// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-notes-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService owns accounts and credentials. The notes channel only uses
// Authenticate; the rest serves the account endpoints.
type AuthService interface {
	RegisterUser(ctx context.Context, credentials models.Credentials) (models.User, error)
	Login(ctx context.Context, credentials models.Credentials) (models.User, error)
	CreateTokens(ctx context.Context, user models.User) (models.TokenPair, error)
	ParseAccessToken(ctx context.Context, tokenString string) (models.Token, error)
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)
	GetPublicData(ctx context.Context, ownerID string) (models.UserPublicData, error)

	// Authenticate resolves a credential string ("Bearer <jwt>" or a bare
	// token) to its owner. Every failure to do so is ErrUnauthenticated.
	Authenticate(ctx context.Context, credential string) (models.Session, error)
}

// NoteService applies note mutations and serves pages. All methods are
// scoped to ownerID; notes of other owners are invisible.
type NoteService interface {
	CreateNote(ctx context.Context, ownerID string, input models.NoteInput) (models.Note, error)

	// UpdateNote replaces title and content of the note input.ID. Fields
	// missing from input are cleared.
	UpdateNote(ctx context.Context, ownerID string, input models.NoteInput) (models.Note, error)

	// DeleteNote removes the note and returns it as it was before removal.
	DeleteNote(ctx context.Context, ownerID, noteID string) (models.Note, error)

	GetNote(ctx context.Context, ownerID, noteID string) (models.Note, error)
	ListNotes(ctx context.Context, ownerID string, request models.ListRequest) (models.Page, error)
}

// AppInfoService exposes build metadata of the running server.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) models.AppBuildInfo
}

// NoteServiceWrapper defines middleware composition for NoteService.
// Implementations wrap an existing NoteService to add behavior such as
// validation.
type NoteServiceWrapper interface {
	Wrap(NoteService) NoteService
}

type idGenerator interface {
	Generate() string
}
