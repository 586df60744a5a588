// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/store"
	"github.com/MKhiriev/go-notes-sync/internal/utils"
	"github.com/MKhiriev/go-notes-sync/internal/validators"
	"github.com/MKhiriev/go-notes-sync/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification and the JWT
// lifecycle of access and refresh tokens.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	validator validators.Validator
	ids       idGenerator

	// tokenSignKey signs access tokens, refreshSignKey signs refresh tokens.
	tokenSignKey   string
	refreshSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	tokenDuration   time.Duration
	refreshDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:  userRepository,
		validator:       validators.NewCredentialsValidator(),
		ids:             utils.NewUUIDGenerator(),
		tokenSignKey:    cfg.TokenSignKey,
		refreshSignKey:  cfg.RefreshSignKey,
		tokenIssuer:     cfg.TokenIssuer,
		tokenDuration:   cfg.TokenDuration,
		refreshDuration: cfg.RefreshDuration,
		logger:          logger,
	}
}

// RegisterUser validates the credentials, hashes the password with bcrypt
// and stores a new user with a fresh UUID.
//
// Returns the stored user or:
//   - ErrInvalidDataProvided wrapping the validator error.
//   - A wrapped storage error, e.g. store.ErrNicknameAlreadyExists.
func (a *authService) RegisterUser(ctx context.Context, credentials models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, credentials); err != nil {
		log.Debug().Err(err).Str("nickname", credentials.Nickname).Msg("invalid credentials provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	hash, err := utils.HashPassword(credentials.Password)
	if err != nil {
		log.Err(err).Str("func", "*authService.RegisterUser").Msg("password hashing failed")
		return models.User{}, err
	}

	user := models.User{
		ID:           a.ids.Generate(),
		Nickname:     credentials.Nickname,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("nickname", user.Nickname).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login returns the user whose nickname and password match. An unknown
// nickname and a wrong password both yield ErrWrongCredentials.
func (a *authService) Login(ctx context.Context, credentials models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx)

	if credentials.Nickname == "" || credentials.Password == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByNickname(ctx, credentials.Nickname)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, ErrWrongCredentials
	}
	if err != nil {
		log.Err(err).Str("nickname", credentials.Nickname).Msg("user search by nickname failed")
		return models.User{}, fmt.Errorf("user search by nickname failed: %w", err)
	}

	if !utils.CheckPassword(foundUser.PasswordHash, credentials.Password) {
		log.Debug().Str("id", foundUser.ID).Msg("wrong password")
		return models.User{}, ErrWrongCredentials
	}

	return foundUser, nil
}

// CreateTokens issues an access token signed with tokenSignKey and a
// refresh token signed with refreshSignKey.
func (a *authService) CreateTokens(ctx context.Context, user models.User) (models.TokenPair, error) {
	access, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	refresh, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, a.refreshDuration, a.refreshSignKey)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return models.TokenPair{AccessToken: access.String(), RefreshToken: refresh.String()}, nil
}

// ParseAccessToken validates and parses a raw access token. Any validation
// failure (expired, wrong issuer, malformed, bad signature) is normalised to
// ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseAccessToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("access token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// Refresh exchanges a valid refresh token of an existing user for a new pair.
func (a *authService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	token, err := utils.ValidateAndParseJWTToken(refreshToken, a.refreshSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("refresh token rejected")
		return models.TokenPair{}, ErrTokenIsExpiredOrInvalid
	}

	user, err := a.userRepository.FindUserByID(ctx, token.OwnerID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.TokenPair{}, ErrUnauthenticated
	}
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return a.CreateTokens(ctx, user)
}

func (a *authService) GetPublicData(ctx context.Context, ownerID string) (models.UserPublicData, error) {
	user, err := a.userRepository.FindUserByID(ctx, ownerID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.GetPublicData").Msg("user search by id failed")
		return models.UserPublicData{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return models.UserPublicData{Nickname: user.Nickname, Avatar: user.Avatar}, nil
}

// Authenticate resolves credential to a session. It fails closed: a
// missing or bad credential and an unknown owner are all ErrUnauthenticated.
// Only a storage failure is reported as something else.
func (a *authService) Authenticate(ctx context.Context, credential string) (models.Session, error) {
	log := logger.FromContext(ctx)

	raw, err := utils.ParseBearerToken(credential)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	token, err := a.ParseAccessToken(ctx, raw)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	user, err := a.userRepository.FindUserByID(ctx, token.OwnerID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Debug().Str("owner_id", token.OwnerID).Msg("token of unknown user")
		return models.Session{}, ErrUnauthenticated
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Authenticate").Msg("user search by id failed")
		return models.Session{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return models.Session{User: user, ExpiresAt: token.ExpiresAt.Time}, nil
}
