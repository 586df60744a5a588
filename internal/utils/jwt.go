// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-notes-sync/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidAuthorizationHeader is returned for an absent or malformed
	// credential string.
	ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")

	errInvalidJWTParams = errors.New("invalid params for generating JWT Token")
)

const bearerScheme = "bearer"

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token with the given parameters.
//
// The token includes the following standard claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the owner id
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//
// All parameters are required.
func GenerateJWTToken(issuer, ownerID string, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || ownerID == "" || tokenDuration <= 0 || signKey == "" {
		return models.Token{}, errInvalidJWTParams
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   ownerID,
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{
		Token:            token,
		RegisteredClaims: claims,
		SignedString:     tokenString,
		OwnerID:          ownerID,
	}, nil
}

// ValidateAndParseJWTToken verifies signature, algorithm, issuer and expiry
// of tokenString and extracts the owner id from its subject.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	parsed := models.Token{Token: token, RegisteredClaims: *claims, SignedString: tokenString}
	ownerID, err := parsed.GetOwnerID()
	if err != nil {
		return models.Token{}, err
	}
	parsed.OwnerID = ownerID

	return parsed, nil
}

// ParseBearerToken extracts the raw token from a credential string. A
// "Bearer" scheme is matched case-insensitively; a bare token is accepted as
// is. The scheme word alone is rejected.
func ParseBearerToken(authorizationHeader string) (string, error) {
	fields := strings.Fields(authorizationHeader)

	switch {
	case len(fields) == 1 && !strings.EqualFold(fields[0], bearerScheme):
		return fields[0], nil
	case len(fields) == 2 && strings.EqualFold(fields[0], bearerScheme):
		return fields[1], nil
	default:
		return "", ErrInvalidAuthorizationHeader
	}
}

// ParseUnverifiedExpiry reads the "exp" claim without verifying the
// signature. The client uses it to decide whether to refresh before a call.
func ParseUnverifiedExpiry(tokenString string) (time.Time, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, errors.New("token has no expiry")
	}

	return claims.ExpiresAt.Time, nil
}
