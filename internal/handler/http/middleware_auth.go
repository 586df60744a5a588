// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/utils"
)

// auth is an HTTP middleware that enforces bearer authentication with an
// access token.
//
// On success the owner id and the token expiry are stored in the request
// context ([utils.WithOwnerID], [utils.WithTokenExpiry]). A missing header,
// a header without a token and a token that fails validation are all
// answered with 401 Unauthorized.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Debug().Err(ErrEmptyAuthorizationHeader).Send()
			writeError(w, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Debug().Err(err).Send()
			writeError(w, err)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseAccessToken(ctx, tokenString)
		if err != nil {
			log.Debug().Err(err).Msg("error occurred during parsing token")
			writeError(w, err)
			return
		}

		ctx = utils.WithOwnerID(ctx, token.OwnerID)
		if token.ExpiresAt != nil {
			ctx = utils.WithTokenExpiry(ctx, token.ExpiresAt.Time)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerOnly checks that a bearer token is present without validating it.
// The refresh endpoint validates the token itself with the refresh key.
func bearerOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := utils.ParseBearerToken(r.Header.Get("Authorization")); err != nil {
			writeError(w, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}
