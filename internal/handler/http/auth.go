// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/utils"
	"github.com/MKhiriev/go-notes-sync/models"
)

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var credentials models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.Debug().Err(err).Msg("Invalid JSON was passed")
		writeError(w, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	user, err := h.services.AuthService.RegisterUser(ctx, credentials)
	if err != nil {
		log.Err(err).Str("func", "*Handler.signUp").Msg("user registration failed")
		writeError(w, err)
		return
	}

	log.Debug().Str("id", user.ID).Msg("user registered")
	_, _ = utils.WriteJSON(w, models.SignUpResponse{ID: user.ID}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var credentials models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.Debug().Err(err).Msg("Invalid JSON was passed")
		writeError(w, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	user, err := h.services.AuthService.Login(ctx, credentials)
	if err != nil {
		log.Debug().Err(err).Str("nickname", credentials.Nickname).Msg("login failed")
		writeError(w, err)
		return
	}

	pair, err := h.services.AuthService.CreateTokens(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("creation of tokens failed")
		writeError(w, err)
		return
	}

	log.Debug().Str("id", user.ID).Msg("user logged in")
	_, _ = utils.WriteJSON(w, pair, http.StatusOK)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	refreshToken, _ := utils.ParseBearerToken(r.Header.Get("Authorization"))
	pair, err := h.services.AuthService.Refresh(r.Context(), refreshToken)
	if err != nil {
		log.Debug().Err(err).Msg("token refresh failed")
		writeError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, pair, http.StatusOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	ownerID, ok := utils.GetOwnerIDFromContext(r.Context())
	if !ok {
		writeError(w, errNoOwnerInContext)
		return
	}

	user, err := h.services.AuthService.GetPublicData(r.Context(), ownerID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getUser").Msg("user lookup failed")
		writeError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, user, http.StatusOK)
}
