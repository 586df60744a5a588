// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/utils"
	"github.com/MKhiriev/go-notes-sync/models"
)

// refreshSkew is how close to expiry an access token may get before the
// adapter refreshes it ahead of a call.
const refreshSkew = 30 * time.Second

type httpServerAdapter struct {
	client  *utils.HTTPClient
	baseURL *url.URL
	dialer  streamDialer

	mu     sync.Mutex
	tokens models.TokenPair

	now    func() time.Time
	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the REST implementation of [ServerAdapter].
// It normalises cfg.HTTPAddress (a bare host:port gets an http scheme) and
// derives the persistent channel URL from it.
func NewHTTPServerAdapter(cfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	return &httpServerAdapter{
		client:  utils.NewHTTPClient(baseURL.String(), cfg.RequestTimeout),
		baseURL: baseURL,
		dialer:  newStreamDialer(cfg.RequestTimeout),
		now:     time.Now,
		logger:  logger,
	}, nil
}

func normalizeBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Host == "" {
		return nil, errors.New("address must include a host")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/")

	return u, nil
}

// SetTokens implements [ServerAdapter].
func (h *httpServerAdapter) SetTokens(pair models.TokenPair) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.tokens = models.TokenPair{
		AccessToken:  strings.TrimSpace(pair.AccessToken),
		RefreshToken: strings.TrimSpace(pair.RefreshToken),
	}
}

// Tokens implements [ServerAdapter].
func (h *httpServerAdapter) Tokens() models.TokenPair {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.tokens
}

// SignUp implements [ServerAdapter]. POST /api/auth/signup.
func (h *httpServerAdapter) SignUp(ctx context.Context, credentials models.Credentials) (models.SignUpResponse, error) {
	var created models.SignUpResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(credentials).
		SetResult(&created).
		Post("/api/auth/signup")
	if err != nil {
		return models.SignUpResponse{}, fmt.Errorf("sign up request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SignUpResponse{}, err
	}

	return created, nil
}

// Login implements [ServerAdapter]. POST /api/auth/login.
func (h *httpServerAdapter) Login(ctx context.Context, credentials models.Credentials) (models.TokenPair, error) {
	var pair models.TokenPair

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(credentials).
		SetResult(&pair).
		Post("/api/auth/login")
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TokenPair{}, err
	}

	h.SetTokens(pair)
	return pair, nil
}

// Refresh implements [ServerAdapter]. POST /api/auth/token/refresh with the
// refresh token as the bearer credential.
func (h *httpServerAdapter) Refresh(ctx context.Context) (models.TokenPair, error) {
	refreshToken := h.Tokens().RefreshToken
	if refreshToken == "" {
		return models.TokenPair{}, ErrNotLoggedIn
	}

	var pair models.TokenPair

	resp, err := h.client.R().
		SetContext(ctx).
		SetAuthToken(refreshToken).
		SetResult(&pair).
		Post("/api/auth/token/refresh")
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("refresh request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TokenPair{}, err
	}

	h.SetTokens(pair)
	h.logger.Debug().Str("func", "httpServerAdapter.Refresh").Msg("token pair refreshed")
	return pair, nil
}

// GetUser implements [ServerAdapter]. GET /api/auth/user.
func (h *httpServerAdapter) GetUser(ctx context.Context) (models.UserPublicData, error) {
	var user models.UserPublicData

	resp, err := h.doAuthed(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.SetResult(&user).Get("/api/auth/user")
	})
	if err != nil {
		return models.UserPublicData{}, fmt.Errorf("get user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserPublicData{}, err
	}

	return user, nil
}

// ListNotes implements [ServerAdapter]. GET /api/notes.
func (h *httpServerAdapter) ListNotes(ctx context.Context, request models.ListRequest) (models.Page, error) {
	var page models.Page

	resp, err := h.doAuthed(ctx, func(req *resty.Request) (*resty.Response, error) {
		if request.Cursor != "" {
			req.SetQueryParam("cursor", request.Cursor)
		}
		if request.Pattern != "" {
			req.SetQueryParam("pattern", request.Pattern)
		}
		return req.SetResult(&page).Get("/api/notes")
	})
	if err != nil {
		return models.Page{}, fmt.Errorf("list notes request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Page{}, err
	}

	return page, nil
}

// GetNote implements [ServerAdapter]. GET /api/notes/{id}.
func (h *httpServerAdapter) GetNote(ctx context.Context, noteID string) (models.Note, error) {
	var note models.Note

	resp, err := h.doAuthed(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.SetPathParam("id", noteID).SetResult(&note).Get("/api/notes/{id}")
	})
	if err != nil {
		return models.Note{}, fmt.Errorf("get note request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Note{}, err
	}

	return note, nil
}

// Version implements [ServerAdapter]. GET /api/version.
func (h *httpServerAdapter) Version(ctx context.Context) (models.AppBuildInfo, error) {
	var info models.AppBuildInfo

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&info).
		Get("/api/version")
	if err != nil {
		return models.AppBuildInfo{}, fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AppBuildInfo{}, err
	}

	return info, nil
}

// OpenStream implements [ServerAdapter]. The access token is refreshed first
// when it is about to expire, since the server checks it only once per
// connection.
func (h *httpServerAdapter) OpenStream(ctx context.Context) (NoteStream, error) {
	if err := h.ensureFresh(ctx); err != nil {
		return nil, err
	}

	return h.dialer.dial(ctx, streamURL(h.baseURL), h.Tokens().AccessToken, h.logger)
}

// doAuthed runs send with the access token attached. A 401 answer is retried
// once after a refresh.
func (h *httpServerAdapter) doAuthed(ctx context.Context, send func(*resty.Request) (*resty.Response, error)) (*resty.Response, error) {
	if err := h.ensureFresh(ctx); err != nil {
		return nil, err
	}

	resp, err := send(h.client.R().SetContext(ctx).SetAuthToken(h.Tokens().AccessToken))
	if err != nil || resp.StatusCode() != http.StatusUnauthorized || h.Tokens().RefreshToken == "" {
		return resp, err
	}

	if _, refreshErr := h.Refresh(ctx); refreshErr != nil {
		h.logger.Debug().Err(refreshErr).Str("func", "httpServerAdapter.doAuthed").Msg("refresh after 401 failed")
		return resp, nil
	}

	return send(h.client.R().SetContext(ctx).SetAuthToken(h.Tokens().AccessToken))
}

// ensureFresh refreshes the pair when the access token is missing or
// expires within refreshSkew.
func (h *httpServerAdapter) ensureFresh(ctx context.Context) error {
	tokens := h.Tokens()
	if tokens.AccessToken == "" && tokens.RefreshToken == "" {
		return ErrNotLoggedIn
	}

	if tokens.AccessToken != "" {
		expiresAt, err := utils.ParseUnverifiedExpiry(tokens.AccessToken)
		if err == nil && h.now().Add(refreshSkew).Before(expiresAt) {
			return nil
		}
	}

	if tokens.RefreshToken == "" {
		return nil
	}

	if _, err := h.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh tokens: %w", err)
	}

	return nil
}
