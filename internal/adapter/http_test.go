// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/utils"
	"github.com/MKhiriev/go-notes-sync/models"
)

const testOwner = "0190d3c4-0000-7000-8000-00000000000a"

func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	a, err := NewHTTPServerAdapter(config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second}, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

// issue signs an access token for testOwner that expires after ttl.
func issue(t *testing.T, ttl time.Duration) string {
	t.Helper()
	token, err := utils.GenerateJWTToken("test", testOwner, ttl, "key")
	require.NoError(t, err)
	return token.SignedString
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	_, _ = utils.WriteJSON(w, v, status)
}

// ── normalizeBaseURL / streamURL ──

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "host and port", raw: "localhost:8080", want: "http://localhost:8080"},
		{name: "trailing slash", raw: "https://notes.example.com/", want: "https://notes.example.com"},
		{name: "spaces", raw: "  http://127.0.0.1:9000  ", want: "http://127.0.0.1:9000"},
		{name: "empty", raw: "", wantErr: true},
		{name: "no host", raw: "http://", wantErr: true},
		{name: "websocket scheme", raw: "ws://localhost:8080", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestStreamURL(t *testing.T) {
	plain, err := normalizeBaseURL("localhost:8080")
	require.NoError(t, err)
	secure, err := normalizeBaseURL("https://notes.example.com/base/")
	require.NoError(t, err)

	assert.Equal(t, "ws://localhost:8080/notes", streamURL(plain))
	assert.Equal(t, "wss://notes.example.com/base/notes", streamURL(secure))
}

func TestNewHTTPServerAdapter_InvalidAddress(t *testing.T) {
	_, err := NewHTTPServerAdapter(config.ClientAdapter{}, logger.Nop())
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

// ── SignUp ──

func TestSignUp(t *testing.T) {
	credentials := models.Credentials{Nickname: "alice", Password: "Passw0rdX"}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/signup", r.URL.Path)

		var got models.Credentials
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		if got.Nickname == "taken" {
			utils.WriteError(w, "nickname already exists", http.StatusConflict)
			return
		}
		assert.Equal(t, credentials, got)
		writeJSON(w, models.SignUpResponse{ID: testOwner}, http.StatusCreated)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)

	resp, err := a.SignUp(context.Background(), credentials)
	require.NoError(t, err)
	assert.Equal(t, testOwner, resp.ID)
	assert.Empty(t, a.Tokens())

	_, err = a.SignUp(context.Background(), models.Credentials{Nickname: "taken", Password: "x"})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "nickname already exists")
}

// ── Login / Refresh ──

func TestLogin_StoresTokens(t *testing.T) {
	pair := models.TokenPair{AccessToken: "access", RefreshToken: "refresh"}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		writeJSON(w, pair, http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Login(context.Background(), models.Credentials{Nickname: "alice", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, pair, got)
	assert.Equal(t, pair, a.Tokens())
}

func TestLogin_WrongCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, "wrong nickname or password", http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Login(context.Background(), models.Credentials{Nickname: "alice", Password: "nope"})

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, a.Tokens())
}

func TestRefresh(t *testing.T) {
	fresh := models.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/token/refresh", r.URL.Path)
		assert.Equal(t, "Bearer old-refresh", r.Header.Get("Authorization"))
		writeJSON(w, fresh, http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)

	_, err := a.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	a.SetTokens(models.TokenPair{AccessToken: "old-access", RefreshToken: "old-refresh"})
	got, err := a.Refresh(context.Background())

	require.NoError(t, err)
	assert.Equal(t, fresh, got)
	assert.Equal(t, fresh, a.Tokens())
}

// ── authenticated calls ──

func TestListNotes(t *testing.T) {
	access := issue(t, time.Hour)
	page := models.Page{Notes: []models.Note{{ID: "n1", Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}}, IsEnd: true}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/notes", r.URL.Path)
		assert.Equal(t, "Bearer "+access, r.Header.Get("Authorization"))
		assert.Equal(t, "milk", r.URL.Query().Get("pattern"))
		assert.Equal(t, "2026-01-01T00:00:00Z", r.URL.Query().Get("cursor"))
		writeJSON(w, page, http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetTokens(models.TokenPair{AccessToken: access})

	got, err := a.ListNotes(context.Background(), models.ListRequest{Pattern: "milk", Cursor: "2026-01-01T00:00:00Z"})

	require.NoError(t, err)
	assert.True(t, got.IsEnd)
	require.Len(t, got.Notes, 1)
	assert.Equal(t, "n1", got.Notes[0].ID)
	assert.True(t, page.Notes[0].Timestamp.Equal(got.Notes[0].Timestamp))
}

func TestListNotes_NotLoggedIn(t *testing.T) {
	a := newTestAdapter(t, "http://127.0.0.1:1")

	_, err := a.ListNotes(context.Background(), models.ListRequest{})

	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestListNotes_RefreshesExpiringToken(t *testing.T) {
	expiring := issue(t, 10*time.Second)
	fresh := issue(t, time.Hour)
	var refreshes atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/token/refresh":
			refreshes.Add(1)
			writeJSON(w, models.TokenPair{AccessToken: fresh, RefreshToken: "refresh-2"}, http.StatusOK)
		case "/api/notes":
			assert.Equal(t, "Bearer "+fresh, r.Header.Get("Authorization"))
			writeJSON(w, models.Page{Notes: []models.Note{}, IsEnd: true}, http.StatusOK)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetTokens(models.TokenPair{AccessToken: expiring, RefreshToken: "refresh-1"})

	_, err := a.ListNotes(context.Background(), models.ListRequest{})

	require.NoError(t, err)
	assert.Equal(t, int32(1), refreshes.Load())
	assert.Equal(t, "refresh-2", a.Tokens().RefreshToken)
}

func TestGetNote_RetriesAfterUnauthorized(t *testing.T) {
	revoked := issue(t, time.Hour)
	fresh := issue(t, 2*time.Hour)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/token/refresh":
			writeJSON(w, models.TokenPair{AccessToken: fresh, RefreshToken: "refresh-2"}, http.StatusOK)
		case "/api/notes/n1":
			if r.Header.Get("Authorization") != "Bearer "+fresh {
				utils.WriteError(w, "token is expired or invalid", http.StatusUnauthorized)
				return
			}
			writeJSON(w, models.Note{ID: "n1"}, http.StatusOK)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetTokens(models.TokenPair{AccessToken: revoked, RefreshToken: "refresh-1"})

	note, err := a.GetNote(context.Background(), "n1")

	require.NoError(t, err)
	assert.Equal(t, "n1", note.ID)
	assert.Equal(t, fresh, a.Tokens().AccessToken)
}

func TestGetNote_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, "Note does not exist.", http.StatusNotFound)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetTokens(models.TokenPair{AccessToken: issue(t, time.Hour)})

	_, err := a.GetNote(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "Note does not exist.")
}

func TestGetUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/user", r.URL.Path)
		writeJSON(w, models.UserPublicData{Nickname: "alice"}, http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetTokens(models.TokenPair{AccessToken: issue(t, time.Hour)})

	user, err := a.GetUser(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "alice", user.Nickname)
}

// ── error mapping ──

func TestVersion_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{name: "bad request", status: http.StatusBadRequest, body: `{"statusCode":400,"message":"Invalid data provided."}`, wantErr: ErrBadRequest, wantMsg: "Invalid data provided."},
		{name: "unauthorized", status: http.StatusUnauthorized, body: "nope", wantErr: ErrUnauthorized, wantMsg: "nope"},
		{name: "not found", status: http.StatusNotFound, wantErr: ErrNotFound, wantMsg: "Not Found"},
		{name: "internal", status: http.StatusInternalServerError, body: `{"statusCode":500,"message":"Internal Server Error"}`, wantErr: ErrInternalServerError},
		{name: "other", status: http.StatusTeapot, wantMsg: "http 418"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestAdapter(t, srv.URL).Version(context.Background())

			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, models.NewAppBuildInfo("1.2.3", "2026-10-01", "abc"), http.StatusOK)
	}))
	defer srv.Close()

	info, err := newTestAdapter(t, srv.URL).Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "abc", info.Commit)
}
