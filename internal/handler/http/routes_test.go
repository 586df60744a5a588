// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// ── Init ──

var protectedRoutes = []struct {
	method string
	path   string
}{
	{http.MethodGet, "/api/auth/user"},
	{http.MethodGet, "/api/notes"},
	{http.MethodPost, "/api/notes"},
	{http.MethodGet, "/api/notes/0190d3c4-0000-7000-8000-000000000001"},
	{http.MethodPut, "/api/notes/0190d3c4-0000-7000-8000-000000000001"},
	{http.MethodDelete, "/api/notes/0190d3c4-0000-7000-8000-000000000001"},
}

func TestInit_ProtectedRoutesRequireToken(t *testing.T) {
	f := newHandlerFixture(t)

	for _, tc := range protectedRoutes {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := f.do(t, tc.method, tc.path, "", nil)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestInit_ChannelEndpoint(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(t, http.MethodGet, "/notes", "", nil)

	assert.Equal(t, channelStatus, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}

func TestInit_UnknownRouteReturns404(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(t, http.MethodGet, "/api/nonexistent", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInit_WrongMethodReturns404(t *testing.T) {
	f := newHandlerFixture(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/version"},
		{http.MethodGet, "/api/auth/login"},
		{http.MethodPost, "/notes"},
		{http.MethodPatch, "/api/notes/0190d3c4-0000-7000-8000-000000000001"},
	}

	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := f.do(t, tc.method, tc.path, aliceToken, nil)

			assert.Equal(t, http.StatusNotFound, rec.Code)
		})
	}
}

// ── CheckHTTPMethod ──

func TestCheckHTTPMethod(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/api/items", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Post("/api/items", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	tests := []struct {
		name   string
		method string
		want   int
	}{
		{name: "registered GET", method: http.MethodGet, want: http.StatusOK},
		{name: "registered POST", method: http.MethodPost, want: http.StatusCreated},
		{name: "DELETE hidden", method: http.MethodDelete, want: http.StatusNotFound},
		{name: "PUT hidden", method: http.MethodPut, want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, "/api/items", nil))

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
