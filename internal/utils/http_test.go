// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-notes-sync/models"
)

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()

	n, err := WriteJSON(w, map[string]string{"status": "ok"}, http.StatusCreated)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n == 0 {
		t.Error("expected bytes written")
	}
	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("unexpected content type %q", ct)
	}
}

func TestWriteJSON_Unmarshalable(t *testing.T) {
	w := httptest.NewRecorder()

	_, err := WriteJSON(w, make(chan int), http.StatusOK)

	if err == nil {
		t.Fatal("expected error for channel value")
	}
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()

	WriteError(w, "note does not exist", http.StatusNotFound)

	var body models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.StatusCode != http.StatusNotFound || body.Message != "note does not exist" {
		t.Errorf("unexpected body %+v", body)
	}
}

func TestNewHTTPClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/json" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c1 := NewHTTPClient(srv.URL, time.Second)
	c2 := NewHTTPClient(srv.URL, time.Second)
	if c1.Client == c2.Client {
		t.Fatal("expected independent resty clients")
	}

	resp, err := c1.R().Get("/ping")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode() != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode())
	}
}

func TestIsUUID(t *testing.T) {
	gen := NewUUIDGenerator()
	if !IsUUID(gen.Generate()) {
		t.Error("generated id must be a UUID")
	}
	for _, s := range []string{"", "123", "not-a-uuid-not-a-uuid-not-a-uuid-123", "{0190d3c4-7b6a-7cc2-9a55-1d2f0c3e4b5a}"} {
		if IsUUID(s) {
			t.Errorf("expected %q not to be a UUID", s)
		}
	}
}
