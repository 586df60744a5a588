// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/mock"
	"github.com/MKhiriev/go-notes-sync/internal/realtime"
	"github.com/MKhiriev/go-notes-sync/internal/service"
	"github.com/MKhiriev/go-notes-sync/internal/store"
	"github.com/MKhiriev/go-notes-sync/models"
)

const (
	alice      = "0190d3c4-0000-7000-8000-00000000000a"
	bob        = "0190d3c4-0000-7000-8000-00000000000b"
	aliceToken = "alice-token"
	bobToken   = "bob-token"
)

// channelStatus is what the stub websocket endpoint answers with.
const channelStatus = http.StatusUpgradeRequired

type handlerFixture struct {
	auth    *mock.MockAuthService
	appInfo *mock.MockAppInfoService
	router  *realtime.Router
	handler *Handler
	mux     http.Handler
}

// newHandlerFixture wires a Handler with mocked auth and app info services
// and a memory-backed note service. aliceToken and bobToken authenticate
// as alice and bob.
func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	auth := mock.NewMockAuthService(ctrl)
	appInfo := mock.NewMockAppInfoService(ctrl)

	auth.EXPECT().ParseAccessToken(gomock.Any(), aliceToken).Return(models.Token{OwnerID: alice}, nil).AnyTimes()
	auth.EXPECT().ParseAccessToken(gomock.Any(), bobToken).Return(models.Token{OwnerID: bob}, nil).AnyTimes()

	noteRepo, _ := store.NewMemoryRepositories()
	notes := service.NewNoteValidationService().Wrap(service.NewNoteService(noteRepo, logger.Nop()))
	router := realtime.NewRouter(logger.Nop())
	protocol := realtime.NewProtocol(notes, router, logger.Nop())

	services := &service.Services{AuthService: auth, NoteService: notes, AppInfoService: appInfo}
	channel := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(channelStatus)
	})
	h := NewHandler(services, protocol, channel, config.Server{}, logger.Nop())

	return &handlerFixture{auth: auth, appInfo: appInfo, router: router, handler: h, mux: h.Init()}
}

func (f *handlerFixture) do(t *testing.T, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

// device is a realtime.Member standing in for a connected device.
type device struct {
	id      string
	ownerID string

	mu     sync.Mutex
	events []models.Event
}

func (d *device) ID() string      { return d.id }
func (d *device) OwnerID() string { return d.ownerID }

func (d *device) Send(event models.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *device) Events() []models.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]models.Event(nil), d.events...)
}

func (f *handlerFixture) connect(id, ownerID string) *device {
	d := &device{id: id, ownerID: ownerID}
	f.router.Join(d)
	return d
}

func strPtr(s string) *string { return &s }
