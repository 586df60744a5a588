// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/realtime"
	"github.com/MKhiriev/go-notes-sync/internal/service"
)

// newHandlers builds handlers over empty services: the constructors only
// keep references.
func newHandlers(server config.Server) (*Handlers, error) {
	cfg := config.StructuredConfig{Server: server}
	return NewHandlers(&service.Services{}, realtime.NewRouter(logger.Nop()), cfg, logger.Nop())
}

func TestNewHandlers(t *testing.T) {
	tests := []struct {
		name     string
		server   config.Server
		wantHTTP bool
		wantGRPC bool
	}{
		{name: "both", server: config.Server{HTTPAddress: ":8080", GRPCAddress: ":9090"}, wantHTTP: true, wantGRPC: true},
		{name: "only http", server: config.Server{HTTPAddress: ":8080"}, wantHTTP: true},
		{name: "only grpc", server: config.Server{GRPCAddress: ":9090"}, wantGRPC: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := newHandlers(tt.server)

			require.NoError(t, err)
			assert.Equal(t, tt.wantHTTP, h.HTTP != nil)
			assert.Equal(t, tt.wantHTTP, h.Channel != nil)
			assert.Equal(t, tt.wantGRPC, h.GRPC != nil)
		})
	}
}

func TestNewHandlers_NoAddresses(t *testing.T) {
	h, err := newHandlers(config.Server{})

	require.ErrorIs(t, err, errNoTransport)
	assert.Nil(t, h)
}

func TestNewHandlers_IndependentInstances(t *testing.T) {
	server := config.Server{HTTPAddress: ":8080", GRPCAddress: ":9090"}

	h1, err1 := newHandlers(server)
	h2, err2 := newHandlers(server)

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.NotSame(t, h1.HTTP, h2.HTTP)
	assert.NotSame(t, h1.GRPC, h2.GRPC)
}
