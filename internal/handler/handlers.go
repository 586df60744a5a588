// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package handler assembles the transport handlers of the server.
package handler

import (
	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/handler/grpc"
	"github.com/MKhiriev/go-notes-sync/internal/handler/http"
	"github.com/MKhiriev/go-notes-sync/internal/handler/ws"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/realtime"
	"github.com/MKhiriev/go-notes-sync/internal/service"
)

// Handlers holds one handler per configured transport. Channel is the
// websocket gateway mounted by HTTP; it is nil when HTTP is not served.
type Handlers struct {
	HTTP    *http.Handler
	Channel *ws.Gateway
	GRPC    *grpc.Handler
}

func NewHandlers(services *service.Services, router *realtime.Router, cfg config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		protocol := realtime.NewProtocol(services.NoteService, router, logger)
		handlers.Channel = ws.NewGateway(services.AuthService, router, protocol, cfg.Realtime, logger)
		handlers.HTTP = http.NewHandler(services, protocol, handlers.Channel, cfg.Server, logger)
	}
	if cfg.Server.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoTransport
	}

	return handlers, nil
}
