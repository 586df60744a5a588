// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/realtime"
	"github.com/MKhiriev/go-notes-sync/internal/service"
)

// Handler is the root HTTP transport handler.
//
// REST mutations of notes go through protocol so that they are serialized
// with the websocket traffic of the same owner and fanned out to the
// owner's live devices. channel serves the websocket endpoint.
type Handler struct {
	services *service.Services
	protocol *realtime.Protocol
	channel  http.Handler

	cfg config.Server

	logger *logger.Logger
}

func NewHandler(services *service.Services, protocol *realtime.Protocol, channel http.Handler, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		protocol: protocol,
		channel:  channel,
		cfg:      cfg,
		logger:   logger,
	}
}
