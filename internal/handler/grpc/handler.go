// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package grpc exposes the gRPC surface of the server: the standard
// grpc.health.v1 service reporting the state of the notes service.
package grpc

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
)

// ServiceName is the name health checks ask about.
const ServiceName = "notes"

// Handler is the root gRPC transport handler.
type Handler struct {
	health *health.Server

	logger *logger.Logger
}

// NewHandler returns a handler reporting NOT_SERVING until SetServing is
// called.
func NewHandler(logger *logger.Logger) *Handler {
	h := &Handler{
		health: health.NewServer(),
		logger: logger,
	}
	h.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	logger.Debug().Msg("gRPC handler created")
	return h
}

// Register attaches the handler's services to server.
func (h *Handler) Register(server *grpc.Server) {
	healthpb.RegisterHealthServer(server, h.health)
}

// SetServing marks the notes service as ready.
func (h *Handler) SetServing() {
	h.logger.Info().Str("service", ServiceName).Msg("health: SERVING")
	h.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	h.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
}

// Shutdown reports NOT_SERVING for every service and rejects further
// status changes.
func (h *Handler) Shutdown() {
	h.logger.Info().Str("service", ServiceName).Msg("health: NOT_SERVING")
	h.health.Shutdown()
}
