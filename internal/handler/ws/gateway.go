// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package ws is the websocket transport of the notes channel.
//
// A device opens GET /notes with a bearer credential. The gateway upgrades
// the request, authenticates the credential and either admits the
// connection into its owner's room or sends a globalError and closes it.
package ws

import (
	"crypto/rand"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/realtime"
	"github.com/MKhiriev/go-notes-sync/internal/service"
	"github.com/MKhiriev/go-notes-sync/models"
	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"
)

// Gateway serves the websocket endpoint.
type Gateway struct {
	auth     service.AuthService
	router   *realtime.Router
	protocol *realtime.Protocol

	upgrader websocket.Upgrader
	cfg      config.Realtime

	logger *logger.Logger
}

func NewGateway(auth service.AuthService, router *realtime.Router, protocol *realtime.Protocol, cfg config.Realtime, logger *logger.Logger) *Gateway {
	g := &Gateway{
		auth:     auth,
		router:   router,
		protocol: protocol,
		cfg:      cfg,
		logger:   logger,
	}
	g.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     g.checkOrigin,
	}

	logger.Info().Msg("websocket gateway created")
	return g
}

// ServeHTTP runs one connection from handshake to disconnect.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	ctx := r.Context()

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already answered with an HTTP error
		log.Err(err).Str("func", "*Gateway.ServeHTTP").Msg("websocket upgrade failed")
		return
	}

	session, err := g.authenticate(r)
	if err != nil {
		log.Debug().Err(err).Msg("connection refused")
		g.refuse(conn, err)
		return
	}

	connID := ulid.MustNew(ulid.Now(), rand.Reader).String()
	connLog := log.ForConnection(connID, session.User.ID)
	ctx = connLog.WithContext(ctx)

	c := newConnection(connID, session, conn, g.cfg, connLog)

	_ = c.Send(realtime.JoinRoomEvent())
	g.router.Join(c)
	connLog.Info().Time("expires_at", session.ExpiresAt).Msg("connection joined")

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		c.writePump()
	}()

	c.readPump(ctx, g.protocol.Dispatch)

	g.router.Leave(c)
	c.shutdown(closeFrame{code: websocket.CloseNormalClosure})
	<-writerDone

	connLog.Info().Msg("connection left")
}

// Shutdown closes every live connection with a going-away frame.
func (g *Gateway) Shutdown() {
	for _, m := range g.router.Members() {
		if c, ok := m.(*Connection); ok {
			c.Close()
		}
	}
}

func (g *Gateway) authenticate(r *http.Request) (session models.Session, err error) {
	credential, err := credentialFromRequest(r)
	if err != nil {
		return session, fmt.Errorf("%w: %w", service.ErrUnauthenticated, err)
	}

	return g.auth.Authenticate(r.Context(), credential)
}

// refuse sends a globalError to a connection that never joined a room and
// closes it.
func (g *Gateway) refuse(conn *websocket.Conn, err error) {
	defer conn.Close()

	f := realtime.Normalize(err)
	if !f.ConnectionScoped() {
		g.logger.Err(err).Str("func", "*Gateway.refuse").Msg("authentication failed")
	}

	_ = conn.SetWriteDeadline(time.Now().Add(g.cfg.WriteTimeout))
	if err := conn.WriteJSON(realtime.GlobalErrorEvent(err)); err != nil {
		return
	}
	deadline := time.Now().Add(g.cfg.WriteTimeout)
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, f.Message), deadline)
}

// checkOrigin accepts requests without an Origin header (non-browser
// clients), same-host origins and the configured allow list. "*" allows any.
func (g *Gateway) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if slices.Contains(g.cfg.AllowedOrigins, "*") || slices.Contains(g.cfg.AllowedOrigins, origin) {
		return true
	}

	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}
