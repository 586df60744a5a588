// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/realtime"
)

// SessionSweeper disconnects devices whose access token expired while they
// were connected. They get globalError 401 "token is expired" first.
type SessionSweeper struct {
	router   *realtime.Router
	interval time.Duration
	now      func() time.Time

	logger *logger.Logger
}

func NewSessionSweeper(router *realtime.Router, interval time.Duration, logger *logger.Logger) *SessionSweeper {
	return &SessionSweeper{
		router:   router,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

func (s *SessionSweeper) Run(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Warn().Msg("session sweeper is disabled")
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sweep(); n > 0 {
				s.logger.Info().Int("terminated", n).Msg("expired sessions swept")
			}
		}
	}
}

// sweep terminates every expired session and returns how many there were.
func (s *SessionSweeper) sweep() int {
	now := s.now()
	terminated := 0

	for _, m := range s.router.Members() {
		session, ok := m.(Session)
		if !ok {
			continue
		}
		expiresAt := session.ExpiresAt()
		if expiresAt.IsZero() || now.Before(expiresAt) {
			continue
		}

		s.logger.Debug().
			Str("conn_id", session.ID()).
			Str("owner_id", session.OwnerID()).
			Time("expired_at", expiresAt).
			Msg("session expired")
		session.Terminate(realtime.ErrSessionExpired)
		terminated++
	}

	return terminated
}
