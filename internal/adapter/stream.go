// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/models"
)

const (
	streamPath   = "/notes"
	eventsBuffer = 64
	closeGrace   = time.Second
)

type streamDialer struct {
	dialer *websocket.Dialer
}

func newStreamDialer(handshakeTimeout time.Duration) streamDialer {
	return streamDialer{dialer: &websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: handshakeTimeout,
	}}
}

func streamURL(base *url.URL) string {
	u := *base
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path += streamPath
	u.RawQuery = ""

	return u.String()
}

func (d streamDialer) dial(ctx context.Context, target, accessToken string, log *logger.Logger) (NoteStream, error) {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+accessToken)

	conn, resp, err := d.dialer.DialContext(ctx, target, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("open stream: http %d: %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("open stream: %w", err)
	}

	s := &wsStream{
		conn:     conn,
		events:   make(chan models.InboundEvent, eventsBuffer),
		done:     make(chan struct{}),
		readDone: make(chan struct{}),
		logger:   log,
	}
	go s.readLoop()

	return s, nil
}

type wsStream struct {
	conn *websocket.Conn

	writeMu sync.Mutex

	events   chan models.InboundEvent
	done     chan struct{}
	readDone chan struct{}

	closeOnce sync.Once

	mu  sync.Mutex
	err error

	logger *logger.Logger
}

func (s *wsStream) Events() <-chan models.InboundEvent {
	return s.events
}

func (s *wsStream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *wsStream) Send(ctx context.Context, event models.Event) error {
	select {
	case <-s.done:
		return ErrStreamClosed
	case <-s.readDone:
		return ErrStreamClosed
	default:
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s frame: %w", event.Name, err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	deadline, _ := ctx.Deadline()
	if err = s.conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("%w: %w", ErrStreamClosed, err)
	}
	if err = s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return fmt.Errorf("%w: %w", ErrStreamClosed, err)
	}

	return nil
}

func (s *wsStream) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)

		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeGrace))

		select {
		case <-s.readDone:
		case <-time.After(closeGrace):
		}

		err = s.conn.Close()
	})

	return err
}

func (s *wsStream) readLoop() {
	defer close(s.readDone)
	defer close(s.events)

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			s.setErr(s.closeReason(err))
			return
		}

		var event models.InboundEvent
		if err = json.Unmarshal(data, &event); err != nil {
			s.logger.Warn().Err(err).Str("func", "wsStream.readLoop").Msg("skipping undecodable frame")
			continue
		}

		select {
		case s.events <- event:
		case <-s.done:
			return
		}
	}
}

func (s *wsStream) closeReason(err error) error {
	select {
	case <-s.done:
		return nil
	default:
	}

	if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		return nil
	}

	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) {
		return fmt.Errorf("%w: %s (%d)", ErrStreamClosed, closeErr.Text, closeErr.Code)
	}

	return fmt.Errorf("%w: %w", ErrStreamClosed, err)
}

func (s *wsStream) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}
