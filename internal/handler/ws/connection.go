// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ws

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/realtime"
	"github.com/MKhiriev/go-notes-sync/models"
	"github.com/gorilla/websocket"
)

// maxFrameSize bounds a single inbound frame.
const maxFrameSize = 64 << 10

// closeFrame is what the write pump sends before closing the socket.
type closeFrame struct {
	code  int
	text  string
	drain bool
}

// Connection is one authenticated websocket of an owner. It implements
// [realtime.Member].
//
// Outbound events go through a bounded queue served by the write pump;
// inbound frames are dispatched one at a time by the read pump, so a
// device's requests are handled in the order it sent them.
type Connection struct {
	id        string
	ownerID   string
	expiresAt time.Time

	conn *websocket.Conn
	cfg  config.Realtime

	send chan models.Event

	done      chan struct{}
	closeOnce sync.Once
	closeWith closeFrame

	logger *logger.Logger
}

func newConnection(id string, session models.Session, conn *websocket.Conn, cfg config.Realtime, log *logger.Logger) *Connection {
	return &Connection{
		id:        id,
		ownerID:   session.User.ID,
		expiresAt: session.ExpiresAt,
		conn:      conn,
		cfg:       cfg,
		send:      make(chan models.Event, cfg.SendBuffer),
		done:      make(chan struct{}),
		logger:    log,
	}
}

func (c *Connection) ID() string {
	return c.id
}

func (c *Connection) OwnerID() string {
	return c.ownerID
}

// ExpiresAt is when the credential the connection was opened with runs out.
func (c *Connection) ExpiresAt() time.Time {
	return c.expiresAt
}

// Send enqueues event without blocking. A full queue means the device is
// not keeping up: the connection is dropped.
func (c *Connection) Send(event models.Event) error {
	select {
	case <-c.done:
		return ErrConnectionClosed
	default:
	}

	select {
	case c.send <- event:
		return nil
	default:
		c.logger.Warn().Int("buffer", cap(c.send)).Msg("slow consumer, dropping connection")
		c.shutdown(closeFrame{code: websocket.ClosePolicyViolation, text: "slow consumer"})
		return ErrSendBufferFull
	}
}

// Terminate tells the device why it is being disconnected with a
// globalError, then closes the connection once the queue is flushed.
func (c *Connection) Terminate(err error) {
	f := realtime.Normalize(err)
	_ = c.Send(realtime.GlobalErrorEvent(err))
	c.shutdown(closeFrame{code: websocket.ClosePolicyViolation, text: f.Message, drain: true})
}

// Close disconnects the device with a going-away frame.
func (c *Connection) Close() {
	c.shutdown(closeFrame{code: websocket.CloseGoingAway, text: "server is shutting down", drain: true})
}

// Done is closed once the connection starts shutting down.
func (c *Connection) Done() <-chan struct{} {
	return c.done
}

func (c *Connection) shutdown(frame closeFrame) {
	c.closeOnce.Do(func() {
		c.closeWith = frame
		close(c.done)
	})
}

// readPump dispatches inbound frames until the socket fails or is closed.
// Every pong and every frame extends the read deadline.
func (c *Connection) readPump(ctx context.Context, dispatch func(ctx context.Context, sender realtime.Member, frame []byte)) {
	c.conn.SetReadLimit(maxFrameSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongTimeout))
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) && !c.closing() {
				c.logger.Debug().Err(err).Msg("connection read failed")
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongTimeout))

		dispatch(ctx, c, frame)
	}
}

// writePump owns every write on the socket: queued events, pings and the
// final close frame.
func (c *Connection) writePump() {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case event := <-c.send:
			if err := c.write(event); err != nil {
				c.logger.Debug().Err(err).Msg("connection write failed")
				c.shutdown(closeFrame{code: websocket.CloseAbnormalClosure})
				return
			}

		case <-ticker.C:
			deadline := time.Now().Add(c.cfg.WriteTimeout)
			if err := c.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				c.logger.Debug().Err(err).Msg("ping failed")
				c.shutdown(closeFrame{code: websocket.CloseAbnormalClosure})
				return
			}

		case <-c.done:
			c.flush()
			return
		}
	}
}

// flush writes what is still queued when asked to, then the close frame.
func (c *Connection) flush() {
	frame := c.closeWith
	if frame.drain {
	drain:
		for {
			select {
			case event := <-c.send:
				if err := c.write(event); err != nil {
					return
				}
			default:
				break drain
			}
		}
	}
	if frame.code == websocket.CloseAbnormalClosure {
		return
	}

	deadline := time.Now().Add(c.cfg.WriteTimeout)
	err := c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(frame.code, frame.text), deadline)
	if err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		c.logger.Debug().Err(err).Msg("close frame was not sent")
	}
}

func (c *Connection) write(event models.Event) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout)); err != nil {
		return err
	}
	return c.conn.WriteJSON(event)
}

func (c *Connection) closing() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}
