// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ws

import "errors"

var (
	// ErrSendBufferFull is returned by Send when the device does not read
	// fast enough. The connection is closed right after.
	ErrSendBufferFull = errors.New("send buffer is full")

	// ErrConnectionClosed is returned by Send after the connection has been
	// closed.
	ErrConnectionClosed = errors.New("connection is closed")

	errNoCredential = errors.New("no credential was presented")
)
