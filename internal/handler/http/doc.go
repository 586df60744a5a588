// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the HTTP transport of the notes server.
//
// It exposes the account endpoints, the REST notes surface with its
// paginated listing, the build version and the websocket endpoint of the
// notes channel. Tracing, access logging and bearer authentication are
// handled here before requests reach the service layer or the realtime
// protocol.
package http
