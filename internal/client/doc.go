// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client.
//
// [App] builds a cobra command tree over an [adapter.ServerAdapter]. Account
// and listing commands use the REST surface; mutations go over the
// persistent channel so the user sees the same echo a connected device
// would. The token pair survives between invocations in a [TokenStore].
package client
