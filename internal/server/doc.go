// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the HTTP and gRPC servers of the application.
//
// Both run under one errgroup: the first one to fail, or cancellation of
// the run context, shuts every server down gracefully.
package server
