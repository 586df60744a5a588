// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// for the notes sync server and its command-line client.
//
// Configuration is assembled from multiple sources, later ones overriding the
// non-zero fields of earlier ones:
//  1. Built-in defaults
//  2. JSON or YAML config file
//  3. Environment variables
//  4. Command-line flags (server only)
//
// The main entry points are [GetStructuredConfig] for the server and
// [GetClientConfig] for the client.
package config
