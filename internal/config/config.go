// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration of the notes sync server.
// It is populated by merging defaults, an optional config file, environment
// variables and command-line flags.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token keys and lifetimes and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds the persistence backend settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listen addresses and the REST request timeout.
	Server Server `envPrefix:"SERVER_"`

	// Realtime holds the tuning of the persistent notes channel.
	Realtime Realtime `envPrefix:"REALTIME_"`

	// Workers holds intervals of background workers.
	Workers Workers `envPrefix:"WORKERS_"`

	// Adapter holds the command-line client's connection settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// FilePath is the optional path to a JSON or YAML config file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	FilePath string `env:"CONFIG"`
}

// App holds settings for token issuance and versioning.
type App struct {
	// TokenSignKey signs and verifies access tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// RefreshSignKey signs and verifies refresh tokens. It must differ from
	// TokenSignKey so a refresh token is never accepted as an access token.
	// Env: APP_REFRESH_SIGN_KEY
	RefreshSignKey string `env:"REFRESH_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of every issued token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the lifetime of an access token.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// RefreshDuration is the lifetime of a refresh token.
	// Env: APP_REFRESH_DURATION
	RefreshDuration time.Duration `env:"REFRESH_DURATION"`

	// Version is exposed via /api/version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the storage backend settings.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds the connection string of the notes database.
type DB struct {
	// DSN selects the backend:
	//   - "postgres://..." or "postgresql://..." opens PostgreSQL via pgx;
	//   - "sqlite://path" or "file:path" opens SQLite;
	//   - "" or "memory" keeps everything in process memory.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the inbound transports.
type Server struct {
	// HTTPAddress serves REST and the notes channel, "host:port".
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress serves the gRPC health service, "host:port". Optional.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds a single REST request. It does not apply to the
	// long-lived notes channel.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Realtime holds tuning of the persistent notes channel.
type Realtime struct {
	// SendBuffer is the number of outbound events queued per connection.
	// A connection whose queue is full is dropped as a slow consumer.
	// Env: REALTIME_SEND_BUFFER
	SendBuffer int `env:"SEND_BUFFER"`

	// WriteTimeout bounds a single frame write.
	// Env: REALTIME_WRITE_TIMEOUT
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT"`

	// PongTimeout is how long a connection may stay silent before it is
	// considered dead.
	// Env: REALTIME_PONG_TIMEOUT
	PongTimeout time.Duration `env:"PONG_TIMEOUT"`

	// PingInterval must be shorter than PongTimeout.
	// Env: REALTIME_PING_INTERVAL
	PingInterval time.Duration `env:"PING_INTERVAL"`

	// AllowedOrigins restricts the Origin header of channel upgrades. Empty
	// allows any origin.
	// Env: REALTIME_ALLOWED_ORIGINS (comma separated)
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// Workers holds intervals of background workers.
type Workers struct {
	// SessionSweepInterval is how often live connections are checked for an
	// expired access token.
	// Env: WORKERS_SESSION_SWEEP_INTERVAL
	SessionSweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL"`
}

// Adapter holds the client-side connection settings.
type Adapter struct {
	// HTTPAddress is the server base URL, e.g. "http://localhost:8080".
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single REST call of the client.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// TokenFile is where the client keeps its token pair between runs.
	// Env: ADAPTER_TOKEN_FILE
	TokenFile string `env:"TOKEN_FILE"`

	// LogFile receives the client's logs.
	// Env: ADAPTER_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// GetStructuredConfig loads, merges, and validates the server configuration.
// Later sources override non-zero fields of earlier ones:
//  1. built-in defaults
//  2. config file (path resolved from env and flags)
//  3. environment variables
//  4. command-line flags
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withFile().
		build()
}
