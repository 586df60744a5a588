// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

const (
	defaultTokenIssuer          = "go-notes-sync"
	defaultTokenDuration        = 5 * time.Minute
	defaultRefreshDuration      = 7 * 24 * time.Hour
	defaultVersion              = "dev"
	defaultHTTPAddress          = "localhost:8080"
	defaultRequestTimeout       = 30 * time.Second
	defaultSendBuffer           = 64
	defaultWriteTimeout         = 10 * time.Second
	defaultPongTimeout          = 60 * time.Second
	defaultPingInterval         = defaultPongTimeout * 9 / 10
	defaultSessionSweepInterval = 30 * time.Second
	defaultAdapterAddress       = "http://localhost:8080"
	defaultAdapterTimeout       = 10 * time.Second
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:     defaultTokenIssuer,
			TokenDuration:   defaultTokenDuration,
			RefreshDuration: defaultRefreshDuration,
			Version:         defaultVersion,
		},
		Server: Server{
			HTTPAddress:    defaultHTTPAddress,
			RequestTimeout: defaultRequestTimeout,
		},
		Realtime: Realtime{
			SendBuffer:   defaultSendBuffer,
			WriteTimeout: defaultWriteTimeout,
			PongTimeout:  defaultPongTimeout,
			PingInterval: defaultPingInterval,
		},
		Workers: Workers{
			SessionSweepInterval: defaultSessionSweepInterval,
		},
		Adapter: Adapter{
			HTTPAddress:    defaultAdapterAddress,
			RequestTimeout: defaultAdapterTimeout,
		},
	}
}
