// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the server base URL.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound REST requests.
	RequestTimeout time.Duration
}

// ClientConfig is the command-line client's view of the configuration.
type ClientConfig struct {
	Adapter ClientAdapter

	// TokenFile stores the token pair between client invocations.
	TokenFile string

	// LogFile receives client logs.
	LogFile string
}

// GetClientConfig builds the client configuration from defaults, an optional
// config file and environment variables. The client owns its command line,
// so flags are not read here.
func GetClientConfig() (*ClientConfig, error) {
	b := newConfigBuilder().withEnv().withFile()
	b.validate = func(*StructuredConfig) error { return nil }

	cfg, err := b.build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return newClientConfig(cfg)
}

func newClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		TokenFile: cfg.Adapter.TokenFile,
		LogFile:   cfg.Adapter.LogFile,
	}

	if clientCfg.TokenFile == "" || clientCfg.LogFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = os.TempDir()
		}
		dir = filepath.Join(dir, "go-notes-sync")
		if clientCfg.TokenFile == "" {
			clientCfg.TokenFile = filepath.Join(dir, "token.json")
		}
		if clientCfg.LogFile == "" {
			clientCfg.LogFile = filepath.Join(dir, "client.log")
		}
	}

	return clientCfg, clientCfg.validate()
}
