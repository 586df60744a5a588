// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks the merged server configuration before startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.RefreshSignKey == "" {
		return fmt.Errorf("%w: token and refresh sign keys are required", ErrInvalidAppConfigs)
	}
	if cfg.App.TokenSignKey == cfg.App.RefreshSignKey {
		return fmt.Errorf("%w: token and refresh sign keys must differ", ErrInvalidAppConfigs)
	}
	if cfg.App.TokenDuration <= 0 || cfg.App.RefreshDuration <= 0 {
		return fmt.Errorf("%w: token durations must be positive", ErrInvalidAppConfigs)
	}

	if cfg.Server.HTTPAddress == "" && cfg.Server.GRPCAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Realtime.SendBuffer < 1 {
		return fmt.Errorf("%w: send buffer must be positive", ErrInvalidRealtimeConfigs)
	}
	if cfg.Realtime.PingInterval <= 0 || cfg.Realtime.PingInterval >= cfg.Realtime.PongTimeout {
		return fmt.Errorf("%w: ping interval must be positive and shorter than pong timeout", ErrInvalidRealtimeConfigs)
	}
	if cfg.Realtime.WriteTimeout <= 0 {
		return fmt.Errorf("%w: write timeout must be positive", ErrInvalidRealtimeConfigs)
	}

	if cfg.Workers.SessionSweepInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
