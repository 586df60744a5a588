// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned when a configuration group is incomplete or
// inconsistent.
var (
	ErrInvalidAppConfigs      = errors.New("invalid app configuration")
	ErrInvalidServerConfigs   = errors.New("invalid server configuration: at least one address is required")
	ErrInvalidRealtimeConfigs = errors.New("invalid realtime configuration")
	ErrInvalidWorkerConfigs   = errors.New("invalid worker configuration")
	ErrInvalidAdapterConfigs  = errors.New("invalid adapter configuration")

	// ErrUnsupportedConfigFile is returned for a config file whose extension
	// is neither JSON nor YAML.
	ErrUnsupportedConfigFile = errors.New("unsupported config file format")
)
