// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape of the config file. The same keys are used
// for JSON and YAML.
type fileConfig struct {
	App struct {
		TokenSignKey    string   `json:"token_sign_key" yaml:"token_sign_key"`
		RefreshSignKey  string   `json:"refresh_sign_key" yaml:"refresh_sign_key"`
		TokenIssuer     string   `json:"token_issuer" yaml:"token_issuer"`
		TokenDuration   Duration `json:"token_duration" yaml:"token_duration"`
		RefreshDuration Duration `json:"refresh_duration" yaml:"refresh_duration"`
		Version         string   `json:"version" yaml:"version"`
	} `json:"app" yaml:"app"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn" yaml:"dsn"`
		} `json:"db" yaml:"db"`
	} `json:"storage" yaml:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		GRPCAddress    string   `json:"grpc_address" yaml:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
	} `json:"server" yaml:"server"`

	Realtime struct {
		SendBuffer     int      `json:"send_buffer" yaml:"send_buffer"`
		WriteTimeout   Duration `json:"write_timeout" yaml:"write_timeout"`
		PongTimeout    Duration `json:"pong_timeout" yaml:"pong_timeout"`
		PingInterval   Duration `json:"ping_interval" yaml:"ping_interval"`
		AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`
	} `json:"realtime" yaml:"realtime"`

	Workers struct {
		SessionSweepInterval Duration `json:"session_sweep_interval" yaml:"session_sweep_interval"`
	} `json:"workers" yaml:"workers"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
		TokenFile      string   `json:"token_file" yaml:"token_file"`
		LogFile        string   `json:"log_file" yaml:"log_file"`
	} `json:"adapter" yaml:"adapter"`
}

// parseFile reads a JSON or YAML config file, picking the decoder by the
// file extension.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &fc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedConfigFile, path)
	}
	if err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	return fc.toStructured(), nil
}

func (fc *fileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenSignKey:    fc.App.TokenSignKey,
			RefreshSignKey:  fc.App.RefreshSignKey,
			TokenIssuer:     fc.App.TokenIssuer,
			TokenDuration:   time.Duration(fc.App.TokenDuration),
			RefreshDuration: time.Duration(fc.App.RefreshDuration),
			Version:         fc.App.Version,
		},
		Storage: Storage{
			DB: DB{DSN: fc.Storage.DB.DSN},
		},
		Server: Server{
			HTTPAddress:    fc.Server.HTTPAddress,
			GRPCAddress:    fc.Server.GRPCAddress,
			RequestTimeout: time.Duration(fc.Server.RequestTimeout),
		},
		Realtime: Realtime{
			SendBuffer:     fc.Realtime.SendBuffer,
			WriteTimeout:   time.Duration(fc.Realtime.WriteTimeout),
			PongTimeout:    time.Duration(fc.Realtime.PongTimeout),
			PingInterval:   time.Duration(fc.Realtime.PingInterval),
			AllowedOrigins: fc.Realtime.AllowedOrigins,
		},
		Workers: Workers{
			SessionSweepInterval: time.Duration(fc.Workers.SessionSweepInterval),
		},
		Adapter: Adapter{
			HTTPAddress:    fc.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(fc.Adapter.RequestTimeout),
			TokenFile:      fc.Adapter.TokenFile,
			LogFile:        fc.Adapter.LogFile,
		},
	}
}

// Duration is a time.Duration that decodes from strings like "1h" or "30s"
// as well as from plain nanosecond numbers.
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		return d.parse(value)
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var n int64
	if node.Tag == "!!int" {
		if err := node.Decode(&n); err != nil {
			return err
		}
		*d = Duration(time.Duration(n))
		return nil
	}

	return d.parse(node.Value)
}

func (d *Duration) parse(s string) error {
	tmp, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(tmp)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
