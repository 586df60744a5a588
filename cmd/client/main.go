// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/MKhiriev/go-notes-sync/internal/adapter"
	"github.com/MKhiriev/go-notes-sync/internal/client"
	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.GetClientConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		return 1
	}

	if err = os.MkdirAll(filepath.Dir(cfg.LogFile), 0o700); err != nil {
		fmt.Fprintf(os.Stderr, "error creating log dir: %v\n", err)
	}
	log := logger.NewClientLogger("go-notes-client", cfg.LogFile)

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Err(err).Msg("create server adapter")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := client.NewApp(
		serverAdapter,
		client.NewTokenStore(cfg.TokenFile),
		client.NewTermPrompt(os.Stdin, os.Stderr),
		cfg.Adapter.RequestTimeout,
		buildInfo(),
		log,
	)

	if err = app.Run(ctx, os.Args[1:]); err != nil {
		log.Err(err).Msg("command failed")
		client.NewPrinter(os.Stderr).Failure(err)
		return 1
	}

	return 0
}

func buildInfo() models.AppBuildInfo {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	return models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
}
