// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/service"
	"github.com/MKhiriev/go-notes-sync/internal/store"
	"github.com/MKhiriev/go-notes-sync/models"
)

func TestNewAppInfoService_EmptyVersion_ReturnsError(t *testing.T) {
	svc, err := service.NewAppInfoService(models.AppBuildInfo{}, logger.Nop())

	assert.Nil(t, svc)
	assert.ErrorIs(t, err, service.ErrVersionIsNotSpecified)
}

func TestGetAppVersion_ReturnsBuildInfo(t *testing.T) {
	info := models.NewAppBuildInfo("1.2.3", "2026-10-01", "abc123")

	svc, err := service.NewAppInfoService(info, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, info, svc.GetAppVersion(context.Background()))
}

func TestNewServices_VersionFallsBackToConfig(t *testing.T) {
	notes, users := store.NewMemoryRepositories()
	storages := &store.Storages{NoteRepository: notes, UserRepository: users}
	cfg := config.StructuredConfig{App: config.App{Version: "dev"}}

	services, err := service.NewServices(storages, cfg, models.AppBuildInfo{Commit: "abc"}, logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, services.NoteService)
	require.NotNil(t, services.AuthService)
	got := services.AppInfoService.GetAppVersion(context.Background())
	assert.Equal(t, "dev", got.Version)
	assert.Equal(t, "abc", got.Commit)
}
