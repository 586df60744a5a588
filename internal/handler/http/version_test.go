// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-notes-sync/models"
)

func TestGetServerVersion(t *testing.T) {
	f := newHandlerFixture(t)
	f.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return(models.NewAppBuildInfo("1.2.3", "2026-10-01", "abc123"))

	rec := f.do(t, http.MethodGet, "/api/version", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"version":"1.2.3","buildDate":"2026-10-01","buildCommit":"abc123"}`, rec.Body.String())
}

func TestGetServerVersion_OnlyVersion(t *testing.T) {
	f := newHandlerFixture(t)
	f.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return(models.AppBuildInfo{Version: "dev"})

	rec := f.do(t, http.MethodGet, "/api/version", "", nil)

	assert.JSONEq(t, `{"version":"dev"}`, rec.Body.String())
}
