// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AppBuildInfo carries build metadata of a binary. Version comes from
// configuration or linker flags; date and commit are injected by linker
// flags and stay empty in development builds.
type AppBuildInfo struct {
	Version string `json:"version"`
	Date    string `json:"buildDate,omitempty"`
	Commit  string `json:"buildCommit,omitempty"`
}

// NewAppBuildInfo constructs [AppBuildInfo] from the provided build metadata.
func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{
		Version: version,
		Date:    date,
		Commit:  commit,
	}
}

// String renders the build info for version output.
func (a AppBuildInfo) String() string {
	s := a.Version
	if a.Date != "" {
		s += " built " + a.Date
	}
	if a.Commit != "" {
		s += " (" + a.Commit + ")"
	}
	return s
}
