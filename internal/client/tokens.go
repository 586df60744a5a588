// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-notes-sync/internal/adapter"
	"github.com/MKhiriev/go-notes-sync/models"
)

// TokenStore keeps the token pair in a file readable only by the user.
type TokenStore struct {
	path string
}

func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path}
}

// Load returns [adapter.ErrNotLoggedIn] when nothing was saved.
func (s *TokenStore) Load() (models.TokenPair, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return models.TokenPair{}, adapter.ErrNotLoggedIn
	}
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("read token file: %w", err)
	}

	var pair models.TokenPair
	if err = json.Unmarshal(raw, &pair); err != nil {
		return models.TokenPair{}, fmt.Errorf("decode token file %s: %w", s.path, err)
	}
	if pair.AccessToken == "" && pair.RefreshToken == "" {
		return models.TokenPair{}, adapter.ErrNotLoggedIn
	}

	return pair, nil
}

// Save replaces the stored pair atomically.
func (s *TokenStore) Save(pair models.TokenPair) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}

	raw, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("encode tokens: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".tokens-*")
	if err != nil {
		return fmt.Errorf("create temp token file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write token file: %w", err)
	}
	if err = tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod token file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close token file: %w", err)
	}

	if err = os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace token file: %w", err)
	}

	return nil
}

// Clear forgets the stored pair. A missing file is not an error.
func (s *TokenStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}
