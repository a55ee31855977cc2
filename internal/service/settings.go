// Copyright (c) 2025-2026 Blackstone EG & Partners
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service holds the application services that sit between the
// handlers and the store.
package service

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/blackstoneeg/website/internal/store"
)

// SettingsService provides cached access to the singleton company settings
// row. Reads hit the cache; updates write through and refresh it.
type SettingsService struct {
	queries *store.Queries

	mu     sync.RWMutex
	cached *store.CompanySettings
}

// NewSettingsService creates a settings service over the given database.
func NewSettingsService(db *sql.DB) *SettingsService {
	return &SettingsService{queries: store.New(db)}
}

// Get returns the company settings, loading and caching them on first use.
func (s *SettingsService) Get(ctx context.Context) (store.CompanySettings, error) {
	s.mu.RLock()
	if s.cached != nil {
		settings := *s.cached
		s.mu.RUnlock()
		return settings, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine may have loaded it while we waited for the lock
	if s.cached != nil {
		return *s.cached, nil
	}

	settings, err := s.queries.GetCompanySettings(ctx)
	if err != nil {
		return store.CompanySettings{}, fmt.Errorf("loading company settings: %w", err)
	}
	s.cached = &settings
	return settings, nil
}

// Update writes new settings and refreshes the cache.
func (s *SettingsService) Update(ctx context.Context, arg store.UpdateCompanySettingsParams) (store.CompanySettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.queries.UpdateCompanySettings(ctx, arg)
	if err != nil {
		return store.CompanySettings{}, fmt.Errorf("updating company settings: %w", err)
	}
	s.cached = &settings
	return settings, nil
}

// Invalidate drops the cached settings so the next Get reloads them.
func (s *SettingsService) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}
