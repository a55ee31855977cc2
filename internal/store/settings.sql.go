// Copyright (c) 2025-2026 Blackstone EG & Partners
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const settingsColumns = `id, logo_path, company_name, tagline, phone, email, address, google_analytics_id, facebook_pixel_id, updated_at`

func scanSettings(row interface{ Scan(...any) error }) (CompanySettings, error) {
	var s CompanySettings
	err := row.Scan(&s.ID, &s.LogoPath, &s.CompanyName, &s.Tagline, &s.Phone, &s.Email,
		&s.Address, &s.GoogleAnalyticsID, &s.FacebookPixelID, &s.UpdatedAt)
	return s, err
}

const ensureCompanySettings = `
INSERT OR IGNORE INTO company_settings (id, updated_at) VALUES (1, ?)
`

const getCompanySettings = `
SELECT ` + settingsColumns + ` FROM company_settings WHERE id = 1
`

// GetCompanySettings returns the singleton settings row, creating it with
// column defaults on first access. INSERT OR IGNORE plus the CHECK (id = 1)
// constraint keeps concurrent first reads from racing each other.
func (q *Queries) GetCompanySettings(ctx context.Context) (CompanySettings, error) {
	if _, err := q.db.ExecContext(ctx, ensureCompanySettings, time.Now().UTC()); err != nil {
		return CompanySettings{}, err
	}
	return scanSettings(q.db.QueryRowContext(ctx, getCompanySettings))
}

const updateCompanySettings = `
UPDATE company_settings
SET logo_path = ?, company_name = ?, tagline = ?, phone = ?, email = ?, address = ?,
    google_analytics_id = ?, facebook_pixel_id = ?, updated_at = ?
WHERE id = 1
RETURNING ` + settingsColumns

// UpdateCompanySettingsParams holds the inputs for UpdateCompanySettings.
type UpdateCompanySettingsParams struct {
	LogoPath          string
	CompanyName       string
	Tagline           string
	Phone             string
	Email             string
	Address           string
	GoogleAnalyticsID string
	FacebookPixelID   string
}

// UpdateCompanySettings replaces the editable fields of the singleton row.
func (q *Queries) UpdateCompanySettings(ctx context.Context, arg UpdateCompanySettingsParams) (CompanySettings, error) {
	if _, err := q.db.ExecContext(ctx, ensureCompanySettings, time.Now().UTC()); err != nil {
		return CompanySettings{}, err
	}
	row := q.db.QueryRowContext(ctx, updateCompanySettings,
		arg.LogoPath, arg.CompanyName, arg.Tagline, arg.Phone, arg.Email, arg.Address,
		arg.GoogleAnalyticsID, arg.FacebookPixelID, time.Now().UTC())
	return scanSettings(row)
}
