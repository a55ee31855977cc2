// Copyright (c) 2025-2026 Blackstone EG & Partners
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/blackstoneeg/website/internal/auth"
)

// Default admin credentials
const (
	DefaultAdminUsername = "admin"
	DefaultAdminEmail    = "admin@blackstoneegpartners.com"
	DefaultAdminPassword = "changeme"
)

// Seed creates the initial admin account, and sample content when
// seedContent is set. It is a no-op when an admin user already exists.
func Seed(ctx context.Context, db *sql.DB, seedContent bool) error {
	queries := New(db)

	_, err := queries.GetUserByUsername(ctx, DefaultAdminUsername)
	if err == nil {
		slog.Info("admin user already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user, err := queries.CreateUser(ctx, CreateUserParams{
		Username:     DefaultAdminUsername,
		Email:        DefaultAdminEmail,
		PasswordHash: passwordHash,
		IsAdmin:      true,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created default admin user",
		"id", user.ID,
		"username", user.Username,
		"password", DefaultAdminPassword,
	)

	if seedContent {
		// Sample content lands atomically: a failed insert leaves no
		// half-seeded tables behind.
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning seed transaction: %w", err)
		}
		if err := seedSampleContent(ctx, queries.WithTx(tx)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("seeding sample content: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing seed transaction: %w", err)
		}
	}

	return nil
}

func seedSampleContent(ctx context.Context, queries *Queries) error {
	posts := []CreateBlogPostParams{
		{
			Title:     "Investment Opportunities in Equatorial Guinea's Energy Sector",
			Slug:      "investment-opportunities-energy-sector",
			Content:   "Equatorial Guinea's energy sector continues to offer substantial opportunities for international investors. With proven oil reserves and growing natural gas production, the country remains a key player in the Gulf of Guinea energy landscape.\n\nOur team has guided numerous clients through licensing rounds, joint venture structuring and local content requirements.",
			Excerpt:   "An overview of the current investment climate in Equatorial Guinea's oil and gas industry.",
			Author:    "Blackstone EG & Partners",
			Published: true,
			Tags:      "energy,investment,oil-gas",
		},
		{
			Title:     "Navigating Business Registration in Malabo",
			Slug:      "navigating-business-registration-malabo",
			Content:   "Registering a business in Equatorial Guinea involves several government agencies and careful attention to documentation. This guide walks through the practical steps, from reserving a company name to obtaining tax identification.\n\nWorking with a local partner dramatically shortens the timeline.",
			Excerpt:   "A practical guide to incorporating a company in Equatorial Guinea.",
			Author:    "Blackstone EG & Partners",
			Published: true,
			Tags:      "business,registration,legal",
		},
	}
	for _, p := range posts {
		if _, err := queries.CreateBlogPost(ctx, p); err != nil {
			return fmt.Errorf("creating sample post %q: %w", p.Slug, err)
		}
	}

	completion := sql.NullTime{Time: time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), Valid: true}
	items := []CreatePortfolioItemParams{
		{
			Title:          "Offshore Supply Base Advisory",
			Description:    "Advised an international logistics operator on establishing an offshore supply base serving deepwater operations in the Gulf of Guinea, covering site selection, permitting and local partnerships.",
			Category:       "energy",
			Client:         "Confidential logistics operator",
			Value:          "$12M",
			CompletionDate: completion,
			Status:         PortfolioStatusCompleted,
			Location:       "Luba, Bioko Island",
		},
		{
			Title:          "Commercial Real Estate Development",
			Description:    "Managed the feasibility study and investor introductions for a mixed-use commercial development in central Malabo, from land acquisition through construction financing.",
			Category:       "real-estate",
			Client:         "Regional investment group",
			Value:          "$8.5M",
			CompletionDate: completion,
			Status:         PortfolioStatusCompleted,
			Location:       "Malabo",
		},
	}
	for _, it := range items {
		if _, err := queries.CreatePortfolioItem(ctx, it); err != nil {
			return fmt.Errorf("creating sample portfolio item %q: %w", it.Title, err)
		}
	}

	slog.Info("seeded sample content", "posts", len(posts), "portfolio_items", len(items))
	return nil
}
