// Copyright (c) 2025-2026 Blackstone EG & Partners
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store provides database access for the website: connection
// setup, embedded migrations, a query layer over database/sql, and
// initial data seeding.
package store

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Contact submission statuses.
const (
	ContactStatusNew       = "new"
	ContactStatusContacted = "contacted"
	ContactStatusClosed    = "closed"
)

// ValidContactStatuses contains all valid contact submission statuses.
var ValidContactStatuses = []string{ContactStatusNew, ContactStatusContacted, ContactStatusClosed}

// IsValidContactStatus checks if a status belongs to the closed enumeration.
func IsValidContactStatus(status string) bool {
	for _, s := range ValidContactStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Portfolio item statuses.
const (
	PortfolioStatusCompleted = "completed"
	PortfolioStatusOngoing   = "ongoing"
	PortfolioStatusPlanned   = "planned"
)

// ValidPortfolioStatuses contains all valid portfolio item statuses.
var ValidPortfolioStatuses = []string{PortfolioStatusCompleted, PortfolioStatusOngoing, PortfolioStatusPlanned}

// IsValidPortfolioStatus checks if a status belongs to the closed enumeration.
func IsValidPortfolioStatus(status string) bool {
	for _, s := range ValidPortfolioStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// User represents an admin account.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  sql.NullTime
}

// ContactSubmission represents an inbound lead from the contact form.
type ContactSubmission struct {
	ID        int64
	Reference string
	Name      string
	Email     string
	Phone     string
	Service   string
	Message   string
	Status    string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BlogPost represents a blog article. Content is Markdown; the public
// site renders and sanitizes it at display time.
type BlogPost struct {
	ID            int64
	Title         string
	Slug          string
	Content       string
	Excerpt       string
	Author        string
	FeaturedImage string
	Published     bool
	Tags          string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PortfolioItem represents a case-study record.
type PortfolioItem struct {
	ID             int64
	Title          string
	Description    string
	Category       string
	Client         string
	Value          string
	CompletionDate sql.NullTime
	FeaturedImage  string
	GalleryImages  string // JSON array of relative paths
	Status         string
	Location       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// GalleryList returns the decoded gallery image paths.
func (p PortfolioItem) GalleryList() []string {
	return DecodeGallery(p.GalleryImages)
}

// EncodeGallery marshals gallery paths into the stored JSON column form.
func EncodeGallery(paths []string) string {
	if len(paths) == 0 {
		return "[]"
	}
	b, err := json.Marshal(paths)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// DecodeGallery parses the stored JSON gallery column. Malformed or empty
// values decode to nil.
func DecodeGallery(s string) []string {
	if s == "" || s == "[]" {
		return nil
	}
	var paths []string
	if err := json.Unmarshal([]byte(s), &paths); err != nil {
		return nil
	}
	return paths
}

// CompanySettings is the singleton site configuration row.
type CompanySettings struct {
	ID                int64
	LogoPath          string
	CompanyName       string
	Tagline           string
	Phone             string
	Email             string
	Address           string
	GoogleAnalyticsID string
	FacebookPixelID   string
	UpdatedAt         time.Time
}
