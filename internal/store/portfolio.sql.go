// Copyright (c) 2025-2026 Blackstone EG & Partners
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const portfolioColumns = `id, title, description, category, client, value, completion_date, featured_image, gallery_images, status, location, created_at, updated_at`

func scanPortfolioItem(row interface{ Scan(...any) error }) (PortfolioItem, error) {
	var p PortfolioItem
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Category, &p.Client, &p.Value,
		&p.CompletionDate, &p.FeaturedImage, &p.GalleryImages, &p.Status, &p.Location,
		&p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func collectPortfolioItems(rows *sql.Rows) ([]PortfolioItem, error) {
	defer rows.Close()
	var items []PortfolioItem
	for rows.Next() {
		p, err := scanPortfolioItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

const createPortfolioItem = `
INSERT INTO portfolio_items (title, description, category, client, value, completion_date, featured_image, gallery_images, status, location, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + portfolioColumns

// CreatePortfolioItemParams holds the inputs for CreatePortfolioItem.
type CreatePortfolioItemParams struct {
	Title          string
	Description    string
	Category       string
	Client         string
	Value          string
	CompletionDate sql.NullTime
	FeaturedImage  string
	GalleryImages  string
	Status         string
	Location       string
}

// CreatePortfolioItem inserts a new portfolio entry.
func (q *Queries) CreatePortfolioItem(ctx context.Context, arg CreatePortfolioItemParams) (PortfolioItem, error) {
	now := time.Now().UTC()
	gallery := arg.GalleryImages
	if gallery == "" {
		gallery = "[]"
	}
	row := q.db.QueryRowContext(ctx, createPortfolioItem,
		arg.Title, arg.Description, arg.Category, arg.Client, arg.Value,
		arg.CompletionDate, arg.FeaturedImage, gallery, arg.Status, arg.Location, now, now)
	return scanPortfolioItem(row)
}

const getPortfolioItemByID = `
SELECT ` + portfolioColumns + ` FROM portfolio_items WHERE id = ?
`

// GetPortfolioItemByID returns the portfolio item with the given ID.
func (q *Queries) GetPortfolioItemByID(ctx context.Context, id int64) (PortfolioItem, error) {
	return scanPortfolioItem(q.db.QueryRowContext(ctx, getPortfolioItemByID, id))
}

const listCompletedPortfolioItems = `
SELECT ` + portfolioColumns + ` FROM portfolio_items
WHERE status = 'completed' AND (?1 = '' OR category = ?1)
ORDER BY created_at DESC
`

// ListCompletedPortfolioItems returns completed items, newest first, filtered
// to a category when one is given.
func (q *Queries) ListCompletedPortfolioItems(ctx context.Context, category string) ([]PortfolioItem, error) {
	rows, err := q.db.QueryContext(ctx, listCompletedPortfolioItems, category)
	if err != nil {
		return nil, err
	}
	return collectPortfolioItems(rows)
}

const listFeaturedPortfolioItems = `
SELECT ` + portfolioColumns + ` FROM portfolio_items
WHERE status = 'completed' ORDER BY created_at DESC LIMIT ?
`

// ListFeaturedPortfolioItems returns the newest completed items for the
// home page showcase.
func (q *Queries) ListFeaturedPortfolioItems(ctx context.Context, limit int64) ([]PortfolioItem, error) {
	rows, err := q.db.QueryContext(ctx, listFeaturedPortfolioItems, limit)
	if err != nil {
		return nil, err
	}
	return collectPortfolioItems(rows)
}

const listRelatedPortfolioItems = `
SELECT ` + portfolioColumns + ` FROM portfolio_items
WHERE status = 'completed' AND category = ? AND id != ?
ORDER BY created_at DESC LIMIT ?
`

// ListRelatedPortfolioItemsParams holds the inputs for ListRelatedPortfolioItems.
type ListRelatedPortfolioItemsParams struct {
	Category  string
	ExcludeID int64
	Limit     int64
}

// ListRelatedPortfolioItems returns completed items in the same category,
// excluding the one being shown.
func (q *Queries) ListRelatedPortfolioItems(ctx context.Context, arg ListRelatedPortfolioItemsParams) ([]PortfolioItem, error) {
	rows, err := q.db.QueryContext(ctx, listRelatedPortfolioItems, arg.Category, arg.ExcludeID, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collectPortfolioItems(rows)
}

const listPortfolioCategories = `
SELECT DISTINCT category FROM portfolio_items WHERE status = 'completed' ORDER BY category
`

// ListPortfolioCategories returns the distinct categories of completed items.
func (q *Queries) ListPortfolioCategories(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listPortfolioCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

const listPortfolioItems = `
SELECT ` + portfolioColumns + ` FROM portfolio_items ORDER BY created_at DESC LIMIT ? OFFSET ?
`

// ListPortfolioItemsParams holds the inputs for ListPortfolioItems.
type ListPortfolioItemsParams struct {
	Limit  int64
	Offset int64
}

// ListPortfolioItems returns a page of all items for the back office,
// regardless of status.
func (q *Queries) ListPortfolioItems(ctx context.Context, arg ListPortfolioItemsParams) ([]PortfolioItem, error) {
	rows, err := q.db.QueryContext(ctx, listPortfolioItems, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	return collectPortfolioItems(rows)
}

const countPortfolioItems = `SELECT COUNT(*) FROM portfolio_items`

// CountPortfolioItems returns the total number of portfolio items.
func (q *Queries) CountPortfolioItems(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countPortfolioItems).Scan(&n)
	return n, err
}

const updatePortfolioItem = `
UPDATE portfolio_items
SET title = ?, description = ?, category = ?, client = ?, value = ?, completion_date = ?,
    featured_image = ?, gallery_images = ?, status = ?, location = ?, updated_at = ?
WHERE id = ?
RETURNING ` + portfolioColumns

// UpdatePortfolioItemParams holds the inputs for UpdatePortfolioItem.
type UpdatePortfolioItemParams struct {
	ID             int64
	Title          string
	Description    string
	Category       string
	Client         string
	Value          string
	CompletionDate sql.NullTime
	FeaturedImage  string
	GalleryImages  string
	Status         string
	Location       string
}

// UpdatePortfolioItem updates all editable fields of a portfolio item.
func (q *Queries) UpdatePortfolioItem(ctx context.Context, arg UpdatePortfolioItemParams) (PortfolioItem, error) {
	gallery := arg.GalleryImages
	if gallery == "" {
		gallery = "[]"
	}
	row := q.db.QueryRowContext(ctx, updatePortfolioItem,
		arg.Title, arg.Description, arg.Category, arg.Client, arg.Value,
		arg.CompletionDate, arg.FeaturedImage, gallery, arg.Status, arg.Location,
		time.Now().UTC(), arg.ID)
	return scanPortfolioItem(row)
}

const deletePortfolioItem = `DELETE FROM portfolio_items WHERE id = ?`

// DeletePortfolioItem removes a portfolio item.
func (q *Queries) DeletePortfolioItem(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deletePortfolioItem, id)
	return err
}
