// Copyright (c) 2025-2026 Blackstone EG & Partners
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const postColumns = `id, title, slug, content, excerpt, author, featured_image, published, tags, created_at, updated_at`

func scanPost(row interface{ Scan(...any) error }) (BlogPost, error) {
	var p BlogPost
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.Author,
		&p.FeaturedImage, &p.Published, &p.Tags, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func collectPosts(rows *sql.Rows) ([]BlogPost, error) {
	defer rows.Close()
	var posts []BlogPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

const createBlogPost = `
INSERT INTO blog_posts (title, slug, content, excerpt, author, featured_image, published, tags, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + postColumns

// CreateBlogPostParams holds the inputs for CreateBlogPost.
type CreateBlogPostParams struct {
	Title         string
	Slug          string
	Content       string
	Excerpt       string
	Author        string
	FeaturedImage string
	Published     bool
	Tags          string
}

// CreateBlogPost inserts a new blog post.
func (q *Queries) CreateBlogPost(ctx context.Context, arg CreateBlogPostParams) (BlogPost, error) {
	now := time.Now().UTC()
	row := q.db.QueryRowContext(ctx, createBlogPost,
		arg.Title, arg.Slug, arg.Content, arg.Excerpt, arg.Author,
		arg.FeaturedImage, arg.Published, arg.Tags, now, now)
	return scanPost(row)
}

const getBlogPostByID = `
SELECT ` + postColumns + ` FROM blog_posts WHERE id = ?
`

// GetBlogPostByID returns the post with the given ID, published or not.
func (q *Queries) GetBlogPostByID(ctx context.Context, id int64) (BlogPost, error) {
	return scanPost(q.db.QueryRowContext(ctx, getBlogPostByID, id))
}

const getPublishedPostBySlug = `
SELECT ` + postColumns + ` FROM blog_posts WHERE slug = ? AND published = 1
`

// GetPublishedPostBySlug returns the published post with the given slug.
// Draft posts are invisible here, so the caller sees sql.ErrNoRows for them.
func (q *Queries) GetPublishedPostBySlug(ctx context.Context, slug string) (BlogPost, error) {
	return scanPost(q.db.QueryRowContext(ctx, getPublishedPostBySlug, slug))
}

const blogPostSlugExists = `
SELECT EXISTS(SELECT 1 FROM blog_posts WHERE slug = ? AND id != ?)
`

// BlogPostSlugExistsParams holds the inputs for BlogPostSlugExists.
type BlogPostSlugExistsParams struct {
	Slug      string
	ExcludeID int64
}

// BlogPostSlugExists reports whether another post already uses the slug.
func (q *Queries) BlogPostSlugExists(ctx context.Context, arg BlogPostSlugExistsParams) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, blogPostSlugExists, arg.Slug, arg.ExcludeID).Scan(&exists)
	return exists, err
}

const listPublishedPosts = `
SELECT ` + postColumns + ` FROM blog_posts WHERE published = 1
ORDER BY created_at DESC LIMIT ? OFFSET ?
`

// ListPublishedPostsParams holds the inputs for ListPublishedPosts.
type ListPublishedPostsParams struct {
	Limit  int64
	Offset int64
}

// ListPublishedPosts returns a page of published posts, newest first.
func (q *Queries) ListPublishedPosts(ctx context.Context, arg ListPublishedPostsParams) ([]BlogPost, error) {
	rows, err := q.db.QueryContext(ctx, listPublishedPosts, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	return collectPosts(rows)
}

const countPublishedPosts = `SELECT COUNT(*) FROM blog_posts WHERE published = 1`

// CountPublishedPosts returns the number of published posts.
func (q *Queries) CountPublishedPosts(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countPublishedPosts).Scan(&n)
	return n, err
}

const listBlogPosts = `
SELECT ` + postColumns + ` FROM blog_posts ORDER BY created_at DESC LIMIT ? OFFSET ?
`

// ListBlogPostsParams holds the inputs for ListBlogPosts.
type ListBlogPostsParams struct {
	Limit  int64
	Offset int64
}

// ListBlogPosts returns a page of all posts for the back office, newest first.
func (q *Queries) ListBlogPosts(ctx context.Context, arg ListBlogPostsParams) ([]BlogPost, error) {
	rows, err := q.db.QueryContext(ctx, listBlogPosts, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	return collectPosts(rows)
}

const countBlogPosts = `SELECT COUNT(*) FROM blog_posts`

// CountBlogPosts returns the total number of posts, drafts included.
func (q *Queries) CountBlogPosts(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countBlogPosts).Scan(&n)
	return n, err
}

const listRelatedPosts = `
SELECT ` + postColumns + ` FROM blog_posts
WHERE published = 1 AND id != ?
ORDER BY created_at DESC LIMIT ?
`

// ListRelatedPostsParams holds the inputs for ListRelatedPosts.
type ListRelatedPostsParams struct {
	ExcludeID int64
	Limit     int64
}

// ListRelatedPosts returns recent published posts other than the one shown.
func (q *Queries) ListRelatedPosts(ctx context.Context, arg ListRelatedPostsParams) ([]BlogPost, error) {
	rows, err := q.db.QueryContext(ctx, listRelatedPosts, arg.ExcludeID, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collectPosts(rows)
}

const updateBlogPost = `
UPDATE blog_posts
SET title = ?, slug = ?, content = ?, excerpt = ?, author = ?, featured_image = ?, published = ?, tags = ?, updated_at = ?
WHERE id = ?
RETURNING ` + postColumns

// UpdateBlogPostParams holds the inputs for UpdateBlogPost.
type UpdateBlogPostParams struct {
	ID            int64
	Title         string
	Slug          string
	Content       string
	Excerpt       string
	Author        string
	FeaturedImage string
	Published     bool
	Tags          string
}

// UpdateBlogPost updates all editable fields of a post.
func (q *Queries) UpdateBlogPost(ctx context.Context, arg UpdateBlogPostParams) (BlogPost, error) {
	row := q.db.QueryRowContext(ctx, updateBlogPost,
		arg.Title, arg.Slug, arg.Content, arg.Excerpt, arg.Author,
		arg.FeaturedImage, arg.Published, arg.Tags, time.Now().UTC(), arg.ID)
	return scanPost(row)
}

const deleteBlogPost = `DELETE FROM blog_posts WHERE id = ?`

// DeleteBlogPost removes a post.
func (q *Queries) DeleteBlogPost(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteBlogPost, id)
	return err
}
