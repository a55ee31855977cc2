// Copyright (c) 2025-2026 Blackstone EG & Partners
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler contains the HTTP handlers for the public site and the
// admin back office.
package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/blackstoneeg/website/internal/content"
	"github.com/blackstoneeg/website/internal/render"
	"github.com/blackstoneeg/website/internal/service"
	"github.com/blackstoneeg/website/internal/store"
)

// BlogPostsPerPage is the number of posts shown per public blog page.
const BlogPostsPerPage = 6

// Home page item counts.
const (
	homeRecentPosts   = 3
	homeFeaturedItems = 4
)

// FrontendHandler serves the public marketing pages.
type FrontendHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
	settings *service.SettingsService
}

// NewFrontendHandler creates a new FrontendHandler.
func NewFrontendHandler(db *sql.DB, renderer *render.Renderer, settings *service.SettingsService) *FrontendHandler {
	return &FrontendHandler{
		queries:  store.New(db),
		renderer: renderer,
		settings: settings,
	}
}

// pageData assembles TemplateData with the shared site settings.
func (h *FrontendHandler) pageData(r *http.Request, title string, data any) render.TemplateData {
	td := render.TemplateData{
		Title: title,
		Data:  data,
	}
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		slog.Error("failed to load company settings", "error", err)
		return td
	}
	td.Settings = settings
	return td
}

// HomeData holds data for the home page template.
type HomeData struct {
	Services    []content.Service
	RecentPosts []store.BlogPost
	Portfolio   []store.PortfolioItem
}

// Home handles GET / - the landing page.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	recentPosts, err := h.queries.ListPublishedPosts(r.Context(), store.ListPublishedPostsParams{
		Limit: homeRecentPosts,
	})
	if err != nil {
		logAndInternalError(w, "failed to list recent posts", "error", err)
		return
	}

	portfolio, err := h.queries.ListFeaturedPortfolioItems(r.Context(), homeFeaturedItems)
	if err != nil {
		logAndInternalError(w, "failed to list featured portfolio", "error", err)
		return
	}

	data := HomeData{
		Services:    content.FeaturedServices(),
		RecentPosts: recentPosts,
		Portfolio:   portfolio,
	}

	if err := h.renderer.Render(w, r, "public/home", h.pageData(r, "Home", data)); err != nil {
		logAndInternalError(w, "failed to render home page", "error", err)
	}
}

// Services handles GET /services.
func (h *FrontendHandler) Services(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, r, "public/services", h.pageData(r, "Our Services", content.Services())); err != nil {
		logAndInternalError(w, "failed to render services page", "error", err)
	}
}

// Team handles GET /team.
func (h *FrontendHandler) Team(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, r, "public/team", h.pageData(r, "Our Team", content.TeamMembers())); err != nil {
		logAndInternalError(w, "failed to render team page", "error", err)
	}
}

// About handles GET /about.
func (h *FrontendHandler) About(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, r, "public/about", h.pageData(r, "About Us", nil)); err != nil {
		logAndInternalError(w, "failed to render about page", "error", err)
	}
}

// BlogListData holds data for the blog index template.
type BlogListData struct {
	Posts      []store.BlogPost
	Pagination Pagination
}

// BlogList handles GET /blog - paginated published posts, newest first.
func (h *FrontendHandler) BlogList(w http.ResponseWriter, r *http.Request) {
	page := ParsePageParam(r)

	total, err := h.queries.CountPublishedPosts(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to count posts", "error", err)
		return
	}

	page, _ = NormalizePagination(page, int(total), BlogPostsPerPage)
	offset := int64((page - 1) * BlogPostsPerPage)

	posts, err := h.queries.ListPublishedPosts(r.Context(), store.ListPublishedPostsParams{
		Limit:  BlogPostsPerPage,
		Offset: offset,
	})
	if err != nil {
		logAndInternalError(w, "failed to list posts", "error", err)
		return
	}

	data := BlogListData{
		Posts:      posts,
		Pagination: BuildPagination(page, int(total), BlogPostsPerPage, RouteBlog, r.URL.Query()),
	}

	if err := h.renderer.Render(w, r, "public/blog", h.pageData(r, "Blog", data)); err != nil {
		logAndInternalError(w, "failed to render blog page", "error", err)
	}
}

// BlogPostData holds data for the blog detail template.
type BlogPostData struct {
	Post         store.BlogPost
	RelatedPosts []store.BlogPost
}

// BlogPost handles GET /blog/{slug}. Draft posts are indistinguishable from
// missing ones: both return 404.
func (h *FrontendHandler) BlogPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.queries.GetPublishedPostBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.NotFound(w, r)
			return
		}
		logAndInternalError(w, "failed to get post", "error", err, "slug", slug)
		return
	}

	related, err := h.queries.ListRelatedPosts(r.Context(), store.ListRelatedPostsParams{
		ExcludeID: post.ID,
		Limit:     homeRecentPosts,
	})
	if err != nil {
		slog.Error("failed to list related posts", "error", err, "post_id", post.ID)
	}

	data := BlogPostData{Post: post, RelatedPosts: related}

	if err := h.renderer.Render(w, r, "public/blog_post", h.pageData(r, post.Title, data)); err != nil {
		logAndInternalError(w, "failed to render post page", "error", err)
	}
}

// PortfolioListData holds data for the portfolio index template.
type PortfolioListData struct {
	Items      []store.PortfolioItem
	Categories []string
	Category   string
}

// PortfolioList handles GET /portfolio - completed projects, newest first,
// optionally filtered by ?category=.
func (h *FrontendHandler) PortfolioList(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	items, err := h.queries.ListCompletedPortfolioItems(r.Context(), category)
	if err != nil {
		logAndInternalError(w, "failed to list portfolio items", "error", err)
		return
	}

	categories, err := h.queries.ListPortfolioCategories(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list portfolio categories", "error", err)
		return
	}

	data := PortfolioListData{
		Items:      items,
		Categories: categories,
		Category:   category,
	}

	if err := h.renderer.Render(w, r, "public/portfolio", h.pageData(r, "Portfolio", data)); err != nil {
		logAndInternalError(w, "failed to render portfolio page", "error", err)
	}
}

// PortfolioItemData holds data for the portfolio detail template.
type PortfolioItemData struct {
	Item    store.PortfolioItem
	Related []store.PortfolioItem
}

// PortfolioItem handles GET /portfolio/{id}.
func (h *FrontendHandler) PortfolioItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		h.NotFound(w, r)
		return
	}

	item, err := h.queries.GetPortfolioItemByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.NotFound(w, r)
			return
		}
		logAndInternalError(w, "failed to get portfolio item", "error", err, "id", id)
		return
	}

	related, err := h.queries.ListRelatedPortfolioItems(r.Context(), store.ListRelatedPortfolioItemsParams{
		Category:  item.Category,
		ExcludeID: item.ID,
		Limit:     homeRecentPosts,
	})
	if err != nil {
		slog.Error("failed to list related portfolio items", "error", err, "id", item.ID)
	}

	data := PortfolioItemData{Item: item, Related: related}

	if err := h.renderer.Render(w, r, "public/portfolio_item", h.pageData(r, item.Title, data)); err != nil {
		logAndInternalError(w, "failed to render portfolio item page", "error", err)
	}
}

// NotFound renders the branded 404 page.
func (h *FrontendHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.RenderStatus(w, r, http.StatusNotFound, "public/404", h.pageData(r, "Page Not Found", nil)); err != nil {
		slog.Error("failed to render 404 page", "error", err)
		http.NotFound(w, r)
	}
}
