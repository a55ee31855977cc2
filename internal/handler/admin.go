// Copyright (c) 2025-2026 Blackstone EG & Partners
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"

	"github.com/blackstoneeg/website/internal/middleware"
	"github.com/blackstoneeg/website/internal/render"
	"github.com/blackstoneeg/website/internal/store"
)

// dashboardRecentContacts is the number of submissions shown on the dashboard.
const dashboardRecentContacts = 5

// AdminHandler serves the back-office dashboard.
type AdminHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(db *sql.DB, renderer *render.Renderer) *AdminHandler {
	return &AdminHandler{
		queries:  store.New(db),
		renderer: renderer,
	}
}

// DashboardData holds data for the dashboard template.
type DashboardData struct {
	ContactCounts  map[string]int64
	TotalContacts  int64
	NewContacts    int64
	TotalPosts     int64
	PublishedPosts int64
	TotalPortfolio int64
	TotalUsers     int64
	RecentContacts []store.ContactSubmission
}

// Dashboard handles GET /admin - the back-office landing page.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contactCounts, err := h.queries.CountContactSubmissionsByStatus(ctx)
	if err != nil {
		logAndInternalError(w, "failed to count contacts by status", "error", err)
		return
	}

	var totalContacts int64
	for _, n := range contactCounts {
		totalContacts += n
	}

	totalPosts, err := h.queries.CountBlogPosts(ctx)
	if err != nil {
		logAndInternalError(w, "failed to count posts", "error", err)
		return
	}

	publishedPosts, err := h.queries.CountPublishedPosts(ctx)
	if err != nil {
		logAndInternalError(w, "failed to count published posts", "error", err)
		return
	}

	totalPortfolio, err := h.queries.CountPortfolioItems(ctx)
	if err != nil {
		logAndInternalError(w, "failed to count portfolio items", "error", err)
		return
	}

	totalUsers, err := h.queries.CountUsers(ctx)
	if err != nil {
		logAndInternalError(w, "failed to count users", "error", err)
		return
	}

	recentContacts, err := h.queries.ListRecentContactSubmissions(ctx, dashboardRecentContacts)
	if err != nil {
		logAndInternalError(w, "failed to list recent contacts", "error", err)
		return
	}

	data := DashboardData{
		ContactCounts:  contactCounts,
		TotalContacts:  totalContacts,
		NewContacts:    contactCounts[store.ContactStatusNew],
		TotalPosts:     totalPosts,
		PublishedPosts: publishedPosts,
		TotalPortfolio: totalPortfolio,
		TotalUsers:     totalUsers,
		RecentContacts: recentContacts,
	}

	td := render.TemplateData{
		Title: "Dashboard",
		Data:  data,
		User:  middleware.GetUser(r),
	}

	if err := h.renderer.Render(w, r, "admin/dashboard", td); err != nil {
		logAndInternalError(w, "failed to render dashboard", "error", err)
	}
}
