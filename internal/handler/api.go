// Copyright (c) 2025-2026 Blackstone EG & Partners
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/blackstoneeg/website/internal/middleware"
	"github.com/blackstoneeg/website/internal/store"
)

// APIHandler serves the JSON analytics endpoints.
type APIHandler struct {
	queries *store.Queries
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(db *sql.DB) *APIHandler {
	return &APIHandler{queries: store.New(db)}
}

// ContactStats is the JSON payload for the contact analytics endpoint.
type ContactStats struct {
	Total     int64            `json:"total"`
	New       int64            `json:"new"`
	Contacted int64            `json:"contacted"`
	Closed    int64            `json:"closed"`
	Last30d   int64            `json:"last_30_days"`
	ByService map[string]int64 `json:"by_service"`
}

// ContactStats handles GET /api/analytics/contact-stats. Only authenticated
// admins may call it; everyone else gets a 403 JSON error.
func (h *APIHandler) ContactStats(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil || !user.IsAdmin {
		writeJSONError(w, http.StatusForbidden, "Unauthorized")
		return
	}

	counts, err := h.queries.CountContactSubmissionsByStatus(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	byService, err := h.queries.CountContactSubmissionsByService(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if byService == nil {
		byService = map[string]int64{}
	}

	recent, err := h.queries.CountContactSubmissionsSince(r.Context(), time.Now().UTC().AddDate(0, 0, -30))
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	stats := ContactStats{
		New:       counts[store.ContactStatusNew],
		Contacted: counts[store.ContactStatusContacted],
		Closed:    counts[store.ContactStatusClosed],
		Last30d:   recent,
		ByService: byService,
	}
	for _, n := range counts {
		stats.Total += n
	}

	writeJSON(w, http.StatusOK, stats)
}
