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

// ContactsPerPage is the number of submissions per admin list page.
const ContactsPerPage = 20

// ContactsHandler handles the contact submission back office.
type ContactsHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewContactsHandler creates a new ContactsHandler.
func NewContactsHandler(db *sql.DB, renderer *render.Renderer) *ContactsHandler {
	return &ContactsHandler{
		queries:  store.New(db),
		renderer: renderer,
	}
}

// ContactsListData holds data for the submissions list template.
type ContactsListData struct {
	Submissions []store.ContactSubmission
	Status      string
	Service     string
	Search      string
	Statuses    []string
	Services    []string
	Pagination  Pagination
}

// List handles GET /admin/contacts with optional status, service and search filters.
func (h *ContactsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status := q.Get("status")
	svc := q.Get("service")
	search := q.Get("search")

	page := ParsePageParam(r)

	total, err := h.queries.CountContactSubmissions(r.Context(), store.CountContactSubmissionsParams{
		Status:  status,
		Service: svc,
		Search:  search,
	})
	if err != nil {
		logAndInternalError(w, "failed to count contact submissions", "error", err)
		return
	}

	page, _ = NormalizePagination(page, int(total), ContactsPerPage)
	offset := int64((page - 1) * ContactsPerPage)

	submissions, err := h.queries.ListContactSubmissions(r.Context(), store.ListContactSubmissionsParams{
		Status:  status,
		Service: svc,
		Search:  search,
		Limit:   ContactsPerPage,
		Offset:  offset,
	})
	if err != nil {
		logAndInternalError(w, "failed to list contact submissions", "error", err)
		return
	}

	data := ContactsListData{
		Submissions: submissions,
		Status:      status,
		Service:     svc,
		Search:      search,
		Statuses:    store.ValidContactStatuses,
		Services:    ServiceChoices,
		Pagination:  BuildPagination(page, int(total), ContactsPerPage, RouteAdminContacts, q),
	}

	td := render.TemplateData{
		Title: "Contact Submissions",
		Data:  data,
		User:  middleware.GetUser(r),
	}

	if err := h.renderer.Render(w, r, "admin/contacts", td); err != nil {
		logAndInternalError(w, "failed to render contacts list", "error", err)
	}
}

// ContactDetailData holds data for the submission detail template.
type ContactDetailData struct {
	Submission store.ContactSubmission
	Statuses   []string
}

// Show handles GET /admin/contacts/{id}.
func (h *ContactsHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminContacts, "Invalid submission ID")
		return
	}

	sub, ok := requireEntityWithRedirect(w, r, h.renderer, RouteAdminContacts, "submission", id,
		func(id int64) (store.ContactSubmission, error) {
			return h.queries.GetContactSubmissionByID(r.Context(), id)
		})
	if !ok {
		return
	}

	td := render.TemplateData{
		Title: "Submission " + sub.Reference,
		Data: ContactDetailData{
			Submission: sub,
			Statuses:   store.ValidContactStatuses,
		},
		User: middleware.GetUser(r),
	}

	if err := h.renderer.Render(w, r, "admin/contact_detail", td); err != nil {
		logAndInternalError(w, "failed to render contact detail", "error", err)
	}
}

// Update handles POST /admin/contacts/{id} - triage status and notes.
func (h *ContactsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminContacts, "Invalid submission ID")
		return
	}

	if !parseFormOrRedirect(w, r, h.renderer, RouteAdminContacts) {
		return
	}

	detailURL := RouteAdminContacts + "/" + idString(id)

	status := r.FormValue("status")
	if !store.IsValidContactStatus(status) {
		flashError(w, r, h.renderer, detailURL, "Invalid status")
		return
	}

	if _, ok := requireEntityWithRedirect(w, r, h.renderer, RouteAdminContacts, "submission", id,
		func(id int64) (store.ContactSubmission, error) {
			return h.queries.GetContactSubmissionByID(r.Context(), id)
		}); !ok {
		return
	}

	if _, err := h.queries.UpdateContactSubmissionTriage(r.Context(), store.UpdateContactSubmissionTriageParams{
		ID:     id,
		Status: status,
		Notes:  r.FormValue("notes"),
	}); err != nil {
		logAndInternalError(w, "failed to update submission", "error", err, "id", id)
		return
	}

	flashSuccess(w, r, h.renderer, detailURL, "Submission updated")
}

// Delete handles POST /admin/contacts/{id}/delete.
func (h *ContactsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminContacts, "Invalid submission ID")
		return
	}

	if _, ok := requireEntityWithRedirect(w, r, h.renderer, RouteAdminContacts, "submission", id,
		func(id int64) (store.ContactSubmission, error) {
			return h.queries.GetContactSubmissionByID(r.Context(), id)
		}); !ok {
		return
	}

	if err := h.queries.DeleteContactSubmission(r.Context(), id); err != nil {
		logAndInternalError(w, "failed to delete submission", "error", err, "id", id)
		return
	}

	flashSuccess(w, r, h.renderer, RouteAdminContacts, "Submission deleted")
}
