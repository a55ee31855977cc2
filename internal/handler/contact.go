// Copyright (c) 2025-2026 Blackstone EG & Partners
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/blackstoneeg/website/internal/form"
	"github.com/blackstoneeg/website/internal/render"
	"github.com/blackstoneeg/website/internal/service"
)

// Contact form field limits.
const (
	ContactNameMinLength    = 2
	ContactNameMaxLength    = 100
	ContactPhoneMaxLength   = 20
	ContactMessageMinLength = 10
	ContactMessageMaxLength = 1000
)

// ServiceChoices are the selectable service interests on the contact form.
var ServiceChoices = []string{"energy", "real-estate", "manufacturing", "technology", "other"}

// ContactHandler serves the public contact form.
type ContactHandler struct {
	renderer *render.Renderer
	settings *service.SettingsService
	contacts *service.ContactService
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(renderer *render.Renderer, settings *service.SettingsService, contacts *service.ContactService) *ContactHandler {
	return &ContactHandler{
		renderer: renderer,
		settings: settings,
		contacts: contacts,
	}
}

// ContactFormData holds data for the contact page template.
type ContactFormData struct {
	Form           *form.Form
	ServiceChoices []string
}

// Show handles GET /contact.
func (h *ContactHandler) Show(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, form.New(nil))
}

// Submit handles POST /contact. A valid submission is always recorded before
// email delivery is attempted; an invalid one re-renders the form with the
// visitor's input intact and stores nothing.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteContact) {
		return
	}

	f := form.New(r.PostForm)
	f.Required("name", "email", "service", "message")
	f.MinLength("name", ContactNameMinLength)
	f.MaxLength("name", ContactNameMaxLength)
	f.Email("email")
	f.MaxLength("phone", ContactPhoneMaxLength)
	f.OneOf("service", ServiceChoices...)
	f.MinLength("message", ContactMessageMinLength)
	f.MaxLength("message", ContactMessageMaxLength)

	if !f.Valid() {
		h.render(w, r, http.StatusOK, f)
		return
	}

	sub, err := h.contacts.Submit(r.Context(), service.SubmitRequest{
		Name:    f.Get("name"),
		Email:   f.Get("email"),
		Phone:   f.Get("phone"),
		Service: f.Get("service"),
		Message: f.Get("message"),
	})
	if err != nil {
		logAndInternalError(w, "failed to record contact submission", "error", err)
		return
	}

	flashSuccess(w, r, h.renderer, RouteContact,
		"Thank you for your inquiry. Your reference is "+sub.Reference+". We will be in touch within one business day.")
}

func (h *ContactHandler) render(w http.ResponseWriter, r *http.Request, status int, f *form.Form) {
	td := render.TemplateData{
		Title: "Contact Us",
		Data: ContactFormData{
			Form:           f,
			ServiceChoices: ServiceChoices,
		},
	}
	if settings, err := h.settings.Get(r.Context()); err == nil {
		td.Settings = settings
	}

	if err := h.renderer.RenderStatus(w, r, status, "public/contact", td); err != nil {
		logAndInternalError(w, "failed to render contact page", "error", err)
	}
}
