// Copyright (c) 2025-2026 Blackstone EG & Partners
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"net/mail"

	"github.com/blackstoneeg/website/internal/middleware"
	"github.com/blackstoneeg/website/internal/render"
	"github.com/blackstoneeg/website/internal/service"
	"github.com/blackstoneeg/website/internal/store"
)

// SettingsHandler handles the company settings back office.
type SettingsHandler struct {
	renderer *render.Renderer
	settings *service.SettingsService
	uploads  *service.UploadService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(renderer *render.Renderer, settings *service.SettingsService, uploads *service.UploadService) *SettingsHandler {
	return &SettingsHandler{
		renderer: renderer,
		settings: settings,
		uploads:  uploads,
	}
}

// SettingsFormData holds data for the settings template.
type SettingsFormData struct {
	Settings store.CompanySettings
	Errors   map[string]string
}

// Show handles GET /admin/settings.
func (h *SettingsHandler) Show(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to load settings", "error", err)
		return
	}

	td := render.TemplateData{
		Title:    "Site Settings",
		Data:     SettingsFormData{Settings: settings},
		Settings: settings,
		User:     middleware.GetUser(r),
	}

	if err := h.renderer.Render(w, r, "admin/settings", td); err != nil {
		logAndInternalError(w, "failed to render settings page", "error", err)
	}
}

// Update handles POST /admin/settings.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(service.MaxUploadSize); err != nil {
		flashError(w, r, h.renderer, RouteAdminSettings, "Invalid form data")
		return
	}

	current, err := h.settings.Get(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to load settings", "error", err)
		return
	}

	companyName := r.FormValue("company_name")
	email := r.FormValue("email")

	errs := make(map[string]string)
	if companyName == "" {
		errs["company_name"] = "Company name is required"
	}
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			errs["email"] = "Must be a valid email address"
		}
	}

	if len(errs) > 0 {
		td := render.TemplateData{
			Title: "Site Settings",
			Data: SettingsFormData{
				Settings: current,
				Errors:   errs,
			},
			Settings: current,
			User:     middleware.GetUser(r),
		}
		if err := h.renderer.Render(w, r, "admin/settings", td); err != nil {
			logAndInternalError(w, "failed to render settings page", "error", err)
		}
		return
	}

	logoPath := current.LogoPath
	if file, header, err := r.FormFile("logo"); err == nil {
		defer func() { _ = file.Close() }()
		if result, err := h.uploads.SaveImage(file, header, service.UploadKindLogo); err != nil {
			slog.Error("failed to store logo", "error", err)
		} else {
			logoPath = result.Path
		}
	}

	if _, err := h.settings.Update(r.Context(), store.UpdateCompanySettingsParams{
		LogoPath:          logoPath,
		CompanyName:       companyName,
		Tagline:           r.FormValue("tagline"),
		Phone:             r.FormValue("phone"),
		Email:             email,
		Address:           r.FormValue("address"),
		GoogleAnalyticsID: r.FormValue("google_analytics_id"),
		FacebookPixelID:   r.FormValue("facebook_pixel_id"),
	}); err != nil {
		logAndInternalError(w, "failed to update settings", "error", err)
		return
	}

	flashSuccess(w, r, h.renderer, RouteAdminSettings, "Settings saved")
}
