// Copyright (c) 2025-2026 Blackstone EG & Partners
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/blackstoneeg/website/internal/middleware"
	"github.com/blackstoneeg/website/internal/render"
	"github.com/blackstoneeg/website/internal/service"
	"github.com/blackstoneeg/website/internal/store"
)

// PortfolioPerPage is the number of items per admin list page.
const PortfolioPerPage = 20

// PortfolioHandler handles the portfolio back office.
type PortfolioHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
	uploads  *service.UploadService
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(db *sql.DB, renderer *render.Renderer, uploads *service.UploadService) *PortfolioHandler {
	return &PortfolioHandler{
		queries:  store.New(db),
		renderer: renderer,
		uploads:  uploads,
	}
}

// PortfolioAdminListData holds data for the admin portfolio list template.
type PortfolioAdminListData struct {
	Items      []store.PortfolioItem
	Pagination Pagination
}

// List handles GET /admin/portfolio.
func (h *PortfolioHandler) List(w http.ResponseWriter, r *http.Request) {
	page := ParsePageParam(r)

	total, err := h.queries.CountPortfolioItems(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to count portfolio items", "error", err)
		return
	}

	page, _ = NormalizePagination(page, int(total), PortfolioPerPage)
	offset := int64((page - 1) * PortfolioPerPage)

	items, err := h.queries.ListPortfolioItems(r.Context(), store.ListPortfolioItemsParams{
		Limit:  PortfolioPerPage,
		Offset: offset,
	})
	if err != nil {
		logAndInternalError(w, "failed to list portfolio items", "error", err)
		return
	}

	td := render.TemplateData{
		Title: "Portfolio",
		Data: PortfolioAdminListData{
			Items:      items,
			Pagination: BuildPagination(page, int(total), PortfolioPerPage, RouteAdminPortfolio, r.URL.Query()),
		},
		User: middleware.GetUser(r),
	}

	if err := h.renderer.Render(w, r, "admin/portfolio", td); err != nil {
		logAndInternalError(w, "failed to render portfolio list", "error", err)
	}
}

// PortfolioFormData holds data for the portfolio create/edit template.
type PortfolioFormData struct {
	Item     store.PortfolioItem
	Errors   map[string]string
	Statuses []string
	IsNew    bool
}

// NewForm handles GET /admin/portfolio/new.
func (h *PortfolioHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	td := render.TemplateData{
		Title: "New Portfolio Item",
		Data: PortfolioFormData{
			Statuses: store.ValidPortfolioStatuses,
			IsNew:    true,
		},
		User: middleware.GetUser(r),
	}
	if err := h.renderer.Render(w, r, "admin/portfolio_form", td); err != nil {
		logAndInternalError(w, "failed to render portfolio form", "error", err)
	}
}

// EditForm handles GET /admin/portfolio/{id}.
func (h *PortfolioHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminPortfolio, "Invalid item ID")
		return
	}

	item, ok := requireEntityWithRedirect(w, r, h.renderer, RouteAdminPortfolio, "portfolio item", id,
		func(id int64) (store.PortfolioItem, error) { return h.queries.GetPortfolioItemByID(r.Context(), id) })
	if !ok {
		return
	}

	td := render.TemplateData{
		Title: "Edit Portfolio Item",
		Data: PortfolioFormData{
			Item:     item,
			Statuses: store.ValidPortfolioStatuses,
		},
		User: middleware.GetUser(r),
	}
	if err := h.renderer.Render(w, r, "admin/portfolio_form", td); err != nil {
		logAndInternalError(w, "failed to render portfolio form", "error", err)
	}
}

// itemInput gathers and validates the shared create/update form fields.
func (h *PortfolioHandler) itemInput(r *http.Request) (store.CreatePortfolioItemParams, map[string]string) {
	errs := make(map[string]string)

	title := r.FormValue("title")
	if title == "" {
		errs["title"] = "Title is required"
	}
	description := r.FormValue("description")
	if description == "" {
		errs["description"] = "Description is required"
	}
	category := r.FormValue("category")
	if category == "" {
		errs["category"] = "Category is required"
	}

	status := r.FormValue("status")
	if status == "" {
		status = store.PortfolioStatusCompleted
	}
	if !store.IsValidPortfolioStatus(status) {
		errs["status"] = "Invalid status"
	}

	var completion sql.NullTime
	if raw := r.FormValue("completion_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			errs["completion_date"] = "Invalid date (use YYYY-MM-DD)"
		} else {
			completion = sql.NullTime{Time: t, Valid: true}
		}
	}

	return store.CreatePortfolioItemParams{
		Title:          title,
		Description:    description,
		Category:       category,
		Client:         r.FormValue("client"),
		Value:          r.FormValue("value"),
		CompletionDate: completion,
		Status:         status,
		Location:       r.FormValue("location"),
	}, errs
}

// galleryImages merges the existing gallery with form removals and newly
// uploaded files, returning the JSON-encoded path list.
func (h *PortfolioHandler) galleryImages(r *http.Request, existing string) string {
	paths := filterGallery(store.DecodeGallery(existing), r.PostForm["remove_gallery"])

	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["gallery_images"] {
			file, err := header.Open()
			if err != nil {
				continue
			}
			result, err := h.uploads.SaveImage(file, header, service.UploadKindPortfolio)
			_ = file.Close()
			if err != nil {
				slog.Error("failed to store gallery image", "error", err, "filename", header.Filename)
				continue
			}
			paths = append(paths, result.Path)
		}
	}

	return store.EncodeGallery(paths)
}

// filterGallery drops the paths the form marked for removal.
func filterGallery(paths, removed []string) []string {
	if len(removed) == 0 {
		return paths
	}
	drop := make(map[string]bool, len(removed))
	for _, p := range removed {
		drop[p] = true
	}
	var kept []string
	for _, p := range paths {
		if !drop[p] {
			kept = append(kept, p)
		}
	}
	return kept
}

// featuredImage stores an uploaded featured image, if one was provided.
func (h *PortfolioHandler) featuredImage(r *http.Request) string {
	file, header, err := r.FormFile("featured_image")
	if err != nil {
		return ""
	}
	defer func() { _ = file.Close() }()

	result, err := h.uploads.SaveImage(file, header, service.UploadKindPortfolio)
	if err != nil {
		slog.Error("failed to store featured image", "error", err)
		return ""
	}
	return result.Path
}

// Create handles POST /admin/portfolio/new.
func (h *PortfolioHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(service.MaxUploadSize); err != nil {
		flashError(w, r, h.renderer, RouteAdminPortfolio+RouteSuffixNew, "Invalid form data")
		return
	}

	input, errs := h.itemInput(r)
	if len(errs) > 0 {
		h.renderFormErrors(w, r, "New Portfolio Item", store.PortfolioItem{
			Title:          input.Title,
			Description:    input.Description,
			Category:       input.Category,
			Client:         input.Client,
			Value:          input.Value,
			CompletionDate: input.CompletionDate,
			Status:         input.Status,
			Location:       input.Location,
		}, errs, true)
		return
	}

	input.FeaturedImage = h.featuredImage(r)
	input.GalleryImages = h.galleryImages(r, "")

	item, err := h.queries.CreatePortfolioItem(r.Context(), input)
	if err != nil {
		logAndInternalError(w, "failed to create portfolio item", "error", err)
		return
	}

	slog.Info("portfolio item created", "item_id", item.ID, "title", item.Title)
	flashSuccess(w, r, h.renderer, RouteAdminPortfolio, "Portfolio item created")
}

// Update handles POST /admin/portfolio/{id}.
func (h *PortfolioHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminPortfolio, "Invalid item ID")
		return
	}

	if err := r.ParseMultipartForm(service.MaxUploadSize); err != nil {
		flashError(w, r, h.renderer, RouteAdminPortfolio, "Invalid form data")
		return
	}

	existing, ok := requireEntityWithRedirect(w, r, h.renderer, RouteAdminPortfolio, "portfolio item", id,
		func(id int64) (store.PortfolioItem, error) { return h.queries.GetPortfolioItemByID(r.Context(), id) })
	if !ok {
		return
	}

	input, errs := h.itemInput(r)
	if len(errs) > 0 {
		existing.Title = input.Title
		existing.Description = input.Description
		existing.Category = input.Category
		existing.Client = input.Client
		existing.Value = input.Value
		existing.Status = input.Status
		existing.Location = input.Location
		h.renderFormErrors(w, r, "Edit Portfolio Item", existing, errs, false)
		return
	}

	featured := existing.FeaturedImage
	if path := h.featuredImage(r); path != "" {
		featured = path
	}

	if _, err := h.queries.UpdatePortfolioItem(r.Context(), store.UpdatePortfolioItemParams{
		ID:             id,
		Title:          input.Title,
		Description:    input.Description,
		Category:       input.Category,
		Client:         input.Client,
		Value:          input.Value,
		CompletionDate: input.CompletionDate,
		FeaturedImage:  featured,
		GalleryImages:  h.galleryImages(r, existing.GalleryImages),
		Status:         input.Status,
		Location:       input.Location,
	}); err != nil {
		logAndInternalError(w, "failed to update portfolio item", "error", err, "item_id", id)
		return
	}

	flashSuccess(w, r, h.renderer, RouteAdminPortfolio, "Portfolio item updated")
}

// Delete handles POST /admin/portfolio/{id}/delete.
func (h *PortfolioHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminPortfolio, "Invalid item ID")
		return
	}

	if _, ok := requireEntityWithRedirect(w, r, h.renderer, RouteAdminPortfolio, "portfolio item", id,
		func(id int64) (store.PortfolioItem, error) { return h.queries.GetPortfolioItemByID(r.Context(), id) }); !ok {
		return
	}

	if err := h.queries.DeletePortfolioItem(r.Context(), id); err != nil {
		logAndInternalError(w, "failed to delete portfolio item", "error", err, "item_id", id)
		return
	}

	flashSuccess(w, r, h.renderer, RouteAdminPortfolio, "Portfolio item deleted")
}

func (h *PortfolioHandler) renderFormErrors(w http.ResponseWriter, r *http.Request, title string, item store.PortfolioItem, errs map[string]string, isNew bool) {
	td := render.TemplateData{
		Title: title,
		Data: PortfolioFormData{
			Item:     item,
			Errors:   errs,
			Statuses: store.ValidPortfolioStatuses,
			IsNew:    isNew,
		},
		User: middleware.GetUser(r),
	}
	if err := h.renderer.Render(w, r, "admin/portfolio_form", td); err != nil {
		logAndInternalError(w, "failed to render portfolio form", "error", err)
	}
}
