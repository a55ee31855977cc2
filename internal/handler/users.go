// Copyright (c) 2025-2026 Blackstone EG & Partners
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"
	"net/mail"

	"github.com/blackstoneeg/website/internal/auth"
	"github.com/blackstoneeg/website/internal/middleware"
	"github.com/blackstoneeg/website/internal/render"
	"github.com/blackstoneeg/website/internal/store"
)

// UsersPerPage is the number of users per admin list page.
const UsersPerPage = 10

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// UsersHandler handles user management routes.
type UsersHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(db *sql.DB, renderer *render.Renderer) *UsersHandler {
	return &UsersHandler{
		queries:  store.New(db),
		renderer: renderer,
	}
}

// UsersListData holds data for the users list template.
type UsersListData struct {
	Users         []store.User
	CurrentUserID int64
	Pagination    Pagination
}

// List handles GET /admin/users.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	page := ParsePageParam(r)

	total, err := h.queries.CountUsers(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to count users", "error", err)
		return
	}

	page, _ = NormalizePagination(page, int(total), UsersPerPage)
	offset := int64((page - 1) * UsersPerPage)

	users, err := h.queries.ListUsers(r.Context(), store.ListUsersParams{
		Limit:  UsersPerPage,
		Offset: offset,
	})
	if err != nil {
		logAndInternalError(w, "failed to list users", "error", err)
		return
	}

	td := render.TemplateData{
		Title: "Users",
		Data: UsersListData{
			Users:         users,
			CurrentUserID: middleware.GetUserID(r),
			Pagination:    BuildPagination(page, int(total), UsersPerPage, RouteAdminUsers, r.URL.Query()),
		},
		User: middleware.GetUser(r),
	}

	if err := h.renderer.Render(w, r, "admin/users", td); err != nil {
		logAndInternalError(w, "failed to render users list", "error", err)
	}
}

// UserFormData holds data for the user create/edit template.
type UserFormData struct {
	User   store.User
	Errors map[string]string
	IsNew  bool
}

// NewForm handles GET /admin/users/new.
func (h *UsersHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	td := render.TemplateData{
		Title: "New User",
		Data:  UserFormData{IsNew: true},
		User:  middleware.GetUser(r),
	}
	if err := h.renderer.Render(w, r, "admin/user_form", td); err != nil {
		logAndInternalError(w, "failed to render user form", "error", err)
	}
}

// Create handles POST /admin/users/new.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteAdminUsers+RouteSuffixNew) {
		return
	}

	username := r.FormValue("username")
	email := r.FormValue("email")
	password := r.FormValue("password")
	isAdmin := r.FormValue("is_admin") == "on"

	errs := make(map[string]string)
	if username == "" {
		errs["username"] = "Username is required"
	}
	if email == "" {
		errs["email"] = "Email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs["email"] = "Must be a valid email address"
	}
	if len(password) < MinPasswordLength {
		errs["password"] = "Password must be at least 8 characters"
	}

	if len(errs) > 0 {
		td := render.TemplateData{
			Title: "New User",
			Data: UserFormData{
				User:   store.User{Username: username, Email: email, IsAdmin: isAdmin},
				Errors: errs,
				IsNew:  true,
			},
			User: middleware.GetUser(r),
		}
		if err := h.renderer.Render(w, r, "admin/user_form", td); err != nil {
			logAndInternalError(w, "failed to render user form", "error", err)
		}
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		logAndInternalError(w, "failed to hash password", "error", err)
		return
	}

	user, err := h.queries.CreateUser(r.Context(), store.CreateUserParams{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      isAdmin,
	})
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminUsers+RouteSuffixNew, "Could not create user (username or email already in use)")
		return
	}

	slog.Info("user created", "user_id", user.ID, "username", user.Username)
	flashSuccess(w, r, h.renderer, RouteAdminUsers, "User created")
}

// EditForm handles GET /admin/users/{id}.
func (h *UsersHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminUsers, "Invalid user ID")
		return
	}

	user, ok := requireEntityWithRedirect(w, r, h.renderer, RouteAdminUsers, "user", id,
		func(id int64) (store.User, error) { return h.queries.GetUserByID(r.Context(), id) })
	if !ok {
		return
	}

	h.renderEditForm(w, r, user, nil)
}

// Update handles POST /admin/users/{id}. Password is only changed when a new
// one is supplied; the last admin cannot lose the admin flag.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminUsers, "Invalid user ID")
		return
	}

	current, ok := requireEntityWithRedirect(w, r, h.renderer, RouteAdminUsers, "user", id,
		func(id int64) (store.User, error) { return h.queries.GetUserByID(r.Context(), id) })
	if !ok {
		return
	}

	if !parseFormOrRedirect(w, r, h.renderer, RouteAdminUsers) {
		return
	}

	username := r.FormValue("username")
	email := r.FormValue("email")
	password := r.FormValue("password")
	isAdmin := r.FormValue("is_admin") == "on"

	errs := make(map[string]string)
	if username == "" {
		errs["username"] = "Username is required"
	}
	if email == "" {
		errs["email"] = "Email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs["email"] = "Must be a valid email address"
	}
	if password != "" && len(password) < MinPasswordLength {
		errs["password"] = "Password must be at least 8 characters"
	}

	if current.IsAdmin && !isAdmin {
		admins, err := h.queries.CountAdmins(r.Context())
		if err != nil {
			logAndInternalError(w, "failed to count admins", "error", err)
			return
		}
		if admins <= 1 {
			errs["is_admin"] = "Cannot remove the admin role from the last admin account"
		}
	}

	if len(errs) > 0 {
		h.renderEditForm(w, r, store.User{ID: id, Username: username, Email: email, IsAdmin: isAdmin}, errs)
		return
	}

	user, err := h.queries.UpdateUser(r.Context(), store.UpdateUserParams{
		ID:       id,
		Username: username,
		Email:    email,
		IsAdmin:  isAdmin,
	})
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminUsers, "Could not update user (username or email already in use)")
		return
	}

	if password != "" {
		hash, err := auth.HashPassword(password)
		if err != nil {
			logAndInternalError(w, "failed to hash password", "error", err)
			return
		}
		if err := h.queries.UpdateUserPassword(r.Context(), store.UpdateUserPasswordParams{
			ID:           id,
			PasswordHash: hash,
		}); err != nil {
			logAndInternalError(w, "failed to update password", "error", err, "user_id", id)
			return
		}
	}

	slog.Info("user updated", "user_id", user.ID, "by", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, RouteAdminUsers, "User updated")
}

func (h *UsersHandler) renderEditForm(w http.ResponseWriter, r *http.Request, user store.User, errs map[string]string) {
	td := render.TemplateData{
		Title: "Edit User",
		Data: UserFormData{
			User:   user,
			Errors: errs,
		},
		User: middleware.GetUser(r),
	}
	if err := h.renderer.Render(w, r, "admin/user_form", td); err != nil {
		logAndInternalError(w, "failed to render user form", "error", err)
	}
}

// Delete handles POST /admin/users/{id}/delete. The last admin account
// cannot be removed, nor can users remove themselves.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminUsers, "Invalid user ID")
		return
	}

	if id == middleware.GetUserID(r) {
		flashError(w, r, h.renderer, RouteAdminUsers, "You cannot delete your own account")
		return
	}

	target, ok := requireEntityWithRedirect(w, r, h.renderer, RouteAdminUsers, "user", id,
		func(id int64) (store.User, error) { return h.queries.GetUserByID(r.Context(), id) })
	if !ok {
		return
	}

	if target.IsAdmin {
		admins, err := h.queries.CountAdmins(r.Context())
		if err != nil {
			logAndInternalError(w, "failed to count admins", "error", err)
			return
		}
		if admins <= 1 {
			flashError(w, r, h.renderer, RouteAdminUsers, "Cannot delete the last admin account")
			return
		}
	}

	if err := h.queries.DeleteUser(r.Context(), id); err != nil {
		logAndInternalError(w, "failed to delete user", "error", err, "user_id", id)
		return
	}

	slog.Info("user deleted", "user_id", id, "by", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, RouteAdminUsers, "User deleted")
}
