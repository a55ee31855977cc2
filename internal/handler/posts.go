// Copyright (c) 2025-2026 Blackstone EG & Partners
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/blackstoneeg/website/internal/middleware"
	"github.com/blackstoneeg/website/internal/render"
	"github.com/blackstoneeg/website/internal/service"
	"github.com/blackstoneeg/website/internal/store"
	"github.com/blackstoneeg/website/internal/util"
)

// PostsPerPage is the number of posts per admin list page.
const PostsPerPage = 20

// PostsHandler handles the blog post back office.
type PostsHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
	uploads  *service.UploadService
}

// NewPostsHandler creates a new PostsHandler.
func NewPostsHandler(db *sql.DB, renderer *render.Renderer, uploads *service.UploadService) *PostsHandler {
	return &PostsHandler{
		queries:  store.New(db),
		renderer: renderer,
		uploads:  uploads,
	}
}

// PostsListData holds data for the posts list template.
type PostsListData struct {
	Posts      []store.BlogPost
	Pagination Pagination
}

// List handles GET /admin/posts.
func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	page := ParsePageParam(r)

	total, err := h.queries.CountBlogPosts(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to count posts", "error", err)
		return
	}

	page, _ = NormalizePagination(page, int(total), PostsPerPage)
	offset := int64((page - 1) * PostsPerPage)

	posts, err := h.queries.ListBlogPosts(r.Context(), store.ListBlogPostsParams{
		Limit:  PostsPerPage,
		Offset: offset,
	})
	if err != nil {
		logAndInternalError(w, "failed to list posts", "error", err)
		return
	}

	td := render.TemplateData{
		Title: "Blog Posts",
		Data: PostsListData{
			Posts:      posts,
			Pagination: BuildPagination(page, int(total), PostsPerPage, RouteAdminPosts, r.URL.Query()),
		},
		User: middleware.GetUser(r),
	}

	if err := h.renderer.Render(w, r, "admin/posts", td); err != nil {
		logAndInternalError(w, "failed to render posts list", "error", err)
	}
}

// PostFormData holds data for the post create/edit template.
type PostFormData struct {
	Post   store.BlogPost
	Errors map[string]string
	IsNew  bool
}

// NewForm handles GET /admin/posts/new.
func (h *PostsHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	td := render.TemplateData{
		Title: "New Post",
		Data:  PostFormData{IsNew: true},
		User:  middleware.GetUser(r),
	}
	if err := h.renderer.Render(w, r, "admin/post_form", td); err != nil {
		logAndInternalError(w, "failed to render post form", "error", err)
	}
}

// EditForm handles GET /admin/posts/{id}.
func (h *PostsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminPosts, "Invalid post ID")
		return
	}

	post, ok := requireEntityWithRedirect(w, r, h.renderer, RouteAdminPosts, "post", id,
		func(id int64) (store.BlogPost, error) { return h.queries.GetBlogPostByID(r.Context(), id) })
	if !ok {
		return
	}

	td := render.TemplateData{
		Title: "Edit Post",
		Data:  PostFormData{Post: post},
		User:  middleware.GetUser(r),
	}
	if err := h.renderer.Render(w, r, "admin/post_form", td); err != nil {
		logAndInternalError(w, "failed to render post form", "error", err)
	}
}

// postInput gathers and validates the shared create/update form fields.
// excludeID skips the post itself during the slug uniqueness check.
func (h *PostsHandler) postInput(r *http.Request, excludeID int64) (store.CreateBlogPostParams, map[string]string) {
	errs := make(map[string]string)

	title := r.FormValue("title")
	if title == "" {
		errs["title"] = "Title is required"
	}

	slug := r.FormValue("slug")
	if slug == "" {
		slug = util.Slugify(title)
	}
	if slug == "" {
		errs["slug"] = "Slug is required"
	} else if !util.IsValidSlug(slug) {
		errs["slug"] = "Invalid slug format (use lowercase letters, numbers, and hyphens)"
	} else {
		exists, err := h.queries.BlogPostSlugExists(r.Context(), store.BlogPostSlugExistsParams{
			Slug:      slug,
			ExcludeID: excludeID,
		})
		if err != nil {
			slog.Error("database error checking slug", "error", err)
			errs["slug"] = "Error checking slug"
		} else if exists {
			errs["slug"] = "Slug already exists"
		}
	}

	content := r.FormValue("content")
	if content == "" {
		errs["content"] = "Content is required"
	}

	author := r.FormValue("author")
	if author == "" {
		if user := middleware.GetUser(r); user != nil {
			author = user.Username
		}
	}

	return store.CreateBlogPostParams{
		Title:     title,
		Slug:      slug,
		Content:   content,
		Excerpt:   r.FormValue("excerpt"),
		Author:    author,
		Published: r.FormValue("published") == "on" || r.FormValue("published") == "true",
		Tags:      r.FormValue("tags"),
	}, errs
}

// featuredImage stores an uploaded featured image, if one was provided.
func (h *PostsHandler) featuredImage(r *http.Request) string {
	file, header, err := r.FormFile("featured_image")
	if err != nil {
		return ""
	}
	defer func() { _ = file.Close() }()

	result, err := h.uploads.SaveImage(file, header, service.UploadKindBlog)
	if err != nil {
		slog.Error("failed to store featured image", "error", err)
		return ""
	}
	return result.Path
}

// Create handles POST /admin/posts/new.
func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(service.MaxUploadSize); err != nil {
		flashError(w, r, h.renderer, RouteAdminPosts+RouteSuffixNew, "Invalid form data")
		return
	}

	input, errs := h.postInput(r, 0)
	if len(errs) > 0 {
		h.renderFormErrors(w, r, "New Post", store.BlogPost{
			Title:   input.Title,
			Slug:    input.Slug,
			Content: input.Content,
			Excerpt: input.Excerpt,
			Author:  input.Author,
			Tags:    input.Tags,
		}, errs, true)
		return
	}

	input.FeaturedImage = h.featuredImage(r)

	post, err := h.queries.CreateBlogPost(r.Context(), input)
	if err != nil {
		logAndInternalError(w, "failed to create post", "error", err)
		return
	}

	slog.Info("post created", "post_id", post.ID, "slug", post.Slug)
	flashSuccess(w, r, h.renderer, RouteAdminPosts, "Post created")
}

// Update handles POST /admin/posts/{id}.
func (h *PostsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminPosts, "Invalid post ID")
		return
	}

	if err := r.ParseMultipartForm(service.MaxUploadSize); err != nil {
		flashError(w, r, h.renderer, RouteAdminPosts, "Invalid form data")
		return
	}

	existing, ok := requireEntityWithRedirect(w, r, h.renderer, RouteAdminPosts, "post", id,
		func(id int64) (store.BlogPost, error) { return h.queries.GetBlogPostByID(r.Context(), id) })
	if !ok {
		return
	}

	input, errs := h.postInput(r, id)
	if len(errs) > 0 {
		existing.Title = input.Title
		existing.Slug = input.Slug
		existing.Content = input.Content
		existing.Excerpt = input.Excerpt
		existing.Tags = input.Tags
		h.renderFormErrors(w, r, "Edit Post", existing, errs, false)
		return
	}

	featured := existing.FeaturedImage
	if path := h.featuredImage(r); path != "" {
		featured = path
	}

	if _, err := h.queries.UpdateBlogPost(r.Context(), store.UpdateBlogPostParams{
		ID:            id,
		Title:         input.Title,
		Slug:          input.Slug,
		Content:       input.Content,
		Excerpt:       input.Excerpt,
		Author:        input.Author,
		FeaturedImage: featured,
		Published:     input.Published,
		Tags:          input.Tags,
	}); err != nil {
		logAndInternalError(w, "failed to update post", "error", err, "post_id", id)
		return
	}

	flashSuccess(w, r, h.renderer, RouteAdminPosts, "Post updated")
}

// Delete handles POST /admin/posts/{id}/delete.
func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdminPosts, "Invalid post ID")
		return
	}

	if _, ok := requireEntityWithRedirect(w, r, h.renderer, RouteAdminPosts, "post", id,
		func(id int64) (store.BlogPost, error) { return h.queries.GetBlogPostByID(r.Context(), id) }); !ok {
		return
	}

	if err := h.queries.DeleteBlogPost(r.Context(), id); err != nil {
		logAndInternalError(w, "failed to delete post", "error", err, "post_id", id)
		return
	}

	flashSuccess(w, r, h.renderer, RouteAdminPosts, "Post deleted")
}

func (h *PostsHandler) renderFormErrors(w http.ResponseWriter, r *http.Request, title string, post store.BlogPost, errs map[string]string, isNew bool) {
	td := render.TemplateData{
		Title: title,
		Data:  PostFormData{Post: post, Errors: errs, IsNew: isNew},
		User:  middleware.GetUser(r),
	}
	if err := h.renderer.Render(w, r, "admin/post_form", td); err != nil {
		logAndInternalError(w, "failed to render post form", "error", err)
	}
}
