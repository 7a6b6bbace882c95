// Copyright (c) 2026 Quill Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the HTML handlers for the admin and public pages.
package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/quillcms/quill/internal/model"
	"github.com/quillcms/quill/internal/render"
	"github.com/quillcms/quill/internal/service"
	"github.com/quillcms/quill/internal/util"
)

// PostsPerPage is the number of posts shown per admin list page.
const PostsPerPage = 10

const redirectAdminPosts = "/admin/posts"

// PostsHandler handles the admin post management routes.
type PostsHandler struct {
	posts          *service.PostService
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
}

// NewPostsHandler creates a new PostsHandler.
func NewPostsHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager) *PostsHandler {
	return &PostsHandler{
		posts:          service.NewPostService(db),
		renderer:       renderer,
		sessionManager: sm,
	}
}

// PostsListData holds data for the posts list template.
type PostsListData struct {
	Posts        []model.Post
	Pagination   Pagination
	StatusFilter string
	Search       string
	Statuses     []string
}

// List handles GET /admin/posts.
func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	page := 1
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}

	statusFilter := r.URL.Query().Get("status")
	if statusFilter != "" && statusFilter != "all" && !model.IsValidStatus(statusFilter) {
		statusFilter = ""
	}
	search := strings.TrimSpace(r.URL.Query().Get("q"))

	result, err := h.posts.List(r.Context(), service.ListQuery{
		Page:         int64(page),
		PageSize:     PostsPerPage,
		Status:       statusFilter,
		Search:       search,
		SortBy:       "createdAt",
		SortDir:      "desc",
		IncludeTotal: true,
	})
	if err != nil {
		logAndInternalError(w, "failed to list posts", "error", err)
		return
	}

	data := PostsListData{
		Posts:        result.Items,
		Pagination:   BuildPagination(page, result.Meta.TotalItems, PostsPerPage, redirectAdminPosts, r.URL.Query()),
		StatusFilter: statusFilter,
		Search:       search,
		Statuses:     model.ValidPostStatuses,
	}

	if err := h.renderer.Render(w, r, "admin/posts_list", render.TemplateData{
		Title: "Posts",
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// PostFormData holds data for the post form template.
type PostFormData struct {
	Post       *model.Post
	Statuses   []string
	FormValues map[string]string
	IsEdit     bool
}

// NewForm handles GET /admin/posts/new.
func (h *PostsHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	data := PostFormData{
		Statuses:   model.ValidPostStatuses,
		FormValues: make(map[string]string),
	}

	if err := h.renderer.Render(w, r, "admin/posts_form", render.TemplateData{
		Title: "New Post",
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// Create handles POST /admin/posts.
func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.renderer, redirectAdminPosts+"/new", "Invalid form data")
		return
	}

	input, formValues := createInputFromForm(r)

	post, err := h.posts.Create(r.Context(), input)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			h.renderForm(w, r, "New Post", PostFormData{
				Statuses:   model.ValidPostStatuses,
				FormValues: formValues,
			}, verr.FieldMap())
		case errors.Is(err, service.ErrConflict):
			flashError(w, r, h.renderer, redirectAdminPosts+"/new", "Slug already exists")
		default:
			slog.Error("failed to create post", "error", err)
			flashError(w, r, h.renderer, redirectAdminPosts+"/new", "Error creating post")
		}
		return
	}

	slog.Info("post created", "post_id", post.ID, "slug", post.Slug)
	flashSuccess(w, r, h.renderer, redirectAdminPosts, "Post created successfully")
}

// EditForm handles GET /admin/posts/{id}.
func (h *PostsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	post, ok := h.requirePost(w, r)
	if !ok {
		return
	}

	data := PostFormData{
		Post:       &post,
		Statuses:   model.ValidPostStatuses,
		FormValues: formValuesFromPost(post),
		IsEdit:     true,
	}

	if err := h.renderer.Render(w, r, "admin/posts_form", render.TemplateData{
		Title: "Edit Post",
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// Update handles POST /admin/posts/{id}.
func (h *PostsHandler) Update(w http.ResponseWriter, r *http.Request) {
	post, ok := h.requirePost(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.renderer, redirectAdminPosts, "Invalid form data")
		return
	}

	input, formValues := updateInputFromForm(r)

	updated, err := h.posts.Update(r.Context(), post.ID, input)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			h.renderForm(w, r, "Edit Post", PostFormData{
				Post:       &post,
				Statuses:   model.ValidPostStatuses,
				FormValues: formValues,
				IsEdit:     true,
			}, verr.FieldMap())
		case errors.Is(err, service.ErrConflict):
			flashError(w, r, h.renderer, redirectAdminPosts, "Slug already exists")
		default:
			slog.Error("failed to update post", "error", err, "post_id", post.ID)
			flashError(w, r, h.renderer, redirectAdminPosts, "Error updating post")
		}
		return
	}

	slog.Info("post updated", "post_id", updated.ID, "slug", updated.Slug)
	flashSuccess(w, r, h.renderer, redirectAdminPosts, "Post updated successfully")
}

// Delete handles POST /admin/posts/{id}/delete. Deletion here is
// best-effort: a post already gone still reads as success.
func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.posts.Delete(r.Context(), id); err != nil && !errors.Is(err, service.ErrNotFound) {
		slog.Error("failed to delete post", "error", err, "post_id", id)
		flashError(w, r, h.renderer, redirectAdminPosts, "Error deleting post")
		return
	}

	slog.Info("post deleted", "post_id", id)
	flashSuccess(w, r, h.renderer, redirectAdminPosts, "Post deleted successfully")
}

// TogglePublish handles POST /admin/posts/{id}/publish and /unpublish.
func (h *PostsHandler) TogglePublish(target string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		post, err := h.posts.SetStatus(r.Context(), id, target)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				flashError(w, r, h.renderer, redirectAdminPosts, "Post not found")
			} else {
				slog.Error("failed to change post status", "error", err, "post_id", id)
				flashError(w, r, h.renderer, redirectAdminPosts, "Error changing post status")
			}
			return
		}

		message := "Post unpublished"
		if post.IsPublished() {
			message = "Post published"
		}
		flashSuccess(w, r, h.renderer, redirectAdminPosts, message)
	}
}

// Routes mounts the admin post routes on a fresh router.
func (h *PostsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/new", h.NewForm)
	r.Post("/", h.Create)
	r.Get("/{id}", h.EditForm)
	r.Post("/{id}", h.Update)
	r.Post("/{id}/delete", h.Delete)
	r.Post("/{id}/publish", h.TogglePublish(model.PostStatusPublished))
	r.Post("/{id}/unpublish", h.TogglePublish(model.PostStatusDraft))
	return r
}

// requirePost loads the post addressed by the URL or redirects with a flash.
func (h *PostsHandler) requirePost(w http.ResponseWriter, r *http.Request) (model.Post, bool) {
	id := chi.URLParam(r, "id")

	post, err := h.posts.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			flashError(w, r, h.renderer, redirectAdminPosts, "Post not found")
		} else {
			slog.Error("failed to get post", "error", err, "post_id", id)
			flashError(w, r, h.renderer, redirectAdminPosts, "Error loading post")
		}
		return model.Post{}, false
	}
	return post, true
}

// renderForm re-renders the post form with inline field errors.
func (h *PostsHandler) renderForm(w http.ResponseWriter, r *http.Request, title string, data PostFormData, fieldErrors map[string]string) {
	if err := h.renderer.Render(w, r, "admin/posts_form", render.TemplateData{
		Title:  title,
		Data:   data,
		Errors: fieldErrors,
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// formValuesFromPost seeds the edit form with a post's current values.
func formValuesFromPost(post model.Post) map[string]string {
	return map[string]string{
		"title":   post.Title,
		"slug":    post.Slug,
		"content": post.Content,
		"status":  post.Status,
	}
}

// createInputFromForm builds a create input from submitted form values.
func createInputFromForm(r *http.Request) (service.CreatePostInput, map[string]string) {
	title := strings.TrimSpace(r.FormValue("title"))
	slug := strings.TrimSpace(r.FormValue("slug"))
	content := r.FormValue("content")
	status := r.FormValue("status")

	input := service.CreatePostInput{
		Title:   title,
		Content: util.Optional[string]{Set: true, Value: content},
		Status:  status,
	}
	if slug != "" {
		input.Slug = &slug
	}

	return input, map[string]string{
		"title":   title,
		"slug":    slug,
		"content": content,
		"status":  status,
	}
}

// updateInputFromForm builds a full-field update input from submitted form
// values. The form always posts every field, so nothing stays unset.
func updateInputFromForm(r *http.Request) (service.UpdatePostInput, map[string]string) {
	title := strings.TrimSpace(r.FormValue("title"))
	slug := strings.TrimSpace(r.FormValue("slug"))
	content := r.FormValue("content")
	status := r.FormValue("status")

	input := service.UpdatePostInput{
		Title:   &title,
		Content: util.Optional[string]{Set: true, Value: content},
		Status:  &status,
	}
	if slug != "" {
		input.Slug = &slug
	}

	return input, map[string]string{
		"title":   title,
		"slug":    slug,
		"content": content,
		"status":  status,
	}
}
