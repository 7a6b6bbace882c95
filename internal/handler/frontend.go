// Copyright (c) 2026 Quill Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/quillcms/quill/internal/model"
	"github.com/quillcms/quill/internal/render"
	"github.com/quillcms/quill/internal/service"
)

// FeedPerPage is the number of posts shown per public feed page.
const FeedPerPage = 10

// FrontendHandler serves the public blog pages.
type FrontendHandler struct {
	posts    *service.PostService
	renderer *render.Renderer
}

// NewFrontendHandler creates a new FrontendHandler.
func NewFrontendHandler(db *sql.DB, renderer *render.Renderer) *FrontendHandler {
	return &FrontendHandler{
		posts:    service.NewPostService(db),
		renderer: renderer,
	}
}

// HomeData holds data for the public feed template.
type HomeData struct {
	Posts      []model.Post
	Pagination Pagination
}

// Home handles GET / with the published post feed, newest first.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	page := 1
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}

	posts, total, err := h.posts.PublicFeed(r.Context(), int64(page), FeedPerPage)
	if err != nil {
		logAndInternalError(w, "failed to load feed", "error", err)
		return
	}

	data := HomeData{
		Posts:      posts,
		Pagination: BuildPagination(page, total, FeedPerPage, "/", nil),
	}

	if err := h.renderer.Render(w, r, "public/home", render.TemplateData{
		Title: "Blog",
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// PostData holds data for the public post detail template.
type PostData struct {
	Post    model.Post
	Content template.HTML
}

// Post handles GET /posts/{slug}. Only published posts resolve.
func (h *FrontendHandler) Post(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.posts.GetPublishedBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		logAndInternalError(w, "failed to get post", "error", err, "slug", slug)
		return
	}

	content, err := service.RenderMarkdown(post.Content)
	if err != nil {
		logAndInternalError(w, "failed to render post content", "error", err, "slug", slug)
		return
	}

	if err := h.renderer.Render(w, r, "public/post", render.TemplateData{
		Title: post.Title,
		Data:  PostData{Post: post, Content: content},
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// Routes mounts the public routes on a fresh router.
func (h *FrontendHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Home)
	r.Get("/posts/{slug}", h.Post)
	return r
}
