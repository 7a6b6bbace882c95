// Copyright (c) 2026 Quill Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quillcms/quill/internal/model"
	"github.com/quillcms/quill/internal/service"
)

// postEnvelope wraps a single post for API responses.
type postEnvelope struct {
	Post model.Post `json:"post"`
}

// listEnvelope wraps a page of posts. Meta is present only when totals were
// requested; items is always an array, never null.
type listEnvelope struct {
	Items []model.Post      `json:"items"`
	Meta  *service.ListMeta `json:"meta,omitempty"`
}

// CreatePost handles POST /api/v1/posts.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var input service.CreatePostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		WriteValidationError(w, "Invalid payload", nil)
		return
	}

	post, err := h.posts.Create(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, "Invalid payload", err)
		return
	}
	WriteJSON(w, http.StatusCreated, postEnvelope{Post: post})
}

// ListPosts handles GET /api/v1/posts.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	query, verr := service.ParseListQuery(r.URL.Query())
	if verr != nil {
		WriteValidationError(w, "Invalid query parameters", verr.Issues)
		return
	}

	result, err := h.posts.List(r.Context(), query)
	if err != nil {
		writeServiceError(w, r, "Invalid query parameters", err)
		return
	}

	items := result.Items
	if items == nil {
		items = []model.Post{}
	}
	WriteJSON(w, http.StatusOK, listEnvelope{Items: items, Meta: result.Meta})
}

// GetPost handles GET /api/v1/posts/{id}.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, "Invalid payload", err)
		return
	}
	WriteJSON(w, http.StatusOK, postEnvelope{Post: post})
}

// UpdatePost handles PATCH /api/v1/posts/{id}.
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	var input service.UpdatePostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		WriteValidationError(w, "Invalid payload", nil)
		return
	}

	post, err := h.posts.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeServiceError(w, r, "Invalid payload", err)
		return
	}
	WriteJSON(w, http.StatusOK, postEnvelope{Post: post})
}

// DeletePost handles DELETE /api/v1/posts/{id}. Deletion through the API is
// strict: a missing post is a 404, not a silent success.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.posts.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, "Invalid payload", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetPostBySlug handles GET /api/v1/posts/slug/{slug}. Only published posts
// resolve; drafts 404.
func (h *Handler) GetPostBySlug(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.GetPublishedBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeServiceError(w, r, "Invalid payload", err)
		return
	}
	WriteJSON(w, http.StatusOK, postEnvelope{Post: post})
}

// Routes mounts the post endpoints on a fresh router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/status", h.Status)
	r.Route("/posts", func(r chi.Router) {
		r.Post("/", h.CreatePost)
		r.Get("/", h.ListPosts)
		r.Get("/slug/{slug}", h.GetPostBySlug)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetPost)
			r.Patch("/", h.UpdatePost)
			r.Delete("/", h.DeletePost)
		})
	})
	return r
}
