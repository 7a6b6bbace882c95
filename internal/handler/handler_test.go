// Copyright (c) 2026 Quill Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/quillcms/quill/internal/model"
	"github.com/quillcms/quill/internal/render"
	"github.com/quillcms/quill/internal/service"
	"github.com/quillcms/quill/internal/session"
	"github.com/quillcms/quill/internal/testutil"
	"github.com/quillcms/quill/web"
)

// testApp wires the HTML handlers the way main does, minus the security
// middleware.
type testApp struct {
	db     *sql.DB
	router chi.Router
	posts  *service.PostService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.TestDB(t)
	sm := session.New(db, true)

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		t.Fatalf("sub templates fs: %v", err)
	}

	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sm,
	})
	if err != nil {
		t.Fatalf("creating renderer: %v", err)
	}

	postsHandler := NewPostsHandler(db, renderer, sm)
	frontend := NewFrontendHandler(db, renderer)

	r := chi.NewRouter()
	r.Use(sm.LoadAndSave)
	r.Mount("/admin/posts", postsHandler.Routes())
	r.Mount("/", frontend.Routes())

	return &testApp{
		db:     db,
		router: r,
		posts:  service.NewPostService(db),
	}
}

func (a *testApp) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func (a *testApp) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// seedPost creates a post directly through the service.
func (a *testApp) seedPost(t *testing.T, title, status string) model.Post {
	t.Helper()
	post, err := a.posts.Create(context.Background(), service.CreatePostInput{
		Title:  title,
		Status: status,
	})
	if err != nil {
		t.Fatalf("seeding post: %v", err)
	}
	return post
}
