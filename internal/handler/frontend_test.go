// Copyright (c) 2026 Quill Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/quillcms/quill/internal/model"
	"github.com/quillcms/quill/internal/service"
	"github.com/quillcms/quill/internal/util"
)

func TestHomeShowsOnlyPublished(t *testing.T) {
	app := newTestApp(t)
	app.seedPost(t, "Hidden Draft", model.PostStatusDraft)
	app.seedPost(t, "Front Page", model.PostStatusPublished)

	rec := app.get(t, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "Hidden Draft") {
		t.Error("draft shown on public feed")
	}
	if !strings.Contains(body, "Front Page") {
		t.Error("published post missing from feed")
	}
}

func TestPublicPostRendersMarkdown(t *testing.T) {
	app := newTestApp(t)

	_, err := app.posts.Create(context.Background(), service.CreatePostInput{
		Title:   "Markdown Post",
		Status:  model.PostStatusPublished,
		Content: util.Optional[string]{Set: true, Value: "Some **bold** text."},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	rec := app.get(t, "/posts/markdown-post")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<strong>bold</strong>") {
		t.Error("markdown not rendered to HTML")
	}
}

func TestPublicPostDraftNotFound(t *testing.T) {
	app := newTestApp(t)
	app.seedPost(t, "Still Secret", model.PostStatusDraft)

	rec := app.get(t, "/posts/still-secret")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
