// Copyright (c) 2026 Quill Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/quillcms/quill/internal/model"
	"github.com/quillcms/quill/internal/service"
)

func TestAdminListPosts(t *testing.T) {
	app := newTestApp(t)
	app.seedPost(t, "Visible Draft", model.PostStatusDraft)
	app.seedPost(t, "Visible Published", model.PostStatusPublished)

	rec := app.get(t, "/admin/posts")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Visible Draft") || !strings.Contains(body, "Visible Published") {
		t.Errorf("list body missing seeded posts")
	}
}

func TestAdminListStatusFilter(t *testing.T) {
	app := newTestApp(t)
	app.seedPost(t, "Draft Only", model.PostStatusDraft)
	app.seedPost(t, "Published Only", model.PostStatusPublished)

	rec := app.get(t, "/admin/posts?status=published")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "Draft Only") {
		t.Error("draft post shown with published filter")
	}
	if !strings.Contains(body, "Published Only") {
		t.Error("published post missing with published filter")
	}
}

func TestAdminCreatePost(t *testing.T) {
	app := newTestApp(t)

	rec := app.postForm(t, "/admin/posts", url.Values{
		"title":   {"Form Created"},
		"content": {"Body text"},
		"status":  {model.PostStatusDraft},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303 (body: %s)", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/posts" {
		t.Errorf("Location = %q, want /admin/posts", loc)
	}

	post, err := app.posts.GetPublishedBySlug(context.Background(), "form-created")
	if !errors.Is(err, service.ErrNotFound) {
		t.Errorf("draft resolvable by public slug lookup: %v, %v", post, err)
	}
}

func TestAdminCreatePostValidationRerender(t *testing.T) {
	app := newTestApp(t)

	rec := app.postForm(t, "/admin/posts", url.Values{
		"title":   {""},
		"content": {"kept content"},
		"status":  {model.PostStatusDraft},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 re-render", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "field-error") {
		t.Error("form re-render missing inline error")
	}
	if !strings.Contains(body, "kept content") {
		t.Error("form re-render lost submitted content")
	}
}

func TestAdminUpdatePost(t *testing.T) {
	app := newTestApp(t)
	post := app.seedPost(t, "Before Edit", model.PostStatusDraft)

	rec := app.postForm(t, "/admin/posts/"+post.ID, url.Values{
		"title":   {"After Edit"},
		"slug":    {post.Slug},
		"content": {"updated"},
		"status":  {model.PostStatusPublished},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}

	updated, err := app.posts.Get(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if updated.Title != "After Edit" || updated.Status != model.PostStatusPublished {
		t.Errorf("post = %+v, want edited and published", updated)
	}
	if updated.Slug != post.Slug {
		t.Errorf("Slug = %q, changed on resubmit of same slug", updated.Slug)
	}
}

func TestAdminDeleteBestEffort(t *testing.T) {
	app := newTestApp(t)
	post := app.seedPost(t, "Delete Me", model.PostStatusDraft)

	rec := app.postForm(t, "/admin/posts/"+post.ID+"/delete", url.Values{})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}

	// Deleting again still redirects as success.
	rec = app.postForm(t, "/admin/posts/"+post.ID+"/delete", url.Values{})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("second delete status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/posts" {
		t.Errorf("Location = %q, want /admin/posts", loc)
	}
}

func TestAdminPublishUnpublish(t *testing.T) {
	app := newTestApp(t)
	post := app.seedPost(t, "Toggle Me", model.PostStatusDraft)

	rec := app.postForm(t, "/admin/posts/"+post.ID+"/publish", url.Values{})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("publish status = %d, want 303", rec.Code)
	}

	published, err := app.posts.Get(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !published.IsPublished() || !published.PublishedAt.Valid {
		t.Errorf("post = %+v, want published with timestamp", published)
	}

	rec = app.postForm(t, "/admin/posts/"+post.ID+"/unpublish", url.Values{})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("unpublish status = %d, want 303", rec.Code)
	}

	draft, err := app.posts.Get(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if draft.IsPublished() || draft.PublishedAt.Valid {
		t.Errorf("post = %+v, want draft with cleared timestamp", draft)
	}
}

func TestAdminEditFormNotFoundRedirects(t *testing.T) {
	app := newTestApp(t)

	rec := app.get(t, "/admin/posts/missing-id")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303 redirect", rec.Code)
	}
}
