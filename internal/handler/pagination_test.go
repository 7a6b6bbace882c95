// Copyright (c) 2026 Quill Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/url"
	"testing"
)

func TestBuildPagination(t *testing.T) {
	p := BuildPagination(2, 25, 10, "/admin/posts", nil)

	if p.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", p.TotalPages)
	}
	if !p.HasPrev || !p.HasNext {
		t.Errorf("HasPrev = %v, HasNext = %v; want both true", p.HasPrev, p.HasNext)
	}
	if p.PrevPage != 1 || p.NextPage != 3 {
		t.Errorf("PrevPage = %d, NextPage = %d", p.PrevPage, p.NextPage)
	}
	if len(p.Pages) != 3 {
		t.Errorf("len(Pages) = %d, want 3", len(p.Pages))
	}
}

func TestBuildPaginationEmptyResult(t *testing.T) {
	p := BuildPagination(1, 0, 10, "/admin/posts", nil)

	if p.TotalPages != 1 {
		t.Errorf("TotalPages = %d, want minimum 1", p.TotalPages)
	}
	if p.HasPrev || p.HasNext {
		t.Error("empty result should have no prev/next")
	}
}

func TestBuildPaginationPreservesQuery(t *testing.T) {
	params := url.Values{"status": {"published"}, "page": {"5"}}
	p := BuildPagination(1, 50, 10, "/admin/posts", params)

	if p.QueryString != "status=published" {
		t.Errorf("QueryString = %q, want page stripped", p.QueryString)
	}
	if len(p.Pages) == 0 || p.Pages[1].URL != "/admin/posts?status=published&page=2" {
		t.Errorf("page URL = %q", p.Pages[1].URL)
	}
}

func TestBuildPaginationEllipsis(t *testing.T) {
	p := BuildPagination(10, 200, 10, "/admin/posts", nil)

	hasEllipsis := false
	for _, page := range p.Pages {
		if page.IsEllipsis {
			hasEllipsis = true
		}
	}
	if !hasEllipsis {
		t.Error("expected ellipsis for 20-page window")
	}
	if p.Pages[0].Number != 1 {
		t.Errorf("first link = %d, want 1", p.Pages[0].Number)
	}
	if last := p.Pages[len(p.Pages)-1]; last.Number != 20 {
		t.Errorf("last link = %d, want 20", last.Number)
	}
}
