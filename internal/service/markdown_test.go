// Copyright (c) 2026 Quill Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	html, err := RenderMarkdown("# Heading\n\nSome **bold** text.")
	if err != nil {
		t.Fatalf("RenderMarkdown() error = %v", err)
	}
	out := string(html)
	if !strings.Contains(out, "<h1") || !strings.Contains(out, "<strong>bold</strong>") {
		t.Errorf("output = %q, want heading and bold markup", out)
	}
}

func TestRenderMarkdownStripsScripts(t *testing.T) {
	html, err := RenderMarkdown("Hello <script>alert(1)</script> world")
	if err != nil {
		t.Fatalf("RenderMarkdown() error = %v", err)
	}
	if strings.Contains(string(html), "<script") {
		t.Errorf("output = %q, script tag not stripped", html)
	}
}

func TestRenderMarkdownTables(t *testing.T) {
	html, err := RenderMarkdown("| a | b |\n|---|---|\n| 1 | 2 |")
	if err != nil {
		t.Fatalf("RenderMarkdown() error = %v", err)
	}
	if !strings.Contains(string(html), "<table") {
		t.Errorf("output = %q, want GFM table markup", html)
	}
}
