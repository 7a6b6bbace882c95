// Copyright (c) 2026 Quill Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service implements the post lifecycle: validation, slug
// resolution, status transitions and the list/feed read paths.
package service

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a referenced post does not exist.
var ErrNotFound = errors.New("post not found")

// ErrConflict is returned when a write is rejected because it would violate
// slug uniqueness. This is only detected at persistence time; see
// Slugify/resolveSlug for the best-effort pre-check.
var ErrConflict = errors.New("slug already exists")

// FieldIssue describes a single violated validation rule.
type FieldIssue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ValidationError carries every field issue found in one validation pass.
type ValidationError struct {
	Issues []FieldIssue
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation failed"
	}
	paths := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		p := issue.Path
		if p == "" {
			p = "(payload)"
		}
		paths = append(paths, p)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(paths, ", "))
}

// FieldMap flattens the issues into a path-to-message map for form rendering.
// Later issues for the same path win; in practice each path appears once.
func (e *ValidationError) FieldMap() map[string]string {
	m := make(map[string]string, len(e.Issues))
	for _, issue := range e.Issues {
		m[issue.Path] = issue.Message
	}
	return m
}
