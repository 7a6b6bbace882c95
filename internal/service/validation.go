// Copyright (c) 2026 Quill Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/quillcms/quill/internal/model"
	"github.com/quillcms/quill/internal/util"
)

// validate is the shared validator instance. Field names in errors come from
// json tags so issue paths match the wire format.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// slug: 1-200 chars of [a-z0-9-]
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return util.IsValidSlug(fl.Field().String())
	})

	return v
}

// CreatePostInput is the payload for creating a post.
type CreatePostInput struct {
	Title   string                `json:"title" validate:"required,max=200"`
	Content util.Optional[string] `json:"content"`
	Slug    *string               `json:"slug" validate:"omitnil,min=1,max=200,slug"`
	Status  string                `json:"status" validate:"omitempty,oneof=draft published"`
}

// Validate checks the payload and returns every violated field in one pass.
func (in *CreatePostInput) Validate() *ValidationError {
	issues := collectIssues(validate.Struct(in))
	issues = append(issues, contentIssues(in.Content)...)
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// UpdatePostInput is the partial payload for updating a post. Pointer fields
// distinguish absent from present; Content additionally distinguishes
// explicit null (which clears the content).
type UpdatePostInput struct {
	Title   *string               `json:"title" validate:"omitnil,min=1,max=200"`
	Content util.Optional[string] `json:"content"`
	Slug    *string               `json:"slug" validate:"omitnil,min=1,max=200,slug"`
	Status  *string               `json:"status" validate:"omitnil,oneof=draft published"`
}

// IsEmpty reports whether no recognized field is present.
func (in *UpdatePostInput) IsEmpty() bool {
	return in.Title == nil && !in.Content.Set && in.Slug == nil && in.Status == nil
}

// Validate checks the payload; an empty patch is itself a validation failure.
func (in *UpdatePostInput) Validate() *ValidationError {
	if in.IsEmpty() {
		return &ValidationError{Issues: []FieldIssue{{
			Path:    "",
			Message: "At least one field must be provided to update",
			Code:    "empty",
		}}}
	}
	issues := collectIssues(validate.Struct(in))
	issues = append(issues, contentIssues(in.Content)...)
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// contentIssues validates the tri-state content field by hand since the
// validator library cannot look inside Optional values.
func contentIssues(content util.Optional[string]) []FieldIssue {
	if content.HasValue() && len(content.Value) > model.ContentMaxLen {
		return []FieldIssue{{
			Path:    "content",
			Message: fmt.Sprintf("Must be at most %d characters", model.ContentMaxLen),
			Code:    "max",
		}}
	}
	return nil
}

// collectIssues converts validator errors into ordered field issues.
func collectIssues(err error) []FieldIssue {
	if err == nil {
		return nil
	}
	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldIssue{{Path: "", Message: "Invalid payload", Code: "invalid"}}
	}

	issues := make([]FieldIssue, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		issues = append(issues, FieldIssue{
			Path:    fe.Field(),
			Message: fieldMessage(fe),
			Code:    fe.Tag(),
		})
	}
	return issues
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "oneof":
		return "Must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "slug":
		return "Must contain only lowercase letters, numbers, and hyphens"
	default:
		return "Invalid value"
	}
}

// List query bounds and defaults.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ListQuery is a validated, normalized list request.
type ListQuery struct {
	Page         int64
	PageSize     int64
	Search       string
	Status       string // "all", "draft" or "published"
	SortBy       string // "createdAt", "updatedAt", "publishedAt" or "title"
	SortDir      string // "asc" or "desc"
	IncludeTotal bool
}

var (
	listStatuses = map[string]bool{"all": true, model.PostStatusDraft: true, model.PostStatusPublished: true}
	listSortBys  = map[string]bool{"createdAt": true, "updatedAt": true, "publishedAt": true, "title": true}
	listSortDirs = map[string]bool{"asc": true, "desc": true}
)

// ParseListQuery validates raw query parameters against the list schema,
// applying defaults and collecting every violation.
func ParseListQuery(values url.Values) (ListQuery, *ValidationError) {
	q := ListQuery{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
		Status:   "all",
		SortBy:   "createdAt",
		SortDir:  "desc",
	}
	var issues []FieldIssue

	if raw := values.Get("page"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 1 {
			issues = append(issues, FieldIssue{Path: "page", Message: "Must be a positive integer", Code: "invalid"})
		} else {
			q.Page = n
		}
	}

	if raw := values.Get("pageSize"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		switch {
		case err != nil || n < 1:
			issues = append(issues, FieldIssue{Path: "pageSize", Message: "Must be a positive integer", Code: "invalid"})
		case n > MaxPageSize:
			issues = append(issues, FieldIssue{Path: "pageSize", Message: fmt.Sprintf("Must be at most %d", MaxPageSize), Code: "max"})
		default:
			q.PageSize = n
		}
	}

	if _, present := values["q"]; present {
		search := strings.TrimSpace(values.Get("q"))
		if search == "" {
			issues = append(issues, FieldIssue{Path: "q", Message: "Must be a non-empty search term", Code: "min"})
		} else {
			q.Search = search
		}
	}

	if raw := values.Get("status"); raw != "" {
		if !listStatuses[raw] {
			issues = append(issues, FieldIssue{Path: "status", Message: "Must be one of: all, draft, published", Code: "oneof"})
		} else {
			q.Status = raw
		}
	}

	if raw := values.Get("sortBy"); raw != "" {
		if !listSortBys[raw] {
			issues = append(issues, FieldIssue{Path: "sortBy", Message: "Must be one of: createdAt, updatedAt, publishedAt, title", Code: "oneof"})
		} else {
			q.SortBy = raw
		}
	}

	if raw := values.Get("sortDir"); raw != "" {
		if !listSortDirs[raw] {
			issues = append(issues, FieldIssue{Path: "sortDir", Message: "Must be one of: asc, desc", Code: "oneof"})
		} else {
			q.SortDir = raw
		}
	}

	if raw := values.Get("includeTotal"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			issues = append(issues, FieldIssue{Path: "includeTotal", Message: "Must be a boolean", Code: "invalid"})
		} else {
			q.IncludeTotal = b
		}
	}

	if len(issues) > 0 {
		return q, &ValidationError{Issues: issues}
	}
	return q, nil
}
