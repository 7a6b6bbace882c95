// Copyright (c) 2026 Quill Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quillcms/quill/internal/model"
	"github.com/quillcms/quill/internal/store"
	"github.com/quillcms/quill/internal/util"
)

// PostService orchestrates validation, slug resolution, status transitions
// and persistence for posts.
type PostService struct {
	queries *store.Queries
}

// NewPostService creates a new PostService.
func NewPostService(db *sql.DB) *PostService {
	return &PostService{queries: store.New(db)}
}

// resolveSlug finds a slug that does not collide with any existing slug
// sharing the same base: the base itself if free, otherwise base-2, base-3
// and so on. excludeSlug is the caller's own current slug, which never counts
// as a collision.
//
// This is a read-then-decide check, not an atomic one; a concurrent creation
// can still take the chosen slug first. The unique index on posts.slug is the
// final arbiter and such a loss surfaces as ErrConflict at write time.
func (s *PostService) resolveSlug(ctx context.Context, base, excludeSlug string) (string, error) {
	// A shorter listing prefix still covers suffixed candidates whose base
	// had to be trimmed to stay within the length limit.
	listPrefix := base
	if len(listPrefix) > util.SlugMaxLen-slugSuffixHeadroom {
		listPrefix = listPrefix[:util.SlugMaxLen-slugSuffixHeadroom]
	}
	existing, err := s.queries.ListSlugsWithPrefix(ctx, listPrefix)
	if err != nil {
		return "", fmt.Errorf("listing slugs with prefix %q: %w", listPrefix, err)
	}

	taken := make(map[string]bool, len(existing))
	for _, slug := range existing {
		if slug != excludeSlug {
			taken[slug] = true
		}
	}

	if !taken[base] {
		return base, nil
	}
	for n := 2; ; n++ {
		candidate := suffixedSlug(base, n)
		if !taken[candidate] {
			return candidate, nil
		}
	}
}

// slugSuffixHeadroom is the listing-prefix margin reserved for a "-N"
// collision suffix, enough for suffixes up to "-999".
const slugSuffixHeadroom = 4

// suffixedSlug appends "-n" to base, trimming base first when the result
// would exceed the slug length limit.
func suffixedSlug(base string, n int) string {
	suffix := fmt.Sprintf("-%d", n)
	if len(base)+len(suffix) > util.SlugMaxLen {
		base = strings.TrimRight(base[:util.SlugMaxLen-len(suffix)], "-")
	}
	return base + suffix
}

// Create validates the input, derives a free slug and persists a new post.
// Returns *ValidationError on schema violations and ErrConflict if the
// persistence layer rejects a duplicate slug despite resolution.
func (s *PostService) Create(ctx context.Context, input CreatePostInput) (model.Post, error) {
	if verr := input.Validate(); verr != nil {
		return model.Post{}, verr
	}

	base := util.Slugify(input.Title)
	if input.Slug != nil {
		base = *input.Slug
	}
	slug, err := s.resolveSlug(ctx, base, "")
	if err != nil {
		return model.Post{}, err
	}

	status := input.Status
	if status == "" {
		status = model.PostStatusDraft
	}

	now := time.Now()
	var publishedAt model.NullTime
	if status == model.PostStatusPublished {
		publishedAt = model.NewNullTime(now)
	}

	var content string
	if input.Content.HasValue() {
		content = input.Content.Value
	}

	post, err := s.queries.CreatePost(ctx, store.CreatePostParams{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Slug:        slug,
		Content:     content,
		Status:      status,
		PublishedAt: publishedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			return model.Post{}, ErrConflict
		}
		return model.Post{}, fmt.Errorf("creating post: %w", err)
	}
	return post, nil
}

// Get fetches a post by ID.
func (s *PostService) Get(ctx context.Context, id string) (model.Post, error) {
	post, err := s.queries.GetPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Post{}, ErrNotFound
		}
		return model.Post{}, fmt.Errorf("getting post %s: %w", id, err)
	}
	return post, nil
}

// Update validates the partial input, merges it into the existing post,
// re-resolves the slug when it changes and applies the publish state machine:
// draft->published stamps publishedAt, published->draft clears it, and
// self-transitions leave it untouched.
func (s *PostService) Update(ctx context.Context, id string, input UpdatePostInput) (model.Post, error) {
	if verr := input.Validate(); verr != nil {
		return model.Post{}, verr
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return model.Post{}, err
	}

	params := store.UpdatePostParams{
		ID:          existing.ID,
		Title:       existing.Title,
		Slug:        existing.Slug,
		Content:     existing.Content,
		Status:      existing.Status,
		PublishedAt: existing.PublishedAt,
		UpdatedAt:   time.Now(),
	}

	if input.Title != nil {
		params.Title = *input.Title
	}
	if input.Content.Set {
		if input.Content.Null {
			params.Content = ""
		} else {
			params.Content = input.Content.Value
		}
	}
	if input.Slug != nil && *input.Slug != existing.Slug {
		resolved, err := s.resolveSlug(ctx, *input.Slug, existing.Slug)
		if err != nil {
			return model.Post{}, err
		}
		params.Slug = resolved
	}
	if input.Status != nil {
		next := *input.Status
		switch {
		case existing.Status != model.PostStatusPublished && next == model.PostStatusPublished:
			params.PublishedAt = model.NewNullTime(params.UpdatedAt)
		case existing.Status == model.PostStatusPublished && next == model.PostStatusDraft:
			params.PublishedAt = model.NullTime{}
		}
		params.Status = next
	}

	post, err := s.queries.UpdatePost(ctx, params)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return model.Post{}, ErrNotFound
		case store.IsUniqueViolation(err):
			return model.Post{}, ErrConflict
		}
		return model.Post{}, fmt.Errorf("updating post %s: %w", id, err)
	}
	return post, nil
}

// SetStatus is a convenience wrapper equivalent to Update with only status
// set. It is idempotent: if the post is already in the target state nothing
// changes, not even the timestamps.
func (s *PostService) SetStatus(ctx context.Context, id, target string) (model.Post, error) {
	if !model.IsValidStatus(target) {
		return model.Post{}, &ValidationError{Issues: []FieldIssue{{
			Path:    "status",
			Message: "Must be one of: draft, published",
			Code:    "oneof",
		}}}
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return model.Post{}, err
	}
	if existing.Status == target {
		return existing, nil
	}

	return s.Update(ctx, id, UpdatePostInput{Status: &target})
}

// Delete removes a post. Returns ErrNotFound if it does not exist; callers
// with best-effort semantics (the admin action path) ignore that error.
func (s *PostService) Delete(ctx context.Context, id string) error {
	if err := s.queries.DeletePost(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("deleting post %s: %w", id, err)
	}
	return nil
}

// ListMeta describes the full result set of a list request.
type ListMeta struct {
	Page       int64 `json:"page"`
	PageSize   int64 `json:"pageSize"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int64 `json:"totalPages"`
}

// ListResult is a page of posts plus, when requested, total-count metadata.
type ListResult struct {
	Items []model.Post
	Meta  *ListMeta
}

// List returns a bounded, deterministic page of posts for the query. When
// the query asks for totals, the count runs concurrently with the item fetch
// since the two reads are independent.
func (s *PostService) List(ctx context.Context, q ListQuery) (ListResult, error) {
	filter := store.PostFilter{Search: q.Search}
	if q.Status != "" && q.Status != "all" {
		filter.Status = q.Status
	}

	type countResult struct {
		total int64
		err   error
	}
	var countCh chan countResult
	if q.IncludeTotal {
		countCh = make(chan countResult, 1)
		go func() {
			total, err := s.queries.CountPosts(ctx, filter)
			countCh <- countResult{total: total, err: err}
		}()
	}

	items, err := s.queries.ListPosts(ctx, store.ListPostsParams{
		Filter:  filter,
		SortBy:  q.SortBy,
		SortDir: q.SortDir,
		Limit:   q.PageSize,
		Offset:  (q.Page - 1) * q.PageSize,
	})
	if err != nil {
		if countCh != nil {
			<-countCh
		}
		return ListResult{}, fmt.Errorf("listing posts: %w", err)
	}

	result := ListResult{Items: items}
	if countCh != nil {
		count := <-countCh
		if count.err != nil {
			return ListResult{}, fmt.Errorf("counting posts: %w", count.err)
		}
		result.Meta = &ListMeta{
			Page:       q.Page,
			PageSize:   q.PageSize,
			TotalItems: count.total,
			TotalPages: totalPages(count.total, q.PageSize),
		}
	}
	return result, nil
}

// PublicFeed returns a page of published posts, newest publications first,
// along with the total published count for pagination.
func (s *PostService) PublicFeed(ctx context.Context, page, pageSize int64) ([]model.Post, int64, error) {
	if page < 1 {
		page = 1
	}
	items, err := s.queries.ListPublishedPosts(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("listing published posts: %w", err)
	}
	total, err := s.queries.CountPublishedPosts(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("counting published posts: %w", err)
	}
	return items, total, nil
}

// GetPublishedBySlug resolves a single published post for the public detail
// view. Drafts are never resolvable by slug.
func (s *PostService) GetPublishedBySlug(ctx context.Context, slug string) (model.Post, error) {
	post, err := s.queries.GetPublishedPostBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Post{}, ErrNotFound
		}
		return model.Post{}, fmt.Errorf("getting post by slug %q: %w", slug, err)
	}
	return post, nil
}

// totalPages computes ceil(total/pageSize) with a minimum of 1.
func totalPages(total, pageSize int64) int64 {
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}
