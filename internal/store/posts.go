// Copyright (c) 2026 Quill Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/quillcms/quill/internal/model"
)

// Queries provides typed access to the posts table.
type Queries struct {
	db *sql.DB
}

// New creates a new Queries instance.
func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

// IsUniqueViolation reports whether err is a SQLite unique constraint
// violation. The unique index on posts.slug is the final arbiter of slug
// uniqueness; callers translate this condition into a conflict error.
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// sortColumns maps API sort keys to their column names. Anything not listed
// here must never reach the query builder.
var sortColumns = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"publishedAt": "published_at",
	"title":       "title",
}

const postColumns = "id, title, slug, content, status, published_at, created_at, updated_at"

// CreatePostParams holds the values for a new post row.
type CreatePostParams struct {
	ID          string
	Title       string
	Slug        string
	Content     string
	Status      string
	PublishedAt model.NullTime
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreatePost inserts a new post and returns it.
func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) (model.Post, error) {
	row := q.db.QueryRowContext(ctx,
		`INSERT INTO posts (id, title, slug, content, status, published_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING `+postColumns,
		arg.ID, arg.Title, arg.Slug, arg.Content, arg.Status,
		arg.PublishedAt, arg.CreatedAt, arg.UpdatedAt,
	)
	return scanPost(row)
}

// GetPostByID fetches a post by its ID.
func (q *Queries) GetPostByID(ctx context.Context, id string) (model.Post, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = ?`, id)
	return scanPost(row)
}

// GetPostBySlug fetches a post by its slug regardless of status.
func (q *Queries) GetPostBySlug(ctx context.Context, slug string) (model.Post, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug)
	return scanPost(row)
}

// GetPublishedPostBySlug fetches a published post by its slug.
// Drafts are not resolvable through this query.
func (q *Queries) GetPublishedPostBySlug(ctx context.Context, slug string) (model.Post, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE slug = ? AND status = ?`,
		slug, model.PostStatusPublished)
	return scanPost(row)
}

// ListSlugsWithPrefix returns every slug that starts with the given prefix.
// Prefixes are always valid slugs, so no LIKE escaping is needed.
func (q *Queries) ListSlugsWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT slug FROM posts WHERE slug LIKE ? || '%'`, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		slugs = append(slugs, s)
	}
	return slugs, rows.Err()
}

// PostFilter holds the filtering options shared by ListPosts and CountPosts.
type PostFilter struct {
	// Status filters by exact status; empty means all statuses.
	Status string
	// Search is a case-insensitive substring matched against title or content.
	Search string
}

func (f PostFilter) whereClause() (string, []any) {
	var conds []string
	var args []any

	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}
	if f.Search != "" {
		conds = append(conds, `(lower(title) LIKE '%' || ? || '%' ESCAPE '\' OR lower(content) LIKE '%' || ? || '%' ESCAPE '\')`)
		needle := escapeLike(asciiLower(f.Search))
		args = append(args, needle, needle)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// likeEscaper backslash-escapes the LIKE metacharacters so search terms
// match literally instead of acting as wildcards.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// asciiLower lowercases ASCII letters only, mirroring SQLite's lower().
// Lowercasing non-ASCII runes in Go but not in SQL would make searches for
// uppercase non-ASCII terms miss their stored form.
func asciiLower(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}

// ListPostsParams holds filter, ordering and paging options for ListPosts.
type ListPostsParams struct {
	Filter  PostFilter
	SortBy  string // one of the sortColumns keys
	SortDir string // "asc" or "desc"
	Limit   int64
	Offset  int64
}

// ListPosts returns a page of posts matching the filter, in the requested order.
func (q *Queries) ListPosts(ctx context.Context, arg ListPostsParams) ([]model.Post, error) {
	column, ok := sortColumns[arg.SortBy]
	if !ok {
		column = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(arg.SortDir, "asc") {
		dir = "ASC"
	}

	where, args := arg.Filter.whereClause()
	query := fmt.Sprintf(`SELECT %s FROM posts%s ORDER BY %s %s LIMIT ? OFFSET ?`,
		postColumns, where, column, dir)
	args = append(args, arg.Limit, arg.Offset)

	return q.queryPosts(ctx, query, args...)
}

// CountPosts returns the number of posts matching the filter.
func (q *Queries) CountPosts(ctx context.Context, filter PostFilter) (int64, error) {
	where, args := filter.whereClause()
	var count int64
	err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts"+where, args...).Scan(&count)
	return count, err
}

// ListPublishedPosts returns a page of published posts for the public feed,
// newest publications first.
func (q *Queries) ListPublishedPosts(ctx context.Context, limit, offset int64) ([]model.Post, error) {
	return q.queryPosts(ctx,
		`SELECT `+postColumns+` FROM posts WHERE status = ?
		 ORDER BY published_at DESC, created_at DESC LIMIT ? OFFSET ?`,
		model.PostStatusPublished, limit, offset)
}

// CountPublishedPosts returns the number of published posts.
func (q *Queries) CountPublishedPosts(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM posts WHERE status = ?`, model.PostStatusPublished).Scan(&count)
	return count, err
}

// UpdatePostParams holds the full row state for an update; the service layer
// merges partial input into the existing row before calling UpdatePost.
type UpdatePostParams struct {
	ID          string
	Title       string
	Slug        string
	Content     string
	Status      string
	PublishedAt model.NullTime
	UpdatedAt   time.Time
}

// UpdatePost writes the full row state and returns the updated post.
// Returns sql.ErrNoRows if the post does not exist.
func (q *Queries) UpdatePost(ctx context.Context, arg UpdatePostParams) (model.Post, error) {
	row := q.db.QueryRowContext(ctx,
		`UPDATE posts
		 SET title = ?, slug = ?, content = ?, status = ?, published_at = ?, updated_at = ?
		 WHERE id = ?
		 RETURNING `+postColumns,
		arg.Title, arg.Slug, arg.Content, arg.Status, arg.PublishedAt, arg.UpdatedAt, arg.ID,
	)
	return scanPost(row)
}

// DeletePost removes a post by ID. Returns sql.ErrNoRows if nothing was deleted.
func (q *Queries) DeletePost(ctx context.Context, id string) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (q *Queries) queryPosts(ctx context.Context, query string, args ...any) ([]model.Post, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.Status,
			&p.PublishedAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (model.Post, error) {
	var p model.Post
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.Status,
		&p.PublishedAt, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
