// Copyright (c) 2026 Quill Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"time"
)

// Post statuses
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// ValidPostStatuses contains all valid post statuses.
var ValidPostStatuses = []string{PostStatusDraft, PostStatusPublished}

// Field length limits enforced by validation and the schema.
const (
	TitleMaxLen   = 200
	SlugMaxLen    = 200
	ContentMaxLen = 50000
)

// NullTime is a nullable timestamp that scans like sql.NullTime but
// marshals as an RFC 3339 string or JSON null.
type NullTime struct {
	sql.NullTime
}

// NewNullTime returns a valid NullTime for t.
func NewNullTime(t time.Time) NullTime {
	return NullTime{sql.NullTime{Time: t, Valid: true}}
}

// MarshalJSON implements json.Marshaler.
func (t NullTime) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time)
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *NullTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = NullTime{}
		return nil
	}
	var ts time.Time
	if err := json.Unmarshal(data, &ts); err != nil {
		return err
	}
	t.Time, t.Valid = ts, true
	return nil
}

// Post represents a blog post.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Content     string    `json:"content"`
	Status      string    `json:"status"`
	PublishedAt NullTime  `json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsPublished returns true if the post is published.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// IsDraft returns true if the post is a draft.
func (p *Post) IsDraft() bool {
	return p.Status == PostStatusDraft
}

// IsValidStatus checks if a status is one of the valid post statuses.
func IsValidStatus(status string) bool {
	for _, s := range ValidPostStatuses {
		if s == status {
			return true
		}
	}
	return false
}
