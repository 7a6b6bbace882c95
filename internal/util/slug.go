// Copyright (c) 2026 Quill Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides general-purpose utility functions including
// URL slug generation and validation with Unicode normalization support.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SlugFallback is returned by Slugify when no slug material survives cleanup.
const SlugFallback = "post"

// SlugMaxLen is the maximum slug length, matching the posts.slug column.
const SlugMaxLen = 200

var (
	// nonSlugRuns matches maximal runs of characters outside [a-z0-9]
	nonSlugRuns = regexp.MustCompile(`[^a-z0-9]+`)
	// slugPattern matches a well-formed slug
	slugPattern = regexp.MustCompile(`^[a-z0-9-]{1,200}$`)
)

// Slugify converts a string to a URL-friendly slug.
// It strips accents, transliterates remaining non-Latin characters to ASCII,
// converts to lowercase, replaces every run of non-alphanumeric characters
// with a single hyphen and trims hyphens from both ends. If nothing usable
// remains it returns SlugFallback, so the result is always a valid slug.
func Slugify(s string) string {
	// Normalize unicode characters (decompose accents)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)

	// Transliterate whatever is still non-ASCII (CJK, Cyrillic, ...)
	result = unidecode.Unidecode(result)

	// Convert to lowercase
	result = strings.ToLower(result)

	// Replace runs of everything outside [a-z0-9] with a single hyphen
	result = nonSlugRuns.ReplaceAllString(result, "-")

	// Trim hyphens from start and end
	result = strings.Trim(result, "-")

	// Transliteration can expand the input well past the column limit
	if len(result) > SlugMaxLen {
		result = strings.TrimRight(result[:SlugMaxLen], "-")
	}

	if result == "" {
		return SlugFallback
	}
	return result
}

// IsValidSlug checks if a string is a valid slug format:
// 1-200 characters from [a-z0-9-].
func IsValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}
