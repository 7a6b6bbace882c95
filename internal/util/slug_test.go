package util

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple title",
			input:    "Hello World",
			expected: "hello-world",
		},
		{
			name:     "with punctuation",
			input:    "Hello, World!",
			expected: "hello-world",
		},
		{
			name:     "with numbers",
			input:    "Post 123",
			expected: "post-123",
		},
		{
			name:     "with accents",
			input:    "Café déjà vu",
			expected: "cafe-deja-vu",
		},
		{
			name:     "with multiple spaces",
			input:    "Hello   World",
			expected: "hello-world",
		},
		{
			name:     "with hyphens",
			input:    "Hello - World",
			expected: "hello-world",
		},
		{
			name:     "with leading/trailing spaces",
			input:    "  Hello World  ",
			expected: "hello-world",
		},
		{
			name:     "all special characters falls back",
			input:    "!@#$%^&*()",
			expected: "post",
		},
		{
			name:     "whitespace only falls back",
			input:    "   ",
			expected: "post",
		},
		{
			name:     "empty string falls back",
			input:    "",
			expected: "post",
		},
		{
			name:     "german umlauts",
			input:    "Über München",
			expected: "uber-munchen",
		},
		{
			name:     "cyrillic transliterated",
			input:    "Привет мир",
			expected: "privet-mir",
		},
		{
			name:     "mixed case",
			input:    "HeLLo WoRLd",
			expected: "hello-world",
		},
		{
			name:     "already slug shaped",
			input:    "hello-world",
			expected: "hello-world",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Slugify(tt.input)
			if result != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{
		"Hello, World!",
		"Café déjà vu",
		"",
		"---",
		"already-a-slug",
		"Über München 42",
	}

	for _, in := range inputs {
		once := Slugify(in)
		twice := Slugify(once)
		if once != twice {
			t.Errorf("Slugify not idempotent for %q: first %q, second %q", in, once, twice)
		}
		if !IsValidSlug(once) {
			t.Errorf("Slugify(%q) = %q is not a valid slug", in, once)
		}
	}
}

func TestSlugifyTruncatesExpandedInput(t *testing.T) {
	// Transliteration can expand CJK input to several ASCII characters
	// per rune, so valid-length titles need clamping after normalization.
	inputs := []string{
		strings.Repeat("日", 200),
		strings.Repeat("Ж", 200),
		strings.Repeat("long-title ", 30),
	}

	for _, in := range inputs {
		got := Slugify(in)
		if len(got) > SlugMaxLen {
			t.Errorf("Slugify(%.10q...) has length %d, want <= %d", in, len(got), SlugMaxLen)
		}
		if !IsValidSlug(got) {
			t.Errorf("Slugify(%.10q...) = %q is not a valid slug", in, got)
		}
		if strings.HasSuffix(got, "-") {
			t.Errorf("Slugify(%.10q...) = %q ends with a hyphen", in, got)
		}
	}
}

func TestIsValidSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{
			name:     "valid simple slug",
			input:    "hello-world",
			expected: true,
		},
		{
			name:     "valid slug with numbers",
			input:    "post-123",
			expected: true,
		},
		{
			name:     "valid single word",
			input:    "hello",
			expected: true,
		},
		{
			name:     "valid numbers only",
			input:    "123",
			expected: true,
		},
		{
			name:     "invalid - empty",
			input:    "",
			expected: false,
		},
		{
			name:     "invalid - uppercase",
			input:    "Hello-World",
			expected: false,
		},
		{
			name:     "invalid - spaces",
			input:    "hello world",
			expected: false,
		},
		{
			name:     "invalid - special chars",
			input:    "hello!world",
			expected: false,
		},
		{
			name:     "invalid - over 200 chars",
			input:    longSlug(201),
			expected: false,
		},
		{
			name:     "valid - exactly 200 chars",
			input:    longSlug(200),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValidSlug(tt.input)
			if result != tt.expected {
				t.Errorf("IsValidSlug(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

// longSlug builds a valid slug body of length n.
func longSlug(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'a'
	}
	return string(b)
}
