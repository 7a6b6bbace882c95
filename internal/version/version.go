// Copyright (c) 2026 Quill Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version provides build-time version information.
package version

// Injected via ldflags at build time.
var (
	// Version is the semantic version from git tags (e.g. "v1.2.3").
	Version = "dev"

	// GitCommit is the short git commit hash.
	GitCommit = ""

	// BuildTime is the build timestamp in RFC3339 format.
	BuildTime = ""
)

// String returns a human-readable version line.
func String() string {
	s := Version
	if GitCommit != "" {
		s += " (" + GitCommit + ")"
	}
	return s
}
