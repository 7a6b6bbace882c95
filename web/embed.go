// Copyright (c) 2026 Quill Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package web embeds the HTML templates.
package web

import "embed"

//go:embed all:templates
var Templates embed.FS
