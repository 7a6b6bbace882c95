// Copyright (c) 2026 Quill Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"QUILL_DB_PATH" envDefault:"./data/quill.db"`
	SessionSecret string `env:"QUILL_SESSION_SECRET,required"`
	ServerHost    string `env:"QUILL_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"QUILL_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"QUILL_ENV" envDefault:"development"`
	LogLevel      string `env:"QUILL_LOG_LEVEL" envDefault:"info"`

	// API rate limiting (requests per second per client IP, and burst size)
	APIRateLimit float64 `env:"QUILL_API_RATE_LIMIT" envDefault:"100"`
	APIRateBurst int     `env:"QUILL_API_RATE_BURST" envDefault:"200"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("QUILL_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	return cfg, nil
}
