// Copyright (c) 2025-2026 Blackstone EG & Partners
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"BSEG_DB_PATH" envDefault:"./data/website.db"`
	SessionSecret string `env:"BSEG_SESSION_SECRET,required"`
	ServerHost    string `env:"BSEG_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"BSEG_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"BSEG_ENV" envDefault:"development"`
	LogLevel      string `env:"BSEG_LOG_LEVEL" envDefault:"info"`
	UploadsDir    string `env:"BSEG_UPLOADS_DIR" envDefault:"./uploads"`

	// Mail configuration
	SMTPHost    string `env:"BSEG_SMTP_HOST" envDefault:"localhost"`
	SMTPPort    int    `env:"BSEG_SMTP_PORT" envDefault:"587"`
	SMTPUseTLS  bool   `env:"BSEG_SMTP_USE_TLS" envDefault:"true"`
	SMTPUser    string `env:"BSEG_SMTP_USERNAME"`
	SMTPPass    string `env:"BSEG_SMTP_PASSWORD"`
	MailFrom    string `env:"BSEG_MAIL_FROM" envDefault:"noreply@blackstoneegpartners.com"`
	MailEnabled bool   `env:"BSEG_MAIL_ENABLED" envDefault:"true"`

	// Seeding configuration
	DoSeed bool `env:"BSEG_DO_SEED" envDefault:"false"` // Seed sample content on startup
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
		return nil, fmt.Errorf("BSEG_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	cfg.Env = strings.ToLower(cfg.Env)

	return cfg, nil
}
