// Copyright (c) 2025-2026 Blackstone EG & Partners
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"strings"
	"testing"
)

const testSecret = "0123456789abcdef0123456789abcdef" // 32 bytes

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BSEG_SESSION_SECRET", testSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.DBPath != "./data/website.db" {
		t.Errorf("DBPath = %q, want default", cfg.DBPath)
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want 8080", cfg.ServerPort)
	}
	if !cfg.IsDevelopment() {
		t.Error("default environment should be development")
	}
	if cfg.ServerAddr() != "localhost:8080" {
		t.Errorf("ServerAddr = %q, want localhost:8080", cfg.ServerAddr())
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("BSEG_SESSION_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when session secret is missing")
	}
}

func TestLoad_ShortSecret(t *testing.T) {
	t.Setenv("BSEG_SESSION_SECRET", "tooshort")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for short session secret")
	}
	if !strings.Contains(err.Error(), "BSEG_SESSION_SECRET") {
		t.Errorf("error should name the variable, got: %v", err)
	}
}

func TestLoad_EnvNormalized(t *testing.T) {
	t.Setenv("BSEG_SESSION_SECRET", testSecret)
	t.Setenv("BSEG_ENV", "PRODUCTION")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Env != "production" {
		t.Errorf("Env = %q, want production", cfg.Env)
	}
	if cfg.IsDevelopment() {
		t.Error("production config reported as development")
	}
}
