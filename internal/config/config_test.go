// LoreAtlas - Location-Based Historical Discovery
// Copyright 2026 M. Whitcomb (mwhitcomb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwhitcomb/loreatlas

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 8787 {
		t.Errorf("default port = %d, want 8787", cfg.Server.Port)
	}
	if cfg.RateLimit.Discoveries != 30 {
		t.Errorf("default discovery limit = %d, want 30", cfg.RateLimit.Discoveries)
	}
	if cfg.RateLimit.Window != time.Hour {
		t.Errorf("default window = %s, want 1h", cfg.RateLimit.Window)
	}
	if cfg.Retention.MaxAgeDays != 90 {
		t.Errorf("default retention = %d days, want 90", cfg.Retention.MaxAgeDays)
	}
	if cfg.Wikipedia.DefaultLanguage != "en" {
		t.Errorf("default language = %q, want en", cfg.Wikipedia.DefaultLanguage)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("RATE_LIMIT_DISCOVERIES", "5")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.RateLimit.Discoveries != 5 {
		t.Errorf("discoveries = %d, want 5", cfg.RateLimit.Discoveries)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Logging.Level)
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[0] != want[0] || cfg.CORS.AllowedOrigins[1] != want[1] {
		t.Errorf("cors origins = %v, want %v", cfg.CORS.AllowedOrigins, want)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: 4242\nwikipedia:\n  default_language: es\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 4242 {
		t.Errorf("port = %d, want 4242", cfg.Server.Port)
	}
	if cfg.Wikipedia.DefaultLanguage != "es" {
		t.Errorf("language = %q, want es", cfg.Wikipedia.DefaultLanguage)
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.Server.Port = 0 }},
		{"zero discoveries", func(c *Config) { c.RateLimit.Discoveries = 0 }},
		{"zero window", func(c *Config) { c.RateLimit.Window = 0 }},
		{"zero retention", func(c *Config) { c.Retention.MaxAgeDays = 0 }},
		{"bad language", func(c *Config) { c.Wikipedia.DefaultLanguage = "de" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
