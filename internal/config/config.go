// LoreAtlas - Location-Based Historical Discovery
// Copyright 2026 M. Whitcomb (mwhitcomb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwhitcomb/loreatlas

// Package config loads server configuration with Koanf v2 from layered
// sources: built-in defaults, an optional YAML file, and environment
// variables (highest priority).
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the LoreAtlas server.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Wikipedia WikipediaConfig `koanf:"wikipedia"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	Retention RetentionConfig `koanf:"retention"`
	CORS      CORSConfig      `koanf:"cors"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	// Path is the database file. An empty path opens an in-memory
	// database, which is used by tests.
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	// Threads caps DuckDB worker threads; 0 means runtime.NumCPU().
	Threads int `koanf:"threads"`
}

// WikipediaConfig holds upstream encyclopedia client settings.
type WikipediaConfig struct {
	UserAgent string        `koanf:"user_agent"`
	Timeout   time.Duration `koanf:"timeout"`
	// RequestsPerSecond paces outbound calls to stay well inside the
	// Wikimedia API etiquette limits.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	DefaultLanguage   string  `koanf:"default_language"`
}

// RateLimitConfig holds both limiter layers: the discovery limiter that
// guards upstream encyclopedia calls, and the coarse per-IP HTTP limiter.
type RateLimitConfig struct {
	// Discoveries is the number of upstream resolutions allowed per
	// client per window.
	Discoveries int           `koanf:"discoveries"`
	Window      time.Duration `koanf:"window"`
	// HTTPRequests/HTTPWindow configure the router-level httprate
	// middleware.
	HTTPRequests int           `koanf:"http_requests"`
	HTTPWindow   time.Duration `koanf:"http_window"`
	Disabled     bool          `koanf:"disabled"`
}

// RetentionConfig holds the history retention sweep settings.
type RetentionConfig struct {
	MaxAgeDays    int           `koanf:"max_age_days"`
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

// CORSConfig holds allowed origins for the browser map client.
type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks configuration invariants after loading.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1-65535, got %d", c.Server.Port)
	}
	if c.RateLimit.Discoveries < 1 {
		return fmt.Errorf("rate_limit.discoveries must be positive, got %d", c.RateLimit.Discoveries)
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("rate_limit.window must be positive, got %s", c.RateLimit.Window)
	}
	if c.Retention.MaxAgeDays < 1 {
		return fmt.Errorf("retention.max_age_days must be positive, got %d", c.Retention.MaxAgeDays)
	}
	switch c.Wikipedia.DefaultLanguage {
	case "en", "es":
	default:
		return fmt.Errorf("wikipedia.default_language must be en or es, got %q", c.Wikipedia.DefaultLanguage)
	}
	return nil
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
