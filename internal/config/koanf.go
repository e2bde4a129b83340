// LoreAtlas - Location-Based Historical Discovery
// Copyright 2026 M. Whitcomb (mwhitcomb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwhitcomb/loreatlas

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where config files are searched, in order. The
// first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/loreatlas/config.yaml",
	"/etc/loreatlas/config.yml",
}

// ConfigPathEnvVar overrides the config file search when set.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns the built-in defaults, applied before the config
// file and environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8787,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Path:      "/data/loreatlas.duckdb",
			MaxMemory: "512MB",
			Threads:   0,
		},
		Wikipedia: WikipediaConfig{
			UserAgent:         "LoreAtlas/1.0 (location-based-history-app)",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 5,
			DefaultLanguage:   "en",
		},
		RateLimit: RateLimitConfig{
			Discoveries:  30,
			Window:       time.Hour,
			HTTPRequests: 100,
			HTTPWindow:   time.Minute,
			Disabled:     false,
		},
		Retention: RetentionConfig{
			MaxAgeDays:    90,
			SweepInterval: 24 * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load loads configuration with layered sources, highest priority last:
//
//  1. Built-in defaults
//  2. Optional YAML config file
//  3. Environment variables
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envMappings maps environment variable names to koanf config paths.
var envMappings = map[string]string{
	"host":             "server.host",
	"port":             "server.port",
	"shutdown_timeout": "server.shutdown_timeout",

	"database_path":       "database.path",
	"database_max_memory": "database.max_memory",
	"database_threads":    "database.threads",

	"wikipedia_user_agent":          "wikipedia.user_agent",
	"wikipedia_timeout":             "wikipedia.timeout",
	"wikipedia_requests_per_second": "wikipedia.requests_per_second",
	"wikipedia_default_language":    "wikipedia.default_language",

	"rate_limit_discoveries":   "rate_limit.discoveries",
	"rate_limit_window":        "rate_limit.window",
	"rate_limit_http_requests": "rate_limit.http_requests",
	"rate_limit_http_window":   "rate_limit.http_window",
	"rate_limit_disabled":      "rate_limit.disabled",

	"retention_max_age_days":   "retention.max_age_days",
	"retention_sweep_interval": "retention.sweep_interval",

	"cors_allowed_origins": "cors.allowed_origins",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps environment variable names to config paths.
// Unrecognized variables are dropped so unrelated environment noise never
// leaks into the configuration tree.
func envTransformFunc(key string) string {
	if path, ok := envMappings[strings.ToLower(key)]; ok {
		return path
	}
	return ""
}

// sliceConfigPaths lists paths parsed as comma-separated slices when they
// arrive from the environment as plain strings.
var sliceConfigPaths = []string{
	"cors.allowed_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}
