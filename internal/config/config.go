// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

// Package config provides layered application configuration via Koanf v2.
//
// Configuration is loaded with clear precedence (highest wins):
//
//  1. Environment variables (SERVER_PORT, DATABASE_PATH, ...)
//  2. Optional YAML config file (CONFIG_PATH or a default search path)
//  3. Built-in defaults
package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Discovery DiscoveryConfig `koanf:"discovery"`
	API       APIConfig       `koanf:"api"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	// Path is the database file location. ":memory:" opens an in-memory
	// database, which the tests rely on.
	Path string `koanf:"path"`

	// MaxMemory is DuckDB's memory limit, e.g. "2GB".
	MaxMemory string `koanf:"max_memory"`

	// Threads is the DuckDB thread count; 0 means runtime.NumCPU().
	Threads int `koanf:"threads"`

	// SeedDemoData inserts demo businesses, listings, events and offers on
	// startup. For local development and screenshots only.
	SeedDemoData bool `koanf:"seed_demo_data"`
}

// DiscoveryConfig tunes the discovery engine.
type DiscoveryConfig struct {
	// DefaultRadiusKm applies when a request supplies a reference point but
	// no radius.
	DefaultRadiusKm float64 `koanf:"default_radius_km"`

	// DefaultPageSize applies when a request supplies no page size.
	DefaultPageSize int `koanf:"default_page_size"`

	// MaxPageSize caps the requested page size.
	MaxPageSize int `koanf:"max_page_size"`

	// MaxCandidateWindow caps the per-source fetch window. The engine
	// fetches up to page*pageSize candidates per source so deep pages stay
	// consistent; this ceiling bounds the memory cost of that window.
	MaxCandidateWindow int `koanf:"max_candidate_window"`
}

// APIConfig holds HTTP API settings.
type APIConfig struct {
	CORSAllowedOrigins []string      `koanf:"cors_allowed_origins"`
	RateLimitRequests  int           `koanf:"rate_limit_requests"`
	RateLimitWindow    time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled  bool          `koanf:"rate_limit_disabled"`

	// CategoryCacheTTL is the TTL for the cached category list. The merged
	// discovery result itself is never cached.
	CategoryCacheTTL time.Duration `koanf:"category_cache_ttl"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Path:         "/data/nexta.duckdb",
			MaxMemory:    "2GB",
			Threads:      0, // 0 = use runtime.NumCPU()
			SeedDemoData: false,
		},
		Discovery: DiscoveryConfig{
			DefaultRadiusKm:    10,
			DefaultPageSize:    20,
			MaxPageSize:        100,
			MaxCandidateWindow: 500,
		},
		API: APIConfig{
			CORSAllowedOrigins: []string{},
			RateLimitRequests:  100,
			RateLimitWindow:    time.Minute,
			RateLimitDisabled:  false,
			CategoryCacheTTL:   5 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	if c.Discovery.DefaultRadiusKm <= 0 {
		return fmt.Errorf("discovery.default_radius_km must be positive, got %v", c.Discovery.DefaultRadiusKm)
	}
	if c.Discovery.DefaultPageSize < 1 {
		return fmt.Errorf("discovery.default_page_size must be at least 1, got %d", c.Discovery.DefaultPageSize)
	}
	if c.Discovery.MaxPageSize < c.Discovery.DefaultPageSize {
		return fmt.Errorf("discovery.max_page_size (%d) must not be below default_page_size (%d)",
			c.Discovery.MaxPageSize, c.Discovery.DefaultPageSize)
	}
	if c.Discovery.MaxCandidateWindow < c.Discovery.MaxPageSize {
		return fmt.Errorf("discovery.max_candidate_window (%d) must not be below max_page_size (%d)",
			c.Discovery.MaxCandidateWindow, c.Discovery.MaxPageSize)
	}
	if c.API.RateLimitRequests < 1 {
		return fmt.Errorf("api.rate_limit_requests must be at least 1, got %d", c.API.RateLimitRequests)
	}
	return nil
}
