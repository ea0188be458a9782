// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

// Package main is the entry point for the Nexta discovery server.
//
// Nexta is a location-based marketplace backend. Its core is the discovery
// endpoint, which fans out across listings, events and offers, filters by
// radius around the caller, normalizes everything into one item shape, and
// returns a ranked, paginated feed.
//
// # Startup Order
//
//  1. Configuration: Koanf v2 layered load (defaults, optional YAML file,
//     environment variables)
//  2. Logging: zerolog, JSON or console format
//  3. Database: DuckDB (file-backed or in-memory), schema creation,
//     optional demo seed data
//  4. Discovery engine over the three content stores
//  5. HTTP server: chi router, graceful shutdown on SIGINT/SIGTERM
//
// # Configuration
//
// Everything is configurable via environment variables (SERVER_PORT,
// DATABASE_PATH, DISCOVERY_DEFAULT_RADIUS_KM, ...) or a YAML file pointed
// at by CONFIG_PATH. See internal/config for the full set and defaults.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Akbarizadeh/nexta-api/internal/api"
	"github.com/Akbarizadeh/nexta-api/internal/config"
	"github.com/Akbarizadeh/nexta-api/internal/database"
	"github.com/Akbarizadeh/nexta-api/internal/discovery"
	"github.com/Akbarizadeh/nexta-api/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	logging.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("database", cfg.Database.Path).
		Msg("Starting Nexta discovery server")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close database")
		}
	}()

	if cfg.Database.SeedDemoData {
		if err := db.SeedDemoData(ctx); err != nil {
			logging.Fatal().Err(err).Msg("Failed to seed demo data")
		}
		logging.Info().Msg("Demo data seeded")
	}

	engine := discovery.NewEngine(discovery.Stores{
		Listings: db,
		Events:   db,
		Offers:   db,
	}, cfg.Discovery)

	handler := api.NewHandler(engine, db, cfg)
	router := api.NewRouter(handler, api.NewChiMiddleware(api.NewChiMiddlewareFromConfig(cfg.API)))

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown did not complete")
		_ = server.Close()
	}

	logging.Info().Msg("Server stopped gracefully")
}
