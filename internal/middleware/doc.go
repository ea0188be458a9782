// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

// Package middleware provides HTTP middleware shared across route groups.
// Chi-ecosystem middleware (CORS, rate limiting, compression) is wired
// directly in internal/api; this package holds the handwritten pieces.
package middleware
