// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

// Package api provides the HTTP surface of the discovery backend: the chi
// router, the middleware stack (CORS, rate limiting, security headers,
// request IDs, Prometheus), and the handlers for discovery, per-kind
// browse/detail/create, interactions, categories and health.
//
// Every endpoint responds with the models.APIResponse envelope.
package api
