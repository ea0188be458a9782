// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

// Package models defines the domain records (businesses, listings, events,
// offers, interactions), the discovery request/response shapes, and the
// standardized HTTP response envelope shared by all endpoints.
package models
