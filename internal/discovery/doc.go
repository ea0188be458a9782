// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

// Package discovery implements the discovery engine: it fans out across the
// three content sources (listings, events, offers), normalizes each kind
// into one item shape, merges, ranks by the requested strategy, and
// paginates the merged set.
//
// The pipeline for one call is:
//
//	validate -> fetch x3 (concurrent) -> normalize -> merge -> rank -> paginate
//
// All stages operate on request-scoped data; the engine is stateless and
// safe for concurrent use. Discovery is strictly read-only: it never mutates
// counters or records.
//
// When the caller supplies no reference point (latitude and longitude both
// zero), no radius filtering applies and every item's distance is 0. Under
// the distance sort all items then tie and the stable merge order (listings,
// events, offers, each in source order) is returned.
package discovery
