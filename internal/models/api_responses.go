// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

package models

import (
	"time"
)

// APIResponse is the standardized envelope used by every HTTP endpoint.
//
// Status is "success" or "error". Data carries the payload on success;
// Error is populated only on failure.
//
// Example:
//
//	{
//	  "status": "success",
//	  "data": {"items": [...], "total_count": 42, "page": 1, "page_size": 20},
//	  "metadata": {"timestamp": "2026-08-30T12:00:00Z", "query_time_ms": 12}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries per-response observability fields. QueryTimeMS is the
// backend execution time; Cached marks responses served from the TTL cache.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError is a structured error for the response envelope.
//
// Codes used by this service:
//   - VALIDATION_ERROR: malformed or out-of-range request parameters
//   - SOURCE_UNAVAILABLE: a content source's backing fetch failed
//   - NOT_FOUND: the addressed record does not exist
//   - INTERNAL_ERROR: anything else
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}
