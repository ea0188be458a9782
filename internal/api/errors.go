// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

package api

// Error codes carried in the APIError envelope.
const (
	codeValidationError   = "VALIDATION_ERROR"
	codeSourceUnavailable = "SOURCE_UNAVAILABLE"
	codeNotFound          = "NOT_FOUND"
	codeInternalError     = "INTERNAL_ERROR"
)
