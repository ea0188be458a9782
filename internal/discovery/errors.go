// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

package discovery

import "errors"

var (
	// ErrInvalidRequest indicates out-of-range request parameters.
	ErrInvalidRequest = errors.New("invalid discovery request")

	// ErrSourceUnavailable indicates a content source's backing fetch
	// failed. The whole call fails; there is no partial-result degradation.
	ErrSourceUnavailable = errors.New("content source unavailable")
)
