// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

package discovery

import (
	"github.com/Akbarizadeh/nexta-api/internal/models"
)

// paginate slices the requested 1-based page out of the ranked merged set.
// The returned total is the size of the full merged set, not the page.
// Callers must have validated page and pageSize as positive.
func paginate(items []models.DiscoveredItem, page, pageSize int) ([]models.DiscoveredItem, int) {
	total := len(items)

	offset := (page - 1) * pageSize
	if offset >= total {
		return []models.DiscoveredItem{}, total
	}

	end := offset + pageSize
	if end > total {
		end = total
	}
	return items[offset:end], total
}
