// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

package discovery

import (
	"sort"
	"strings"

	"github.com/Akbarizadeh/nexta-api/internal/models"
)

// rankItems orders the merged candidate set in place by the requested
// strategy. Unrecognized strategies fall back to recency rather than error.
//
// The sort is stable: equal-key items keep their merge order (listings,
// events, offers, each in its source's default order), which makes
// pagination reproducible.
func rankItems(items []models.DiscoveredItem, strategy string) {
	switch strings.ToLower(strategy) {
	case models.SortDistance:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].DistanceKm < items[j].DistanceKm
		})
	case models.SortPopular:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Popularity() > items[j].Popularity()
		})
	default:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		})
	}
}
