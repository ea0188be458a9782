// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

package api

import (
	"net/http"
	"time"

	"github.com/Akbarizadeh/nexta-api/internal/metrics"
	"github.com/Akbarizadeh/nexta-api/internal/models"
)

const categoriesCacheKey = "categories"

// Categories handles GET /api/v1/categories: the distinct categories across
// listings, events and offers, served from a TTL cache. This is the only
// cached endpoint; discovery results are always computed fresh.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	if cached, ok := h.categories.Get(categoriesCacheKey); ok {
		metrics.CacheHits.Inc()
		respondJSON(w, http.StatusOK, &models.APIResponse{
			Status: "success",
			Data:   cached,
			Metadata: models.Metadata{
				Timestamp:   time.Now().UTC(),
				QueryTimeMS: time.Since(started).Milliseconds(),
				Cached:      true,
			},
		})
		return
	}
	metrics.CacheMisses.Inc()

	categories, err := h.store.Categories(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeInternalError,
			"failed to fetch categories", err)
		return
	}

	h.categories.Set(categoriesCacheKey, categories)
	respondSuccess(w, http.StatusOK, categories, started)
}
