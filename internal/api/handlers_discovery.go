// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Akbarizadeh/nexta-api/internal/discovery"
	"github.com/Akbarizadeh/nexta-api/internal/logging"
	"github.com/Akbarizadeh/nexta-api/internal/models"
)

// Discovery handles GET /api/v1/discovery.
//
// Query parameters: latitude, longitude, radius_km, category, sort_by
// (distance, popular, recent), page, page_size. A (0, 0) coordinate pair,
// or neither coordinate supplied, means no reference point.
func (h *Handler) Discovery(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	req := models.DiscoveryRequest{
		Latitude:  getFloatParam(r, "latitude", 0),
		Longitude: getFloatParam(r, "longitude", 0),
		RadiusKm:  getFloatParam(r, "radius_km", 0),
		Category:  r.URL.Query().Get("category"),
		SortBy:    r.URL.Query().Get("sort_by"),
		Page:      getIntParam(r, "page", 0),
		PageSize:  getIntParam(r, "page_size", 0),
	}

	resp, err := h.engine.Discover(r.Context(), req)
	if err != nil {
		h.respondDiscoveryError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Int("total", resp.TotalCount).
		Int("returned", len(resp.Items)).
		Dur("elapsed", time.Since(started)).
		Msg("discovery request served")

	respondSuccess(w, http.StatusOK, resp, started)
}

func (h *Handler) respondDiscoveryError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, discovery.ErrInvalidRequest):
		respondError(w, http.StatusBadRequest, codeValidationError, err.Error(), nil)
	case errors.Is(err, discovery.ErrSourceUnavailable):
		respondError(w, http.StatusServiceUnavailable, codeSourceUnavailable,
			"a content source is temporarily unavailable", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// Client went away or the deadline passed; 499-style close. The
		// chosen status is best effort since the connection is likely gone.
		respondError(w, http.StatusServiceUnavailable, codeSourceUnavailable,
			"request canceled", nil)
	default:
		respondError(w, http.StatusInternalServerError, codeInternalError,
			"internal error", err)
	}
}
