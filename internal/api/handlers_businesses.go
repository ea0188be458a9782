// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Akbarizadeh/nexta-api/internal/database"
	"github.com/Akbarizadeh/nexta-api/internal/models"
)

// Business handles GET /api/v1/businesses/{id}.
func (h *Handler) Business(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, codeValidationError, "invalid business id", nil)
		return
	}

	biz, err := h.store.GetBusiness(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, codeNotFound, "business not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, codeInternalError,
			"failed to fetch business", err)
		return
	}

	respondSuccess(w, http.StatusOK, biz, started)
}

// Businesses handles GET /api/v1/businesses: businesses filtered by
// category and radius, each annotated with its content counts.
func (h *Handler) Businesses(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	p := h.parseBrowseParams(r)
	if apiErr := validateRequest(&p); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	q := models.BusinessSearch{
		Category: r.URL.Query().Get("category"),
		Ref:      p.ref(),
		RadiusKm: p.RadiusKm,
		Page:     p.Page,
		PageSize: p.PageSize,
	}

	summaries, err := h.store.SearchBusinesses(r.Context(), q)
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeInternalError,
			"failed to search businesses", err)
		return
	}
	respondSuccess(w, http.StatusOK, summaries, started)
}

// BusinessAnalytics handles GET /api/v1/businesses/{id}/analytics:
// aggregate content and engagement totals for one business.
func (h *Handler) BusinessAnalytics(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, codeValidationError, "invalid business id", nil)
		return
	}

	analytics, err := h.store.BusinessAnalytics(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, codeNotFound, "business not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, codeInternalError,
			"failed to compute business analytics", err)
		return
	}

	respondSuccess(w, http.StatusOK, analytics, started)
}

// createBusinessRequest is the POST /api/v1/businesses payload.
type createBusinessRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=2000"`
	Category    string   `json:"category" validate:"omitempty,max=100"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,longitude"`
}

// CreateBusiness handles POST /api/v1/businesses.
func (h *Handler) CreateBusiness(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req createBusinessRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, codeValidationError, "invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	biz := &models.Business{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}
	if err := h.store.CreateBusiness(r.Context(), biz); err != nil {
		respondError(w, http.StatusInternalServerError, codeInternalError,
			"failed to create business", err)
		return
	}

	respondSuccess(w, http.StatusCreated, biz, started)
}
