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
	"github.com/Akbarizadeh/nexta-api/internal/logging"
	"github.com/Akbarizadeh/nexta-api/internal/models"
)

// Events handles GET /api/v1/events: events that have not ended (or are
// open-ended), filtered by category and radius, earliest start first.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	p := h.parseBrowseParams(r)
	if apiErr := validateRequest(&p); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	q := models.EventSearch{
		Category: r.URL.Query().Get("category"),
		Ref:      p.ref(),
		RadiusKm: p.RadiusKm,
		Now:      time.Now().UTC(),
		Page:     p.Page,
		PageSize: p.PageSize,
	}

	events, err := h.store.SearchEvents(r.Context(), q)
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeInternalError,
			"failed to search events", err)
		return
	}
	respondSuccess(w, http.StatusOK, events, started)
}

// Event handles GET /api/v1/events/{id} with a best-effort view bump.
func (h *Handler) Event(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, codeValidationError, "invalid event id", nil)
		return
	}

	event, err := h.store.GetEvent(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, codeNotFound, "event not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, codeInternalError,
			"failed to fetch event", err)
		return
	}

	if err := h.store.IncrementViewCount(r.Context(), models.KindEvent, id); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Str("event_id", id.String()).
			Msg("view counter bump failed")
	} else {
		event.ViewCount++
	}

	respondSuccess(w, http.StatusOK, event, started)
}

// createEventRequest is the POST /api/v1/events payload. EndDate may be
// omitted for open-ended events.
type createEventRequest struct {
	BusinessID  uuid.UUID  `json:"business_id" validate:"required"`
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	Category    string     `json:"category" validate:"required,max=100"`
	ImageURL    string     `json:"image_url" validate:"omitempty,url,max=500"`
	Price       *float64   `json:"price" validate:"omitempty,gte=0"`
	Latitude    *float64   `json:"latitude" validate:"omitempty,latitude"`
	Longitude   *float64   `json:"longitude" validate:"omitempty,longitude"`
	StartDate   time.Time  `json:"start_date" validate:"required"`
	EndDate     *time.Time `json:"end_date"`
}

// CreateEvent handles POST /api/v1/events.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req createEventRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, codeValidationError, "invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}
	if req.EndDate != nil && !req.EndDate.After(req.StartDate) {
		respondError(w, http.StatusBadRequest, codeValidationError,
			"end_date must be after start_date", nil)
		return
	}

	event := &models.Event{
		BusinessID:  req.BusinessID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if err := h.store.CreateEvent(r.Context(), event); err != nil {
		respondError(w, http.StatusInternalServerError, codeInternalError,
			"failed to create event", err)
		return
	}

	respondSuccess(w, http.StatusCreated, event, started)
}
