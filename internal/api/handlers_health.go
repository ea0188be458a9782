// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

package api

import (
	"net/http"
	"time"
)

// healthStatus is the payload for the health endpoints.
type healthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

// HealthLive handles GET /api/v1/health/live. It answers as long as the
// process is serving; no dependency checks.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, healthStatus{Status: "alive"}, time.Now())
}

// HealthReady handles GET /api/v1/health/ready. Readiness requires a
// responsive database.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	if err := h.store.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, codeSourceUnavailable,
			"database not ready", err)
		return
	}
	respondSuccess(w, http.StatusOK, healthStatus{Status: "ready", Database: "up"}, started)
}

// Health handles GET /api/v1/health, the combined status summary.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	status := healthStatus{Status: "healthy", Database: "up"}
	code := http.StatusOK
	if err := h.store.Ping(r.Context()); err != nil {
		status = healthStatus{Status: "degraded", Database: "down"}
		code = http.StatusServiceUnavailable
	}
	respondSuccess(w, code, status, started)
}
