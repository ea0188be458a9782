// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Akbarizadeh/nexta-api/internal/middleware"
)

// Router wires handlers and middleware into the chi route tree.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a Router.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: mw,
	}
}

// Setup builds the full route tree.
//
// The health group gets permissive rate limiting so monitoring can poll it;
// the data group gets the standard limiter plus Prometheus instrumentation.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.Get("/discovery", router.handler.Discovery)

		r.Get("/listings", router.handler.Listings)
		r.Post("/listings", router.handler.CreateListing)
		r.Get("/listings/{id}", router.handler.Listing)

		r.Get("/events", router.handler.Events)
		r.Post("/events", router.handler.CreateEvent)
		r.Get("/events/{id}", router.handler.Event)

		r.Get("/offers", router.handler.Offers)
		r.Post("/offers", router.handler.CreateOffer)
		r.Get("/offers/{id}", router.handler.Offer)

		r.Get("/businesses", router.handler.Businesses)
		r.Post("/businesses", router.handler.CreateBusiness)
		r.Get("/businesses/{id}", router.handler.Business)
		r.Get("/businesses/{id}/analytics", router.handler.BusinessAnalytics)

		r.Post("/interactions", router.handler.CreateInteraction)

		r.Get("/categories", router.handler.Categories)
	})

	// Prometheus scrape endpoint, outside the rate-limited API tier.
	r.Handle("/metrics", promhttp.Handler())

	return r
}
