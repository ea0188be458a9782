// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Akbarizadeh/nexta-api/internal/models"
)

// EligibleListings returns active listings matching the candidate query,
// newest first, capped at q.Limit.
//
// Eligibility: status active, category exact match (when set), and within
// radius of the reference point (when set); listings without a coordinate
// are never excluded by radius.
func (db *DB) EligibleListings(ctx context.Context, q models.CandidateQuery) ([]models.Listing, error) {
	start := time.Now()

	var sb strings.Builder
	sb.WriteString("SELECT " + listingColumns + " FROM listings l LEFT JOIN businesses b ON l.business_id = b.id")
	sb.WriteString(" WHERE l.status = ?")
	args := []interface{}{string(models.ListingActive)}

	if q.Category != "" {
		sb.WriteString(" AND l.category = ?")
		args = append(args, q.Category)
	}
	if clause, clauseArgs := radiusClause("l", q.Ref, q.RadiusKm); clause != "" {
		sb.WriteString(" AND " + clause)
		args = append(args, clauseArgs...)
	}
	sb.WriteString(" ORDER BY l.created_at DESC LIMIT ?")
	args = append(args, q.Limit)

	rows, err := db.conn.QueryContext(ctx, sb.String(), args...)
	defer observe("eligible", "listings", start, err)
	if err != nil {
		return nil, fmt.Errorf("eligible listings query failed: %w", err)
	}
	defer rows.Close()

	var listings []models.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// EligibleEvents returns events whose end time is absent or after q.Now,
// matching category and radius, ordered by start time ascending, capped at
// q.Limit.
func (db *DB) EligibleEvents(ctx context.Context, q models.CandidateQuery) ([]models.Event, error) {
	start := time.Now()

	var sb strings.Builder
	sb.WriteString("SELECT " + eventColumns + " FROM events e LEFT JOIN businesses b ON e.business_id = b.id")
	sb.WriteString(" WHERE (e.end_date IS NULL OR e.end_date > ?)")
	args := []interface{}{q.Now}

	if q.Category != "" {
		sb.WriteString(" AND e.category = ?")
		args = append(args, q.Category)
	}
	if clause, clauseArgs := radiusClause("e", q.Ref, q.RadiusKm); clause != "" {
		sb.WriteString(" AND " + clause)
		args = append(args, clauseArgs...)
	}
	sb.WriteString(" ORDER BY e.start_date ASC LIMIT ?")
	args = append(args, q.Limit)

	rows, err := db.conn.QueryContext(ctx, sb.String(), args...)
	defer observe("eligible", "events", start, err)
	if err != nil {
		return nil, fmt.Errorf("eligible events query failed: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// EligibleOffers returns offers whose end time is after q.Now, matching
// category and radius, ordered soonest-expiring first, capped at q.Limit.
func (db *DB) EligibleOffers(ctx context.Context, q models.CandidateQuery) ([]models.Offer, error) {
	start := time.Now()

	var sb strings.Builder
	sb.WriteString("SELECT " + offerColumns + " FROM offers o LEFT JOIN businesses b ON o.business_id = b.id")
	sb.WriteString(" WHERE o.end_date > ?")
	args := []interface{}{q.Now}

	if q.Category != "" {
		sb.WriteString(" AND o.category = ?")
		args = append(args, q.Category)
	}
	if clause, clauseArgs := radiusClause("o", q.Ref, q.RadiusKm); clause != "" {
		sb.WriteString(" AND " + clause)
		args = append(args, clauseArgs...)
	}
	sb.WriteString(" ORDER BY o.end_date ASC LIMIT ?")
	args = append(args, q.Limit)

	rows, err := db.conn.QueryContext(ctx, sb.String(), args...)
	defer observe("eligible", "offers", start, err)
	if err != nil {
		return nil, fmt.Errorf("eligible offers query failed: %w", err)
	}
	defer rows.Close()

	var offers []models.Offer
	for rows.Next() {
		of, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		offers = append(offers, of)
	}
	return offers, rows.Err()
}
