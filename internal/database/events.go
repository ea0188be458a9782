// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Akbarizadeh/nexta-api/internal/models"
)

// SearchEvents returns upcoming events matching the browse filters, ordered
// by start date ascending.
func (db *DB) SearchEvents(ctx context.Context, q models.EventSearch) ([]models.Event, error) {
	start := time.Now()

	var sb strings.Builder
	sb.WriteString("SELECT " + eventColumns + " FROM events e LEFT JOIN businesses b ON e.business_id = b.id")
	sb.WriteString(" WHERE (e.end_date IS NULL OR e.end_date > ?)")
	args := []interface{}{q.Now}

	if q.Category != "" {
		sb.WriteString(" AND e.category = ?")
		args = append(args, q.Category)
	}
	if q.Ref != nil {
		clause, clauseArgs := radiusClause("e", q.Ref, q.RadiusKm)
		sb.WriteString(" AND " + clause)
		args = append(args, clauseArgs...)
	}
	sb.WriteString(" ORDER BY e.start_date ASC LIMIT ? OFFSET ?")
	args = append(args, q.PageSize, (q.Page-1)*q.PageSize)

	rows, err := db.conn.QueryContext(ctx, sb.String(), args...)
	defer observe("search", "events", start, err)
	if err != nil {
		return nil, fmt.Errorf("search events query failed: %w", err)
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

// GetEvent returns one event by ID, or ErrNotFound.
func (db *DB) GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	start := time.Now()

	query := "SELECT " + eventColumns + " FROM events e LEFT JOIN businesses b ON e.business_id = b.id WHERE e.id = ?"
	row := db.conn.QueryRowContext(ctx, query, id.String())

	ev, err := scanEvent(row)
	observe("get", "events", start, err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &ev, nil
}

// CreateEvent inserts an event, assigning ID and CreatedAt when unset.
func (db *DB) CreateEvent(ctx context.Context, ev *models.Event) error {
	start := time.Now()

	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}

	_, err := db.conn.ExecContext(ctx, `INSERT INTO events
		(id, business_id, title, description, category, image_url, price,
		 latitude, longitude, start_date, end_date,
		 view_count, like_count, save_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID.String(), ev.BusinessID.String(), ev.Title, nullStr(ev.Description), ev.Category,
		nullStr(ev.ImageURL), ev.Price, ev.Latitude, ev.Longitude, ev.StartDate, ev.EndDate,
		ev.ViewCount, ev.LikeCount, ev.SaveCount, ev.CreatedAt)
	observe("insert", "events", start, err)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}
