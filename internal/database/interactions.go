// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Akbarizadeh/nexta-api/internal/models"
)

// contentTable maps a content kind to its table name. The returned name is
// from a fixed set and safe to splice into SQL.
func contentTable(kind models.ContentKind) (string, error) {
	switch kind {
	case models.KindListing:
		return "listings", nil
	case models.KindEvent:
		return "events", nil
	case models.KindOffer:
		return "offers", nil
	default:
		return "", fmt.Errorf("unknown content kind %q", kind)
	}
}

// counterColumn maps an interaction type to the denormalized counter column.
func counterColumn(t models.InteractionType) (string, error) {
	switch t {
	case models.InteractionView:
		return "view_count", nil
	case models.InteractionLike:
		return "like_count", nil
	case models.InteractionSave:
		return "save_count", nil
	default:
		return "", fmt.Errorf("unknown interaction type %q", t)
	}
}

// RecordInteraction stores an interaction row and bumps the matching
// denormalized counter on the content record, atomically.
//
// This is the only write path touching the counters; discovery reads them
// but never mutates.
func (db *DB) RecordInteraction(ctx context.Context, in *models.Interaction) error {
	start := time.Now()

	table, err := contentTable(in.ContentType)
	if err != nil {
		return err
	}
	column, err := counterColumn(in.Type)
	if err != nil {
		return err
	}

	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now().UTC()
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin interaction tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		fmt.Sprintf("UPDATE %s SET %s = %s + 1 WHERE id = ?", table, column, column),
		in.ContentID.String())
	if err != nil {
		observe("interaction", table, start, err)
		return fmt.Errorf("bump %s.%s: %w", table, column, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		observe("interaction", table, start, ErrNotFound)
		return ErrNotFound
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO user_interactions
		(id, user_id, content_type, content_id, interaction_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.ID.String(), in.UserID.String(), string(in.ContentType),
		in.ContentID.String(), string(in.Type), in.CreatedAt)
	if err != nil {
		observe("interaction", table, start, err)
		return fmt.Errorf("insert interaction: %w", err)
	}

	err = tx.Commit()
	observe("interaction", table, start, err)
	if err != nil {
		return fmt.Errorf("commit interaction: %w", err)
	}
	return nil
}

// IncrementViewCount bumps the view counter on a content record without
// recording a per-user interaction row. Used by the detail endpoints, which
// have no authenticated user to attribute the view to.
func (db *DB) IncrementViewCount(ctx context.Context, kind models.ContentKind, id uuid.UUID) error {
	start := time.Now()

	table, err := contentTable(kind)
	if err != nil {
		return err
	}

	res, err := db.conn.ExecContext(ctx,
		fmt.Sprintf("UPDATE %s SET view_count = view_count + 1 WHERE id = ?", table),
		id.String())
	if err != nil {
		observe("increment_view", table, start, err)
		return fmt.Errorf("bump %s.view_count: %w", table, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		observe("increment_view", table, start, ErrNotFound)
		return ErrNotFound
	}
	observe("increment_view", table, start, nil)
	return nil
}
