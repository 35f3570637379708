// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"factshare/internal/models"
)

// FactStore manages facts in PostgreSQL.
type FactStore struct {
	db *sql.DB
}

// NewFactStore returns a new FactStore.
func NewFactStore(db *sql.DB) *FactStore {
	return &FactStore{db: db}
}

const factColumns = `id, text, source, category, votes_interesting, votes_mkay, votes_false, created_at`

// scanFact scans a row into a Fact struct.
func scanFact(scanner interface{ Scan(...any) error }) (*models.Fact, error) {
	var f models.Fact
	err := scanner.Scan(
		&f.ID, &f.Text, &f.Source, &f.Category,
		&f.VotesInteresting, &f.VotesMkay, &f.VotesFalse, &f.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// List returns facts matching q, sorted by the requested vote column.
// Ties are broken newest first.
func (s *FactStore) List(ctx context.Context, q models.Query) ([]models.Fact, error) {
	q = q.Normalize()

	dir := "DESC"
	if q.Ascending {
		dir = "ASC"
	}

	// OrderBy is a validated VoteColumn, so interpolating it is safe.
	var (
		rows *sql.Rows
		err  error
	)
	if q.Filtered() {
		rows, err = s.db.QueryContext(ctx, `
			SELECT `+factColumns+` FROM facts
			WHERE category = $1
			ORDER BY `+string(q.OrderBy)+` `+dir+`, created_at DESC
			LIMIT $2`, q.Category, q.Limit)
	} else {
		rows, err = s.db.QueryContext(ctx, `
			SELECT `+factColumns+` FROM facts
			ORDER BY `+string(q.OrderBy)+` `+dir+`, created_at DESC
			LIMIT $1`, q.Limit)
	}
	if err != nil {
		return nil, fmt.Errorf("list facts: %w", err)
	}
	defer rows.Close()

	items := []models.Fact{}
	for rows.Next() {
		f, err := scanFact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fact: %w", err)
		}
		items = append(items, *f)
	}
	return items, rows.Err()
}

// Get returns a fact by ID. Returns nil if not found.
func (s *FactStore) Get(ctx context.Context, id uuid.UUID) (*models.Fact, error) {
	f, err := scanFact(s.db.QueryRowContext(ctx,
		`SELECT `+factColumns+` FROM facts WHERE id = $1`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get fact: %w", err)
	}
	return f, nil
}

// Insert stores a new fact with all counters at zero and returns the row
// the database created.
func (s *FactStore) Insert(ctx context.Context, d models.Draft) (*models.Fact, error) {
	f, err := scanFact(s.db.QueryRowContext(ctx, `
		INSERT INTO facts (text, source, category)
		VALUES ($1, $2, $3)
		RETURNING `+factColumns,
		d.Text, d.Source, d.Category,
	))
	if err != nil {
		return nil, fmt.Errorf("insert fact: %w", err)
	}
	return f, nil
}

// Vote increments one counter of the given fact and returns the updated
// row. The increment is applied in SQL; the counters on fact are ignored.
func (s *FactStore) Vote(ctx context.Context, fact models.Fact, col models.VoteColumn) (*models.Fact, error) {
	if !col.Valid() {
		return nil, fmt.Errorf("vote fact: %w: %q", models.ErrUnknownVoteColumn, col)
	}

	f, err := scanFact(s.db.QueryRowContext(ctx, `
		UPDATE facts SET `+string(col)+` = `+string(col)+` + 1
		WHERE id = $1
		RETURNING `+factColumns,
		fact.ID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("vote fact %s: %w", fact.ID, models.ErrFactNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("vote fact: %w", err)
	}
	return f, nil
}
