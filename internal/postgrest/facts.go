package postgrest

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"factshare/internal/models"
)

// DefaultTable is the table name used when none is configured.
const DefaultTable = "facts"

// FactStore reads and writes facts through a PostgREST endpoint.
type FactStore struct {
	client *Client
	table  string
}

// NewFactStore returns a FactStore on table, or DefaultTable when empty.
func NewFactStore(client *Client, table string) *FactStore {
	if table == "" {
		table = DefaultTable
	}
	return &FactStore{client: client, table: table}
}

// List fetches facts matching q.
func (s *FactStore) List(ctx context.Context, q models.Query) ([]models.Fact, error) {
	q = q.Normalize()

	req := s.client.From(s.table).Select("*")
	if q.Filtered() {
		req.Eq("category", q.Category)
	}
	req.Order(string(q.OrderBy), q.Ascending).Limit(q.Limit)

	facts := []models.Fact{}
	if err := req.Execute(ctx, &facts); err != nil {
		return nil, fmt.Errorf("list facts: %w", err)
	}
	return facts, nil
}

// Get returns a fact by ID. Returns nil if not found.
func (s *FactStore) Get(ctx context.Context, id uuid.UUID) (*models.Fact, error) {
	var rows []models.Fact
	err := s.client.From(s.table).
		Select("*").
		Eq("id", id).
		Limit(1).
		Execute(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("get fact: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// Insert posts a single new fact and returns the created row.
func (s *FactStore) Insert(ctx context.Context, d models.Draft) (*models.Fact, error) {
	var rows []models.Fact
	err := s.client.From(s.table).
		Insert([]models.Draft{d}).
		Select("*").
		Execute(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("insert fact: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New("insert fact: server returned no row")
	}
	return &rows[0], nil
}

// Vote sets one counter to its observed value plus one. The update only
// matches while the stored counter still equals the observed value; when
// another vote got there first, a *models.VoteConflictError carrying the
// current row is returned and nothing is written.
func (s *FactStore) Vote(ctx context.Context, fact models.Fact, col models.VoteColumn) (*models.Fact, error) {
	if !col.Valid() {
		return nil, fmt.Errorf("vote fact: %w: %q", models.ErrUnknownVoteColumn, col)
	}

	observed := fact.Votes(col)
	var rows []models.Fact
	err := s.client.From(s.table).
		Update(map[string]int{string(col): observed + 1}).
		Eq("id", fact.ID).
		Eq(string(col), observed).
		Select("*").
		Execute(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("vote fact: %w", err)
	}
	if len(rows) > 0 {
		return &rows[0], nil
	}

	current, err := s.Get(ctx, fact.ID)
	if err != nil {
		return nil, fmt.Errorf("vote fact: %w", err)
	}
	if current == nil {
		return nil, fmt.Errorf("vote fact %s: %w", fact.ID, models.ErrFactNotFound)
	}
	return nil, fmt.Errorf("vote fact %s: %w", fact.ID, &models.VoteConflictError{Current: current})
}
