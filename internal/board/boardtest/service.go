// Package boardtest provides an in-memory board.Service for tests.
package boardtest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"factshare/internal/models"
)

// Service is an in-memory fact backend. Set the *Err fields to make the
// corresponding call fail. Gate, when non-nil, blocks every call until a
// value is received or the context ends.
type Service struct {
	mu    sync.Mutex
	facts []models.Fact

	ListErr   error
	GetErr    error
	InsertErr error
	VoteErr   error

	Gate chan struct{}

	Calls []string
}

// New returns a Service holding a copy of facts.
func New(facts ...models.Fact) *Service {
	return &Service{facts: append([]models.Fact(nil), facts...)}
}

// Fact returns a fixture fact with a fresh ID.
func Fact(text, category string, interesting, mkay, falseVotes int) models.Fact {
	return models.Fact{
		ID:               uuid.New(),
		Text:             text,
		Source:           "https://example.com/" + category,
		Category:         category,
		VotesInteresting: interesting,
		VotesMkay:        mkay,
		VotesFalse:       falseVotes,
		CreatedAt:        time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *Service) wait(ctx context.Context) error {
	if s.Gate == nil {
		return nil
	}
	select {
	case <-s.Gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) record(call string) {
	s.mu.Lock()
	s.Calls = append(s.Calls, call)
	s.mu.Unlock()
}

// CallCount returns how many calls have been made.
func (s *Service) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Calls)
}

// List filters and sorts like the real backends.
func (s *Service) List(ctx context.Context, q models.Query) ([]models.Fact, error) {
	s.record("list:" + q.Category)
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	if s.ListErr != nil {
		return nil, s.ListErr
	}

	q = q.Normalize()
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Fact{}
	for _, f := range s.facts {
		if q.Filtered() && f.Category != q.Category {
			continue
		}
		out = append(out, f)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Votes(q.OrderBy), out[j].Votes(q.OrderBy)
		if q.Ascending {
			return a < b
		}
		return a > b
	})
	if len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// Get returns nil, nil for unknown IDs.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Fact, error) {
	s.record("get")
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	if s.GetErr != nil {
		return nil, s.GetErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.facts {
		if f.ID == id {
			f := f
			return &f, nil
		}
	}
	return nil, nil
}

// Insert stores d with zeroed counters.
func (s *Service) Insert(ctx context.Context, d models.Draft) (*models.Fact, error) {
	s.record("insert")
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	if s.InsertErr != nil {
		return nil, s.InsertErr
	}

	f := models.Fact{
		ID:        uuid.New(),
		Text:      d.Text,
		Source:    d.Source,
		Category:  d.Category,
		CreatedAt: time.Now().UTC(),
	}
	s.mu.Lock()
	s.facts = append(s.facts, f)
	s.mu.Unlock()
	return &f, nil
}

// Vote increments the stored counter.
func (s *Service) Vote(ctx context.Context, fact models.Fact, col models.VoteColumn) (*models.Fact, error) {
	s.record("vote:" + string(col))
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	if s.VoteErr != nil {
		return nil, s.VoteErr
	}
	if !col.Valid() {
		return nil, fmt.Errorf("vote: %w", models.ErrUnknownVoteColumn)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.facts {
		if s.facts[i].ID == fact.ID {
			s.facts[i] = s.facts[i].WithVote(col)
			f := s.facts[i]
			return &f, nil
		}
	}
	return nil, fmt.Errorf("vote %s: %w", fact.ID, models.ErrFactNotFound)
}
