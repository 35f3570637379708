package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"factshare/internal/models"
)

// insertTestFact creates a fact with a unique source URL.
func insertTestFact(t *testing.T, s *FactStore, text, category string) *models.Fact {
	t.Helper()
	f, err := s.Insert(context.Background(), models.Draft{
		Text:     text,
		Source:   "https://example.com/" + uuid.NewString()[:8],
		Category: category,
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	return f
}

func TestFactStoreInsertAndGet(t *testing.T) {
	db := testDB(t)
	s := NewFactStore(db)
	ctx := context.Background()

	created := insertTestFact(t, s, "Ostriches can run faster than horses", "science")
	t.Cleanup(func() { cleanFacts(t, db, created.ID) })

	if created.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if created.VotesInteresting != 0 || created.VotesMkay != 0 || created.VotesFalse != 0 {
		t.Errorf("expected zero counters, got %+v", created)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	found, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found == nil {
		t.Fatal("Get returned nil for existing fact")
	}
	if found.Text != created.Text || found.Category != "science" {
		t.Errorf("Get = %+v, want %+v", found, created)
	}

	missing, err := s.Get(ctx, uuid.New())
	if err != nil {
		t.Fatalf("Get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing fact, got %+v", missing)
	}
}

func TestFactStoreListFilterAndOrder(t *testing.T) {
	db := testDB(t)
	s := NewFactStore(db)
	ctx := context.Background()

	category := "entertainment"
	low := insertTestFact(t, s, "low "+uuid.NewString()[:8], category)
	high := insertTestFact(t, s, "high "+uuid.NewString()[:8], category)
	other := insertTestFact(t, s, "other "+uuid.NewString()[:8], "finance")
	t.Cleanup(func() { cleanFacts(t, db, low.ID, high.ID, other.ID) })

	for i := 0; i < 3; i++ {
		if _, err := s.Vote(ctx, *high, models.VoteInteresting); err != nil {
			t.Fatalf("Vote: %v", err)
		}
	}

	facts, err := s.List(ctx, models.DefaultQuery(category))
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	pos := map[uuid.UUID]int{}
	for i, f := range facts {
		if f.Category != category {
			t.Errorf("List returned category %q, want %q", f.Category, category)
		}
		pos[f.ID] = i
	}
	if _, ok := pos[other.ID]; ok {
		t.Error("filtered list contains a fact from another category")
	}
	hi, okHi := pos[high.ID]
	lo, okLo := pos[low.ID]
	if !okHi || !okLo {
		t.Fatalf("expected both test facts in list, got %d rows", len(facts))
	}
	if hi > lo {
		t.Errorf("fact with more interesting votes at %d, after %d", hi, lo)
	}

	for i := 1; i < len(facts); i++ {
		if facts[i-1].VotesInteresting < facts[i].VotesInteresting {
			t.Fatalf("list not sorted by votes_interesting desc at %d", i)
		}
	}
}

func TestFactStoreListLimit(t *testing.T) {
	db := testDB(t)
	s := NewFactStore(db)

	a := insertTestFact(t, s, "limit a", "news")
	b := insertTestFact(t, s, "limit b", "news")
	t.Cleanup(func() { cleanFacts(t, db, a.ID, b.ID) })

	facts, err := s.List(context.Background(), models.Query{Category: "all", Limit: 1})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(facts) != 1 {
		t.Errorf("got %d rows, want 1", len(facts))
	}
}

func TestFactStoreVote(t *testing.T) {
	db := testDB(t)
	s := NewFactStore(db)
	ctx := context.Background()

	f := insertTestFact(t, s, "vote target", "health")
	t.Cleanup(func() { cleanFacts(t, db, f.ID) })

	updated, err := s.Vote(ctx, *f, models.VoteFalse)
	if err != nil {
		t.Fatalf("Vote: %v", err)
	}
	if updated.VotesFalse != 1 || updated.VotesInteresting != 0 || updated.VotesMkay != 0 {
		t.Errorf("Vote(false) = %+v", updated)
	}

	// Stale counters on the input do not matter.
	stale := *f
	stale.VotesFalse = 40
	updated, err = s.Vote(ctx, stale, models.VoteFalse)
	if err != nil {
		t.Fatalf("Vote stale: %v", err)
	}
	if updated.VotesFalse != 2 {
		t.Errorf("VotesFalse = %d, want 2", updated.VotesFalse)
	}
}

// TestFactStoreVoteConcurrent verifies no increment is lost when votes on
// the same counter race.
func TestFactStoreVoteConcurrent(t *testing.T) {
	db := testDB(t)
	s := NewFactStore(db)
	ctx := context.Background()

	f := insertTestFact(t, s, "concurrent votes", "technology")
	t.Cleanup(func() { cleanFacts(t, db, f.ID) })

	const n = 10
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Vote(ctx, *f, models.VoteMkay); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("Vote: %v", err)
	}

	got, err := s.Get(ctx, f.ID)
	if err != nil || got == nil {
		t.Fatalf("Get: %v", err)
	}
	if got.VotesMkay != n {
		t.Errorf("VotesMkay = %d, want %d", got.VotesMkay, n)
	}
}

func TestFactStoreVoteErrors(t *testing.T) {
	db := testDB(t)
	s := NewFactStore(db)
	ctx := context.Background()

	_, err := s.Vote(ctx, models.Fact{ID: uuid.New()}, models.VoteInteresting)
	if !errors.Is(err, models.ErrFactNotFound) {
		t.Errorf("Vote missing = %v, want ErrFactNotFound", err)
	}

	_, err = s.Vote(ctx, models.Fact{ID: uuid.New()}, models.VoteColumn("id"))
	if !errors.Is(err, models.ErrUnknownVoteColumn) {
		t.Errorf("Vote bad column = %v, want ErrUnknownVoteColumn", err)
	}
}
