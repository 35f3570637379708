// Package board coordinates the fact board: the current listing, the
// category filter, the submission form and in-flight votes. It turns user
// intents into data-service tasks and folds their results back into state.
//
// A Board is not safe for concurrent use. The intended loop is: call Begin
// (or Mount) on the owning goroutine, hand the returned Task to Run on any
// goroutine, then pass the Result back to Complete on the owning goroutine.
// Do runs the three steps inline for callers without an event loop.
package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"factshare/internal/models"
)

// Errors returned by Begin for intents that cannot start.
var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrNotInList       = errors.New("fact is not in the current list")
	ErrVoteInFlight    = errors.New("a vote for this fact is already in progress")
	ErrUploadInFlight  = errors.New("a submission is already in progress")
)

// Service is the data backend the board talks to.
type Service interface {
	List(ctx context.Context, q models.Query) ([]models.Fact, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Fact, error)
	Insert(ctx context.Context, d models.Draft) (*models.Fact, error)
	Vote(ctx context.Context, fact models.Fact, col models.VoteColumn) (*models.Fact, error)
}

// Board holds the view state for one user.
type Board struct {
	svc    Service
	logger *slog.Logger

	facts      []models.Fact
	category   string
	loading    bool
	showForm   bool
	uploading  bool
	updating   map[uuid.UUID]bool
	draft      models.Draft
	err        error
	generation uint64
}

// Option configures a Board.
type Option func(*Board)

// WithFacts seeds the list, e.g. with a single row fetched for a vote.
func WithFacts(facts []models.Fact) Option {
	return func(b *Board) {
		b.facts = append([]models.Fact(nil), facts...)
	}
}

// WithCategory sets the initial filter. Unknown names fall back to "all".
func WithCategory(category string) Option {
	return func(b *Board) {
		if validFilter(category) && category != "" {
			b.category = category
		}
	}
}

// WithFormOpen starts the board with the submission form visible.
func WithFormOpen(open bool) Option {
	return func(b *Board) { b.showForm = open }
}

// WithDraft prefills the submission form.
func WithDraft(d models.Draft) Option {
	return func(b *Board) { b.draft = d }
}

// WithLogger overrides slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(b *Board) { b.logger = l }
}

// New returns a Board backed by svc, filtered to "all" unless configured
// otherwise.
func New(svc Service, opts ...Option) *Board {
	b := &Board{
		svc:      svc,
		logger:   slog.Default(),
		category: models.CategoryAll,
		facts:    []models.Fact{},
		updating: map[uuid.UUID]bool{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func validFilter(category string) bool {
	return category == "" || category == models.CategoryAll || models.IsKnownCategory(category)
}

// Mount starts the initial fetch for the board's current category.
func (b *Board) Mount() (*Task, error) {
	return b.Begin(CategorySelected{Category: b.category})
}

// Do begins intent, runs the resulting task and completes it. It returns
// the error that ended up in State.Err, or nil.
func (b *Board) Do(ctx context.Context, intent Intent) error {
	task, err := b.Begin(intent)
	if err != nil {
		return err
	}
	if task == nil {
		return nil
	}
	b.Complete(b.Run(ctx, task))
	return b.err
}

// Run executes task against the data service. It reads no board state and
// may be called from any goroutine.
func (b *Board) Run(ctx context.Context, task *Task) Result {
	res := Result{Task: *task}
	switch task.Kind {
	case TaskFetch:
		res.Facts, res.Err = b.svc.List(ctx, task.Query)
	case TaskInsert:
		res.Fact, res.Err = b.svc.Insert(ctx, task.Draft)
		if res.Err == nil && res.Fact == nil {
			res.Err = errors.New("insert returned no row")
		}
	case TaskVote:
		res.Fact, res.Err = b.svc.Vote(ctx, task.Fact, task.Column)
		if res.Err == nil && res.Fact == nil {
			res.Err = errors.New("vote returned no row")
		}
	default:
		res.Err = fmt.Errorf("unknown task kind %d", task.Kind)
	}
	return res
}

// Begin validates intent, applies its immediate state change and returns
// the task to run, or nil when the intent needs no data-service call.
// A rejected intent is also recorded in State.Err.
func (b *Board) Begin(intent Intent) (*Task, error) {
	switch in := intent.(type) {
	case CategorySelected:
		return b.beginFetch(in.Category)
	case FormToggled:
		b.showForm = !b.showForm
		return nil, nil
	case DraftChanged:
		b.draft = in.Draft
		return nil, nil
	case FactSubmitted:
		return b.beginInsert(in.Draft)
	case VoteCast:
		return b.beginVote(in.FactID, in.Column)
	}
	return nil, b.reject(fmt.Errorf("unsupported intent %T", intent))
}

func (b *Board) beginFetch(category string) (*Task, error) {
	if category == "" {
		category = models.CategoryAll
	}
	if !validFilter(category) {
		return nil, b.reject(fmt.Errorf("%w: %q", ErrUnknownCategory, category))
	}

	b.category = category
	b.loading = true
	b.generation++

	return &Task{
		Kind:       TaskFetch,
		Generation: b.generation,
		Query:      models.DefaultQuery(category),
	}, nil
}

func (b *Board) beginInsert(d models.Draft) (*Task, error) {
	b.draft = d
	if b.uploading {
		return nil, b.reject(ErrUploadInFlight)
	}
	if err := d.Validate(); err != nil {
		return nil, b.reject(err)
	}

	b.uploading = true
	return &Task{Kind: TaskInsert, Draft: d}, nil
}

func (b *Board) beginVote(id uuid.UUID, col models.VoteColumn) (*Task, error) {
	if !col.Valid() {
		return nil, b.reject(fmt.Errorf("%w: %q", models.ErrUnknownVoteColumn, col))
	}
	if b.updating[id] {
		return nil, b.reject(ErrVoteInFlight)
	}
	i := b.indexOf(id)
	if i < 0 {
		return nil, b.reject(ErrNotInList)
	}

	b.updating[id] = true
	return &Task{Kind: TaskVote, Fact: b.facts[i], Column: col}, nil
}

// Complete folds a finished task into the state. Fetch results from a
// superseded generation are dropped.
func (b *Board) Complete(res Result) {
	switch res.Task.Kind {
	case TaskFetch:
		if res.Task.Generation != b.generation {
			b.logger.Debug("discarding stale fact listing",
				"generation", res.Task.Generation,
				"current", b.generation,
			)
			return
		}
		b.loading = false
		if res.Err != nil {
			b.fail("load facts", res.Err)
			return
		}
		b.facts = res.Facts
		if b.facts == nil {
			b.facts = []models.Fact{}
		}
		b.err = nil

	case TaskInsert:
		b.uploading = false
		if res.Err != nil {
			b.fail("submit fact", res.Err)
			return
		}
		b.facts = append([]models.Fact{*res.Fact}, b.facts...)
		b.draft = models.Draft{}
		b.showForm = false
		b.err = nil

	case TaskVote:
		id := res.Task.Fact.ID
		delete(b.updating, id)
		if res.Err != nil {
			// Adopt the row the other voter left behind.
			var conflict *models.VoteConflictError
			if errors.As(res.Err, &conflict) && conflict.Current != nil {
				if i := b.indexOf(id); i >= 0 {
					b.facts[i] = *conflict.Current
				}
			}
			b.fail("vote", res.Err)
			return
		}
		if i := b.indexOf(id); i >= 0 {
			b.facts[i] = *res.Fact
		}
		b.err = nil
	}
}

func (b *Board) reject(err error) error {
	b.err = err
	return err
}

func (b *Board) fail(op string, err error) {
	b.logger.Error("board operation failed", "op", op, "category", b.category, "error", err)
	b.err = fmt.Errorf("%s: %w", op, err)
}

func (b *Board) indexOf(id uuid.UUID) int {
	for i := range b.facts {
		if b.facts[i].ID == id {
			return i
		}
	}
	return -1
}

// Err returns the most recent failure, or nil.
func (b *Board) Err() error { return b.err }

// Snapshot returns a copy of the current state.
func (b *Board) Snapshot() State {
	updating := make(map[uuid.UUID]bool, len(b.updating))
	for id := range b.updating {
		updating[id] = true
	}
	return State{
		Facts:      append([]models.Fact(nil), b.facts...),
		Category:   b.category,
		Loading:    b.loading,
		ShowForm:   b.showForm,
		Uploading:  b.uploading,
		Updating:   updating,
		Draft:      b.draft,
		Err:        b.err,
		Generation: b.generation,
	}
}
