package board

import (
	"github.com/google/uuid"

	"factshare/internal/models"
)

// Intent is a user action the board reacts to.
type Intent interface{ isIntent() }

// CategorySelected switches the filter and refetches. Use "all" or "" for
// every category.
type CategorySelected struct{ Category string }

// FormToggled opens or closes the submission form.
type FormToggled struct{}

// DraftChanged replaces the form values without submitting.
type DraftChanged struct{ Draft models.Draft }

// FactSubmitted validates and inserts a draft.
type FactSubmitted struct{ Draft models.Draft }

// VoteCast adds one vote to a fact in the current list.
type VoteCast struct {
	FactID uuid.UUID
	Column models.VoteColumn
}

func (CategorySelected) isIntent() {}
func (FormToggled) isIntent()      {}
func (DraftChanged) isIntent()     {}
func (FactSubmitted) isIntent()    {}
func (VoteCast) isIntent()         {}

// TaskKind identifies the data-service call a Task performs.
type TaskKind int

const (
	TaskFetch TaskKind = iota + 1
	TaskInsert
	TaskVote
)

func (k TaskKind) String() string {
	switch k {
	case TaskFetch:
		return "fetch"
	case TaskInsert:
		return "insert"
	case TaskVote:
		return "vote"
	}
	return "unknown"
}

// Task is one pending data-service call. It carries everything Run needs
// so Run never touches board state.
type Task struct {
	Kind       TaskKind
	Generation uint64
	Query      models.Query
	Draft      models.Draft
	Fact       models.Fact
	Column     models.VoteColumn
}

// Result is the outcome of running a Task.
type Result struct {
	Task  Task
	Facts []models.Fact
	Fact  *models.Fact
	Err   error
}

// State is a read-only copy of the board.
type State struct {
	Facts      []models.Fact
	Category   string
	Loading    bool
	ShowForm   bool
	Uploading  bool
	Updating   map[uuid.UUID]bool
	Draft      models.Draft
	Err        error
	Generation uint64
}

// IsUpdating reports whether a vote for id is in flight.
func (s State) IsUpdating(id uuid.UUID) bool {
	return s.Updating[id]
}

// Empty reports whether a finished load produced no facts.
func (s State) Empty() bool {
	return !s.Loading && len(s.Facts) == 0
}
