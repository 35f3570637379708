package models

import "errors"

// Sentinel errors shared by the data backends.
var (
	ErrFactNotFound      = errors.New("fact not found")
	ErrVoteConflict      = errors.New("vote conflicted with a concurrent update")
	ErrUnknownVoteColumn = errors.New("unknown vote column")
)

// VoteConflictError reports a vote that lost to a concurrent update.
// Current holds the row as re-read after the conflict, when available.
type VoteConflictError struct {
	Current *Fact
}

func (e *VoteConflictError) Error() string {
	return ErrVoteConflict.Error()
}

func (e *VoteConflictError) Unwrap() error { return ErrVoteConflict }

// ValidationError describes the first field of a draft that failed
// validation. Message is suitable for display.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
