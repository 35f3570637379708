// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// VoteColumn names one of the three vote counters stored on a fact.
type VoteColumn string

// Vote counters, in display order.
const (
	VoteInteresting VoteColumn = "votes_interesting"
	VoteMkay        VoteColumn = "votes_mkay"
	VoteFalse       VoteColumn = "votes_false"
)

// VoteColumns lists every vote counter in display order.
var VoteColumns = []VoteColumn{VoteInteresting, VoteMkay, VoteFalse}

// Valid reports whether c is one of the three known counters.
func (c VoteColumn) Valid() bool {
	switch c {
	case VoteInteresting, VoteMkay, VoteFalse:
		return true
	}
	return false
}

// Emoji returns the button glyph shown next to the counter.
func (c VoteColumn) Emoji() string {
	switch c {
	case VoteInteresting:
		return "👍"
	case VoteMkay:
		return "🤔"
	case VoteFalse:
		return "❌"
	}
	return "?"
}

// ParseVoteColumn converts a raw column name into a VoteColumn.
func ParseVoteColumn(s string) (VoteColumn, error) {
	c := VoteColumn(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownVoteColumn, s)
	}
	return c, nil
}

// Fact is one user-submitted statement with its source and vote counters.
type Fact struct {
	ID               uuid.UUID `json:"id"`
	Text             string    `json:"text"`
	Source           string    `json:"source"`
	Category         string    `json:"category"`
	VotesInteresting int       `json:"votes_interesting"`
	VotesMkay        int       `json:"votes_mkay"`
	VotesFalse       int       `json:"votes_false"`
	CreatedAt        time.Time `json:"created_at"`
}

// IsDisputed reports whether the fact has collected more "false" votes
// than interesting and mkay votes combined.
func (f Fact) IsDisputed() bool {
	return f.VotesInteresting+f.VotesMkay < f.VotesFalse
}

// Votes returns the current value of the given counter.
func (f Fact) Votes(c VoteColumn) int {
	switch c {
	case VoteInteresting:
		return f.VotesInteresting
	case VoteMkay:
		return f.VotesMkay
	case VoteFalse:
		return f.VotesFalse
	}
	return 0
}

// WithVote returns a copy of f with the given counter incremented by one.
func (f Fact) WithVote(c VoteColumn) Fact {
	switch c {
	case VoteInteresting:
		f.VotesInteresting++
	case VoteMkay:
		f.VotesMkay++
	case VoteFalse:
		f.VotesFalse++
	}
	return f
}

// Color returns the badge color of the fact's category.
func (f Fact) Color() string {
	return CategoryColor(f.Category)
}
