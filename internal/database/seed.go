package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// starterFacts fills an empty board so a fresh install has something to
// vote on.
var starterFacts = []struct {
	text, source, category string
}{
	{
		"React is being developed by Meta (formerly Facebook)",
		"https://opensource.fb.com/",
		"technology",
	},
	{
		"Millennial dads spend 3 times as much time with their kids than their fathers spent with them.",
		"https://www.mother.ly/parenting/millennial-dads-spend-more-time-with-their-kids",
		"society",
	},
	{
		"Lisbon is the capital of Portugal",
		"https://en.wikipedia.org/wiki/Lisbon",
		"society",
	},
	{
		"Honey found in ancient Egyptian tombs was still edible after thousands of years",
		"https://www.smithsonianmag.com/science-nature/the-science-behind-honeys-eternal-shelf-life-1218690/",
		"history",
	},
	{
		"Ostriches can run faster than horses",
		"https://en.wikipedia.org/wiki/Common_ostrich",
		"science",
	},
}

// Seed populates an empty facts table with starter data. It is a no-op
// when any fact already exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM facts").Scan(&count); err != nil {
		return fmt.Errorf("seed check facts: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	for _, f := range starterFacts {
		_, err := tx.Exec(
			`INSERT INTO facts (text, source, category) VALUES ($1, $2, $3)`,
			f.text, f.source, f.category,
		)
		if err != nil {
			return fmt.Errorf("seed insert fact: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with starter facts", "count", len(starterFacts))
	return nil
}
