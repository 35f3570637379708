package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"factshare/internal/board"
	"factshare/internal/config"
	"factshare/internal/database"
	"factshare/internal/postgrest"
	"factshare/internal/store"
)

// backend is the configured data service plus the connection it owns.
type backend struct {
	svc board.Service
	db  *sql.DB // nil for the PostgREST backend
}

// openBackend connects to the data service selected by cfg.Backend. The
// Postgres backend is migrated before use.
func openBackend(cfg *config.Config) (*backend, error) {
	switch cfg.Backend {
	case config.BackendPostgREST:
		client, err := postgrest.New(postgrest.Config{
			BaseURL: cfg.PostgRESTURL,
			APIKey:  cfg.PostgRESTKey,
		})
		if err != nil {
			return nil, fmt.Errorf("postgrest client: %w", err)
		}
		slog.Info("using postgrest backend", "url", cfg.PostgRESTURL, "table", cfg.PostgRESTTable)
		return &backend{svc: postgrest.NewFactStore(client, cfg.PostgRESTTable)}, nil

	case config.BackendPostgres:
		db, err := database.Connect(cfg.DSN())
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		if err := database.Migrate(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		slog.Info("using postgres backend", "host", cfg.DBHost, "db", cfg.DBName)
		return &backend{svc: store.NewFactStore(db), db: db}, nil
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

func (b *backend) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}
