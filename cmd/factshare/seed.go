package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"factshare/internal/config"
	"factshare/internal/database"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the starter facts into an empty Postgres database",
	RunE: func(cmd *cobra.Command, args []string) error {
		setupLogger(os.Stdout)

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.Backend != config.BackendPostgres {
			return errors.New("seed only supports the postgres backend")
		}

		be, err := openBackend(cfg)
		if err != nil {
			return err
		}
		defer be.Close()

		if err := database.Seed(be.db); err != nil {
			return err
		}
		slog.Info("seed complete")
		return nil
	},
}
