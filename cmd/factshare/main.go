// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for factshare. The default command runs
// the web server; "tui" opens the terminal front end and "seed" loads the
// starter facts.
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"factshare/internal/config"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "factshare",
	Short: "Browse, share and vote on short facts",
	Long: `factshare is a small board of short facts with a source link and a
category. Visitors filter by category, share new facts and vote on them.

Without a subcommand it runs the web server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadEnvFile(envFile)
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file read before the environment (ignored if missing)")
	rootCmd.AddCommand(serveCmd, tuiCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogger installs a debug-level text logger writing to w as the
// default and returns it.
func setupLogger(w io.Writer) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)
	return logger
}
