package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"factshare/internal/board"
	"factshare/internal/config"
	"factshare/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse, share and vote from the terminal",
	Long: `Opens the fact board in the terminal. Logs go to FACTSHARE_LOG_FILE
because stdout belongs to the interface.`,
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	logger := setupLogger(logFile)

	be, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer be.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	model := tui.New(ctx, board.New(be.svc, board.WithLogger(logger)))
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
