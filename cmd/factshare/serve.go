package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"factshare/internal/cache"
	"factshare/internal/config"
	"factshare/internal/database"
	"factshare/internal/handlers"
	"factshare/internal/middleware"
	"factshare/internal/render"
	"factshare/internal/router"
	"factshare/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	setupLogger(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return err
	}
	slog.Info("configuration loaded", "env", cfg.Env, "addr", cfg.Addr(), "backend", cfg.Backend)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	be, err := openBackend(cfg)
	if err != nil {
		slog.Error("failed to open backend", "error", err)
		return err
	}
	defer be.Close()

	// Seed development data (no-op if facts already exist).
	if cfg.IsDev() && be.db != nil {
		if err := database.Seed(be.db); err != nil {
			slog.Error("failed to seed database", "error", err)
			return err
		}
	}

	// Valkey only carries flash messages; the board works without it.
	secureCookies := !cfg.IsDev()
	var sessions *session.Store
	valkey, err := cache.ConnectValkey(ctx, cfg.ValkeyAddr(), cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, flash messages disabled", "addr", cfg.ValkeyAddr(), "error", err)
	} else {
		defer valkey.Close()
		sessions = session.NewStore(valkey, secureCookies)
	}

	renderer, err := render.New()
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		return err
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitWrites, cfg.RateLimitWindow)
	defer limiter.Stop()

	facts := handlers.NewFacts(renderer, sessions, be.svc)
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.New(sessions, facts, limiter, secureCookies),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutdown signal received")

		// Give active requests up to 30 seconds to complete.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server stopped with error", "error", err)
		return err
	}
	slog.Info("server stopped gracefully")
	return nil
}
