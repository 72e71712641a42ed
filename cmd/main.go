package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/ladder/internal/adapters/http/api"
	"github.com/okian/ladder/internal/adapters/repository"
	"github.com/okian/ladder/internal/app"
	"github.com/okian/ladder/internal/config"
	"github.com/okian/ladder/internal/domain/rating"
	"github.com/okian/ladder/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		// Logger isn't available yet, write directly to stderr
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	session := app.New(
		app.WithLogger(log.Named("session")),
		app.WithEngine(rating.NewGlicko2(rating.WithTau(cfg.Tau))),
	)

	store, err := repository.NewFileStore(repository.WithPath(cfg.StatePath))
	if err != nil {
		log.Error(ctx, "failed to open snapshot store", logger.Error(err))
		return
	}

	// Resume from the last snapshot when one exists. The import replays the
	// ledger, so the resumed ratings are rebuilt, not trusted.
	if state, err := store.Load(ctx); err == nil {
		report, err := session.ImportState(ctx, state)
		if err != nil {
			log.Error(ctx, "failed to restore snapshot", logger.Error(err))
			return
		}
		log.Info(ctx, "snapshot restored",
			logger.String("path", store.Path()),
			logger.Int("applied", report.Applied),
			logger.Int("orphaned", report.Orphaned),
		)
	} else if !errors.Is(err, repository.ErrNoSnapshot) {
		log.Error(ctx, "failed to load snapshot", logger.Error(err))
		return
	}

	// HTTP mux and routes.
	mux := http.NewServeMux()
	apiServer := api.NewServer(session, store, cfg.MaxStandingsLimit)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	// Persist the final snapshot so the next run resumes where this one
	// stopped.
	if err := store.Save(shutdownCtx, session.ExportState(shutdownCtx)); err != nil {
		log.Error(ctx, "failed to save snapshot", logger.Error(err))
	} else {
		log.Info(ctx, "snapshot saved", logger.String("path", store.Path()))
	}

	log.Info(ctx, "server stopped")
}
