package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskdeck/api/internal/config"
	"github.com/taskdeck/api/internal/platform/sqlstore"
	"github.com/taskdeck/api/internal/service/auth"
	"github.com/taskdeck/api/internal/store"
)

// application holds the resolved dependencies for the server process.
// Everything here is built once at startup and read-only afterwards.
type application struct {
	config    *config.Config
	logger    *slog.Logger
	db        *sql.DB
	taskStore store.TaskStore
	tokens    auth.TokenService
}

// newApplication opens the database, applies migrations, and wires the
// stores and services. Any failure here is fatal: the process must not
// start serving half-initialized.
func newApplication(cfg *config.Config) (*application, error) {
	logger := slog.Default()

	db, dialect, err := openDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := sqlstore.RunMigrations(context.Background(), db, dialect); err != nil {
		_ = db.Close()
		return nil, err
	}

	var tokens auth.TokenService
	if cfg.Auth.Enabled() {
		tokens, err = auth.NewTokenService(cfg.Auth.JWTSecret)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to initialize token service: %w", err)
		}
	}

	return &application{
		config:    cfg,
		logger:    logger,
		db:        db,
		taskStore: sqlstore.NewTaskStore(db, logger),
		tokens:    tokens,
	}, nil
}

// Close releases the application's resources.
func (app *application) Close() {
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database", "error", err)
	}
}

// Run starts the HTTP server and blocks until it fails or the process
// receives SIGINT/SIGTERM, in which case it shuts down gracefully.
func (app *application) Run() error {
	srv := &http.Server{
		Addr:              app.config.Server.BindAddr,
		Handler:           app.setupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	app.logger.Info("server listening",
		"addr", app.config.Server.BindAddr,
		"auth_enabled", app.config.Auth.Enabled(),
		"read_only_without_auth", app.config.Auth.ReadOnlyWithoutAuth)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-quit:
		app.logger.Info("shutting down", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	}
}
