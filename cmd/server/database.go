package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	// SQL drivers registered for the two supported backends.
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/taskdeck/api/internal/config"
	"github.com/taskdeck/api/internal/platform/sqlstore"
)

// resolveDriver picks the SQL driver from the connection string. Anything
// that is not a postgres URL is treated as a SQLite file path; the
// sqlite:// prefix from older deployment configs is accepted and stripped.
func resolveDriver(url string) (driver, dsn, dialect string) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return "pgx", url, sqlstore.DialectPostgres
	default:
		path := strings.TrimPrefix(url, "sqlite://")
		if !strings.Contains(path, "?") {
			// Wait out writer contention instead of failing with SQLITE_BUSY.
			path += "?_busy_timeout=5000"
		}
		return "sqlite3", path, sqlstore.DialectSQLite
	}
}

// openDatabase establishes a connection pool to the configured database and
// verifies connectivity. Returns the pool and the goose dialect matching the
// selected driver.
func openDatabase(cfg *config.Config, logger *slog.Logger) (*sql.DB, string, error) {
	driver, dsn, dialect := resolveDriver(cfg.Database.URL)

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established", "driver", driver)
	return db, dialect, nil
}
