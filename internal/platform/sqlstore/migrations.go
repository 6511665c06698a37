package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// Goose dialects supported by the embedded migrations.
const (
	DialectSQLite   = "sqlite3"
	DialectPostgres = "postgres"
)

// RunMigrations applies the embedded schema migrations for the given goose
// dialect. It is idempotent; goose tracks applied versions in its own table.
// Callers treat a failure as fatal: the process must not serve against an
// unmigrated database.
func RunMigrations(ctx context.Context, db *sql.DB, dialect string) error {
	// A correlation ID ties together all log lines of one migration run.
	correlationID := uuid.New().String()
	log := slog.Default().With(
		"correlation_id", correlationID,
		"component", "migrations",
		"dialect", dialect,
	)

	var dir string
	switch dialect {
	case DialectSQLite:
		dir = "migrations/sqlite"
	case DialectPostgres:
		dir = "migrations/postgres"
	default:
		return fmt.Errorf("unsupported migration dialect %q", dialect)
	}

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	startTime := time.Now()
	log.Info("applying schema migrations", "dir", dir)

	if err := goose.UpContext(ctx, db, dir); err != nil {
		log.Error("schema migration failed", "error", err)
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	log.Info("schema migrations applied",
		"duration_ms", time.Since(startTime).Milliseconds())
	return nil
}
