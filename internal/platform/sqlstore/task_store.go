// Package sqlstore implements the store interfaces on top of database/sql.
// The SQL sticks to the subset shared by SQLite and PostgreSQL; $N
// placeholders bind positionally under both drivers as long as each
// parameter appears once and in order.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taskdeck/api/internal/domain"
	"github.com/taskdeck/api/internal/platform/logger"
	"github.com/taskdeck/api/internal/store"
)

// createdAtFormat matches SQLite's datetime('now') text representation,
// which existing task rows were written with.
const createdAtFormat = "2006-01-02 15:04:05"

// TaskStore implements the store.TaskStore interface using a SQL database
// as the storage backend.
type TaskStore struct {
	db       store.DBTX
	logger   *slog.Logger
	timeFunc func() time.Time // Injectable for testing
}

// NewTaskStore creates a new SQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized
// and managed by the caller. If logger is nil, a default logger will be used.
func NewTaskStore(db store.DBTX, logger *slog.Logger) *TaskStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		db:       db,
		logger:   logger.With(slog.String("component", "task_store")),
		timeFunc: time.Now,
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// Create implements store.TaskStore.Create
// It inserts a new row with completed=false and a store-assigned ID and
// creation timestamp, handling domain validation internally.
func (s *TaskStore) Create(ctx context.Context, title string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(title)
	if err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()))
		return nil, err
	}

	createdAt := s.timeFunc().UTC().Format(createdAtFormat)

	query := `
		INSERT INTO tasks (title, completed, created_at)
		VALUES ($1, $2, $3)
		RETURNING id, title, completed, created_at
	`

	err = s.db.QueryRowContext(ctx, query, task.Title, task.Completed, createdAt).
		Scan(&task.ID, &task.Title, &task.Completed, &task.CreatedAt)
	if err != nil {
		log.Error("failed to create task", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	log.Info("task created successfully", slog.Int64("task_id", task.ID))
	return task, nil
}

// List implements store.TaskStore.List
// It retrieves all tasks ordered by ID descending.
func (s *TaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, completed, created_at
		FROM tasks
		ORDER BY id DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tasks := []*domain.Task{}
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(&task.ID, &task.Title, &task.Completed, &task.CreatedAt); err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", slog.String("error", err.Error()))
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	return tasks, nil
}

// GetByID implements store.TaskStore.GetByID
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *TaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, completed, created_at
		FROM tasks
		WHERE id = $1
	`

	var task domain.Task
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&task.ID, &task.Title, &task.Completed, &task.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return &task, nil
}

// Update implements store.TaskStore.Update
// It reads the current row, merges the supplied fields over it, and writes
// the result back. The read-then-write is deliberately not atomic: a
// concurrent update can be overwritten with values from the stale read, and
// a concurrent delete surfaces as store.ErrTaskNotFound from the write.
func (s *TaskStore) Update(ctx context.Context, id int64, title *string, completed *bool) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	newTitle := current.Title
	if title != nil {
		newTitle = *title
	}
	newCompleted := current.Completed
	if completed != nil {
		newCompleted = *completed
	}

	merged := domain.Task{ID: id, Title: newTitle, Completed: newCompleted}
	if err := merged.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return nil, err
	}

	query := `
		UPDATE tasks
		SET title = $1, completed = $2
		WHERE id = $3
		RETURNING id, title, completed, created_at
	`

	var task domain.Task
	err = s.db.QueryRowContext(ctx, query, newTitle, newCompleted, id).
		Scan(&task.ID, &task.Title, &task.Completed, &task.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Row deleted between the read and the write.
			log.Debug("task disappeared during update", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to update task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	log.Info("task updated successfully", slog.Int64("task_id", task.ID))
	return &task, nil
}

// Delete implements store.TaskStore.Delete
// Returns store.ErrTaskNotFound if no row matched.
func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM tasks
		WHERE id = $1
	`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		log.Debug("task not found for delete", slog.Int64("task_id", id))
		return store.ErrTaskNotFound
	}

	log.Info("task deleted successfully", slog.Int64("task_id", id))
	return nil
}
