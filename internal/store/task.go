package store

import (
	"context"

	"github.com/taskdeck/api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create inserts a new task with the given title, a store-assigned ID
	// and creation timestamp, and completed set to false.
	// Returns the full persisted record.
	// Returns domain validation errors if the title is empty.
	Create(ctx context.Context, title string) (*domain.Task, error)

	// List retrieves all tasks ordered by ID descending (most recently
	// created first). Returns an empty slice if no tasks exist.
	List(ctx context.Context) ([]*domain.Task, error)

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// Update reads the current row and writes it back with the supplied
	// fields merged in; a nil field retains the stored value. The
	// read-then-write is intentionally not atomic against concurrent
	// mutation of the same ID.
	// Returns ErrTaskNotFound if the task does not exist at read time.
	Update(ctx context.Context, id int64, title *string, completed *bool) (*domain.Task, error)

	// Delete removes the task with the given ID.
	// Returns ErrTaskNotFound if no row matched.
	Delete(ctx context.Context, id int64) error
}
