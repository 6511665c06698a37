package domain

import (
	"errors"
	"strings"
)

// Common validation errors for Task
var (
	ErrEmptyTaskTitle = errors.New("title cannot be empty")
)

// Task represents a single tracked task. The store assigns ID and
// CreatedAt on insert; both are immutable afterwards.
type Task struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"created_at"`
}

// NewTask creates a new, not yet persisted Task with the given title.
// Returns an error if validation fails.
func NewTask(title string) (*Task, error) {
	task := &Task{
		Title:     title,
		Completed: false,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTaskTitle
	}

	return nil
}
