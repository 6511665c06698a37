package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taskdeck/api/internal/api/shared"
	"github.com/taskdeck/api/internal/domain"
	"github.com/taskdeck/api/internal/platform/logger"
	"github.com/taskdeck/api/internal/store"
)

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskStore store.TaskStore, logger *slog.Logger) *TaskHandler {
	if taskStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskStore cannot be nil for TaskHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskHandler{
		taskStore: taskStore,
		logger:    logger.With(slog.String("component", "task_handler")),
	}
}

// getPathTaskID extracts the numeric task ID from the URL path.
// Returns a domain.ErrInvalidID wrapped error for missing or non-numeric values.
func getPathTaskID(r *http.Request) (int64, error) {
	pathID := chi.URLParam(r, "id")
	if pathID == "" {
		return 0, fmt.Errorf("%w: id is required", domain.ErrInvalidID)
	}

	id, err := strconv.ParseInt(pathID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a valid task ID", domain.ErrInvalidID, pathID)
	}

	return id, nil
}

// Create handles POST /api/tasks requests.
// Validation runs before any store access: an empty or whitespace-only
// title short-circuits with 400.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Debug("create task validation failed", "error", err)
		HandleAPIError(w, r, domain.ErrEmptyTaskTitle, "")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		log.Debug("create task rejected: whitespace-only title")
		HandleAPIError(w, r, domain.ErrEmptyTaskTitle, "")
		return
	}

	task, err := h.taskStore.Create(r.Context(), req.Title)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	log.Debug("task created", slog.Int64("task_id", task.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// List handles GET /api/tasks requests.
// Tasks are returned ordered by ID descending, most recently created first.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskStore.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}

	// Serialize the empty case as [] rather than null.
	if tasks == nil {
		tasks = []*domain.Task{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// Get handles GET /api/tasks/{id} requests.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathTaskID(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.taskStore.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Update handles PUT /api/tasks/{id} requests.
// Supplied fields are merged over the stored row; omitted fields are left
// unchanged and not validated. A provided-but-empty title is rejected
// before any store access.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathTaskID(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		log.Debug("update task rejected: empty title", slog.Int64("task_id", id))
		HandleAPIError(w, r, domain.ErrEmptyTaskTitle, "")
		return
	}

	task, err := h.taskStore.Update(r.Context(), id, req.Title, req.Completed)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}

	log.Debug("task updated", slog.Int64("task_id", task.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Delete handles DELETE /api/tasks/{id} requests.
// Responds 204 with an empty body on success.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathTaskID(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.taskStore.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}

	log.Debug("task deleted", slog.Int64("task_id", id))
	w.WriteHeader(http.StatusNoContent)
}
