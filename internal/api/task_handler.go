package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/phrazzld/tasktrack-api/internal/api/middleware"
	"github.com/phrazzld/tasktrack-api/internal/api/shared"
	"github.com/phrazzld/tasktrack-api/internal/domain"
	"github.com/phrazzld/tasktrack-api/internal/service"
	"github.com/phrazzld/tasktrack-api/internal/store"
)

// TaskHandler handles task-related API requests. All routes require an
// authenticated user; the middleware guarantees a user ID in the context.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// Create handles POST /api/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	req, ok := decodeTaskRequest(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), ownerID, service.TaskInput{
		Name:        req.Name,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      domain.TaskStatus(req.Status),
	})
	if err != nil {
		if isValidationErr(err) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task data: "+err.Error())
			return
		}
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to create task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// List handles GET /api/tasks. Sorting and filtering come from the
// sort_by, order, and status query parameters; unrecognized values fall
// back to the defaults instead of erroring.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	query := r.URL.Query()
	opts := store.ListOptions{
		SortBy: query.Get("sort_by"),
		Order:  query.Get("order"),
		Status: query.Get("status"),
	}

	tasks, err := h.taskService.ListTasks(r.Context(), ownerID, opts)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to list tasks")
		return
	}

	// An owner with no tasks gets [], not null.
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// Get handles GET /api/tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, taskID, ok := requireOwnerAndTaskID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(r.Context(), ownerID, taskID)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
			return
		}
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to retrieve task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Update handles PATCH /api/tasks/{id}. The payload carries the complete
// mutable field set.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, taskID, ok := requireOwnerAndTaskID(w, r)
	if !ok {
		return
	}

	req, ok := decodeTaskRequest(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), ownerID, taskID, service.TaskInput{
		Name:        req.Name,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      domain.TaskStatus(req.Status),
	})
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
			return
		}
		if isValidationErr(err) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task data: "+err.Error())
			return
		}
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to update task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Delete handles DELETE /api/tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, taskID, ok := requireOwnerAndTaskID(w, r)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), ownerID, taskID); err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
			return
		}
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to delete task")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeTaskRequest parses and validates a task payload, writing the error
// response itself on failure.
func decodeTaskRequest(w http.ResponseWriter, r *http.Request) (TaskRequest, bool) {
	var req TaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return req, false
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return req, false
	}
	return req, true
}

// requireOwnerAndTaskID extracts the authenticated owner from the context
// and the task UUID from the id path parameter, writing the error response
// itself on failure. A malformed UUID can never name an existing task, so it
// reports not found.
func requireOwnerAndTaskID(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	ownerID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return uuid.Nil, uuid.Nil, false
	}

	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return uuid.Nil, uuid.Nil, false
	}

	return ownerID, taskID, true
}
