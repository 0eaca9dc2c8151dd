package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tasktrack-api/internal/api"
	"github.com/phrazzld/tasktrack-api/internal/api/shared"
	"github.com/phrazzld/tasktrack-api/internal/domain"
	"github.com/phrazzld/tasktrack-api/internal/platform/memory"
	"github.com/phrazzld/tasktrack-api/internal/service"
)

func newTaskHandler(t *testing.T) *api.TaskHandler {
	t.Helper()
	return api.NewTaskHandler(service.NewTaskService(memory.NewTaskStore(), nil))
}

// taskRequest issues an authenticated request against a handler func,
// injecting the owner into the context and taskID (when non-nil) as the
// chi id path parameter.
func taskRequest(
	t *testing.T,
	handler http.HandlerFunc,
	method, target string,
	owner uuid.UUID,
	taskID *uuid.UUID,
	body any,
) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, owner)

	if taskID != nil {
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("id", taskID.String())
		ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)
	}

	w := httptest.NewRecorder()
	handler(w, req.WithContext(ctx))
	return w
}

func validTask() api.TaskRequest {
	return api.TaskRequest{
		Name:        "Buy milk",
		Description: "2 liters, whole",
		Priority:    3,
		Status:      "pending",
	}
}

func createTask(t *testing.T, h *api.TaskHandler, owner uuid.UUID, req api.TaskRequest) domain.Task {
	t.Helper()
	w := taskRequest(t, h.Create, http.MethodPost, "/api/tasks", owner, nil, req)
	require.Equal(t, http.StatusCreated, w.Code)
	var task domain.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	return task
}

func TestTaskHandlerCreate(t *testing.T) {
	t.Parallel()

	t.Run("returns 201 with the created task", func(t *testing.T) {
		t.Parallel()
		h := newTaskHandler(t)
		owner := uuid.New()

		task := createTask(t, h, owner, validTask())
		assert.Equal(t, "Buy milk", task.Name)
		assert.Equal(t, 3, task.Priority)
		assert.Equal(t, domain.TaskStatusPending, task.Status)
		assert.NotEqual(t, uuid.Nil, task.ID)
		assert.False(t, task.CreatedOn.IsZero())
	})

	t.Run("returns 400 for invalid payloads", func(t *testing.T) {
		t.Parallel()
		h := newTaskHandler(t)
		owner := uuid.New()

		cases := []struct {
			name   string
			mutate func(*api.TaskRequest)
		}{
			{"missing name", func(r *api.TaskRequest) { r.Name = "" }},
			{"zero priority", func(r *api.TaskRequest) { r.Priority = 0 }},
			{"unknown status", func(r *api.TaskRequest) { r.Status = "paused" }},
		}
		for _, tc := range cases {
			req := validTask()
			tc.mutate(&req)
			w := taskRequest(t, h.Create, http.MethodPost, "/api/tasks", owner, nil, req)
			assert.Equal(t, http.StatusBadRequest, w.Code, tc.name)
		}
	})

	t.Run("returns 401 without an authenticated user", func(t *testing.T) {
		t.Parallel()
		h := newTaskHandler(t)

		payload, err := json.Marshal(validTask())
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/tasks", bytes.NewReader(payload))
		w := httptest.NewRecorder()
		h.Create(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestTaskHandlerList(t *testing.T) {
	t.Parallel()

	t.Run("returns the owner's tasks sorted by priority descending", func(t *testing.T) {
		t.Parallel()
		h := newTaskHandler(t)
		owner := uuid.New()

		for _, p := range []int{2, 5, 1} {
			req := validTask()
			req.Priority = p
			createTask(t, h, owner, req)
		}

		w := taskRequest(t, h.List, http.MethodGet, "/api/tasks", owner, nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var tasks []domain.Task
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
		require.Len(t, tasks, 3)
		assert.Equal(t, []int{5, 2, 1}, []int{tasks[0].Priority, tasks[1].Priority, tasks[2].Priority})
	})

	t.Run("honors sort and filter query parameters", func(t *testing.T) {
		t.Parallel()
		h := newTaskHandler(t)
		owner := uuid.New()

		done := validTask()
		done.Status = "done"
		done.Priority = 1
		createTask(t, h, owner, done)
		createTask(t, h, owner, validTask())

		w := taskRequest(t, h.List, http.MethodGet, "/api/tasks?status=done", owner, nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var tasks []domain.Task
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
		require.Len(t, tasks, 1)
		assert.Equal(t, domain.TaskStatusDone, tasks[0].Status)

		w = taskRequest(t, h.List, http.MethodGet, "/api/tasks?sort_by=priority&order=asc", owner, nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
		require.Len(t, tasks, 2)
		assert.Equal(t, 1, tasks[0].Priority)
	})

	t.Run("returns an empty array for an owner with no tasks", func(t *testing.T) {
		t.Parallel()
		h := newTaskHandler(t)

		w := taskRequest(t, h.List, http.MethodGet, "/api/tasks", uuid.New(), nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})
}

func TestTaskHandlerGet(t *testing.T) {
	t.Parallel()

	t.Run("returns the task", func(t *testing.T) {
		t.Parallel()
		h := newTaskHandler(t)
		owner := uuid.New()
		task := createTask(t, h, owner, validTask())

		w := taskRequest(t, h.Get, http.MethodGet, "/api/tasks/"+task.ID.String(), owner, &task.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var got domain.Task
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, task.ID, got.ID)
	})

	t.Run("returns 404 for another owner's task", func(t *testing.T) {
		t.Parallel()
		h := newTaskHandler(t)
		task := createTask(t, h, uuid.New(), validTask())

		w := taskRequest(t, h.Get, http.MethodGet, "/api/tasks/"+task.ID.String(), uuid.New(), &task.ID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("returns 404 for a malformed task ID", func(t *testing.T) {
		t.Parallel()
		h := newTaskHandler(t)
		owner := uuid.New()

		req := httptest.NewRequest(http.MethodGet, "/api/tasks/not-a-uuid", nil)
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("id", "not-a-uuid")
		ctx := context.WithValue(req.Context(), shared.UserIDContextKey, owner)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)

		w := httptest.NewRecorder()
		h.Get(w, req.WithContext(ctx))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTaskHandlerUpdate(t *testing.T) {
	t.Parallel()

	t.Run("returns 200 with the updated task", func(t *testing.T) {
		t.Parallel()
		h := newTaskHandler(t)
		owner := uuid.New()
		task := createTask(t, h, owner, validTask())

		update := api.TaskRequest{Name: "Buy oat milk", Priority: 4, Status: "done"}
		w := taskRequest(t, h.Update, http.MethodPatch, "/api/tasks/"+task.ID.String(), owner, &task.ID, update)
		require.Equal(t, http.StatusOK, w.Code)

		var got domain.Task
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "Buy oat milk", got.Name)
		assert.Equal(t, domain.TaskStatusDone, got.Status)
		assert.Equal(t, task.CreatedOn, got.CreatedOn)
	})

	t.Run("returns 404 for another owner's task", func(t *testing.T) {
		t.Parallel()
		h := newTaskHandler(t)
		task := createTask(t, h, uuid.New(), validTask())

		w := taskRequest(t, h.Update, http.MethodPatch, "/api/tasks/"+task.ID.String(), uuid.New(), &task.ID, validTask())
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("returns 400 for an invalid payload", func(t *testing.T) {
		t.Parallel()
		h := newTaskHandler(t)
		owner := uuid.New()
		task := createTask(t, h, owner, validTask())

		bad := validTask()
		bad.Status = "paused"
		w := taskRequest(t, h.Update, http.MethodPatch, "/api/tasks/"+task.ID.String(), owner, &task.ID, bad)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTaskHandlerDelete(t *testing.T) {
	t.Parallel()

	t.Run("returns 204 and removes the task", func(t *testing.T) {
		t.Parallel()
		h := newTaskHandler(t)
		owner := uuid.New()
		task := createTask(t, h, owner, validTask())

		w := taskRequest(t, h.Delete, http.MethodDelete, "/api/tasks/"+task.ID.String(), owner, &task.ID, nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = taskRequest(t, h.Get, http.MethodGet, "/api/tasks/"+task.ID.String(), owner, &task.ID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("returns 404 for another owner's task", func(t *testing.T) {
		t.Parallel()
		h := newTaskHandler(t)
		alice := uuid.New()
		task := createTask(t, h, alice, validTask())

		w := taskRequest(t, h.Delete, http.MethodDelete, "/api/tasks/"+task.ID.String(), uuid.New(), &task.ID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = taskRequest(t, h.Get, http.MethodGet, "/api/tasks/"+task.ID.String(), alice, &task.ID, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
