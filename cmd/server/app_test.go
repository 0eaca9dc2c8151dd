package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tasktrack-api/internal/config"
	"github.com/phrazzld/tasktrack-api/internal/domain"
	"github.com/phrazzld/tasktrack-api/internal/platform/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:     8080,
			LogLevel: "error",
		},
		Database: config.DatabaseConfig{
			Backend: config.BackendMemory,
		},
		Auth: config.AuthConfig{
			JWTSecret:            "integration-test-secret-32-chars!!",
			TokenLifetimeMinutes: 15,
			BcryptCost:           4,
		},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	app, err := newApplication(context.Background(), testConfig(), logger.Setup("error"))
	require.NoError(t, err)
	t.Cleanup(app.cleanup)
	return app.setupRouter()
}

func doJSON(t *testing.T, router http.Handler, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, router http.Handler, username, password string) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestTaskLifecycle(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "alice", "secret1")

	// Create
	w := doJSON(t, router, http.MethodPost, "/api/tasks", token, map[string]any{
		"name":     "Buy milk",
		"priority": 3,
		"status":   "pending",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var task domain.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	assert.Equal(t, "Buy milk", task.Name)

	taskURL := fmt.Sprintf("/api/tasks/%s", task.ID)

	// Read
	w = doJSON(t, router, http.MethodGet, taskURL, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Update
	w = doJSON(t, router, http.MethodPatch, taskURL, token, map[string]any{
		"name":     "Buy milk",
		"priority": 3,
		"status":   "done",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated domain.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, domain.TaskStatusDone, updated.Status)

	// List
	w = doJSON(t, router, http.MethodGet, "/api/tasks", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tasks []domain.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
	assert.Len(t, tasks, 1)

	// Delete
	w = doJSON(t, router, http.MethodDelete, taskURL, token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, taskURL, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTasksRequireAuthentication(t *testing.T) {
	router := newTestRouter(t)

	for _, tc := range []struct {
		method string
		target string
	}{
		{http.MethodPost, "/api/tasks"},
		{http.MethodGet, "/api/tasks"},
		{http.MethodGet, "/api/tasks/" + "00000000-0000-0000-0000-000000000001"},
		{http.MethodPatch, "/api/tasks/" + "00000000-0000-0000-0000-000000000001"},
		{http.MethodDelete, "/api/tasks/" + "00000000-0000-0000-0000-000000000001"},
	} {
		w := doJSON(t, router, tc.method, tc.target, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.target)
	}
}

func TestOwnersAreIsolated(t *testing.T) {
	router := newTestRouter(t)
	aliceToken := registerAndLogin(t, router, "alice", "secret1")
	bobToken := registerAndLogin(t, router, "bob", "secret2")

	w := doJSON(t, router, http.MethodPost, "/api/tasks", aliceToken, map[string]any{
		"name":     "Alice's task",
		"priority": 1,
		"status":   "pending",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var task domain.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))

	// Bob cannot see, change, or delete Alice's task.
	taskURL := fmt.Sprintf("/api/tasks/%s", task.ID)
	assert.Equal(t, http.StatusNotFound, doJSON(t, router, http.MethodGet, taskURL, bobToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, router, http.MethodDelete, taskURL, bobToken, nil).Code)

	w = doJSON(t, router, http.MethodGet, "/api/tasks", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestRegisterConflict(t *testing.T) {
	router := newTestRouter(t)
	registerAndLogin(t, router, "alice", "secret1")

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice",
		"password": "different1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}
