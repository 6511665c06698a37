package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/api/internal/config"
	"github.com/taskdeck/api/internal/domain"
)

// newTestServer builds a full application against a throwaway SQLite
// database and returns its router. Covers the end-to-end path: config,
// migrations, stores, handlers, and the auth gate.
func newTestServer(t *testing.T, jwtSecret string, readOnlyWithoutAuth bool) http.Handler {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			BindAddr: "127.0.0.1:0",
			LogLevel: "info",
		},
		Database: config.DatabaseConfig{
			URL: filepath.Join(t.TempDir(), "test.db"),
		},
		Auth: config.AuthConfig{
			JWTSecret:           jwtSecret,
			ReadOnlyWithoutAuth: readOnlyWithoutAuth,
		},
	}

	app, err := newApplication(cfg)
	require.NoError(t, err)
	t.Cleanup(app.Close)

	return app.setupRouter()
}

func request(t *testing.T, router http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeTask(t *testing.T, rr *httptest.ResponseRecorder) domain.Task {
	t.Helper()

	var task domain.Task
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &task))
	return task
}

func TestServerOpenMode(t *testing.T) {
	router := newTestServer(t, "", false)

	t.Run("full task lifecycle without tokens", func(t *testing.T) {
		rr := request(t, router, http.MethodPost, "/api/tasks", `{"title":"write report"}`, "")
		require.Equal(t, http.StatusCreated, rr.Code)
		created := decodeTask(t, rr)
		assert.Equal(t, "write report", created.Title)
		assert.False(t, created.Completed)

		rr = request(t, router, http.MethodGet, "/api/tasks", "", "")
		require.Equal(t, http.StatusOK, rr.Code)
		var tasks []domain.Task
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tasks))
		require.Len(t, tasks, 1)
		assert.Equal(t, created.ID, tasks[0].ID)

		rr = request(t, router, http.MethodPut, "/api/tasks/1", `{"completed":true}`, "")
		require.Equal(t, http.StatusOK, rr.Code)
		updated := decodeTask(t, rr)
		assert.True(t, updated.Completed)
		assert.Equal(t, "write report", updated.Title)

		rr = request(t, router, http.MethodDelete, "/api/tasks/1", "", "")
		require.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, rr.Body.String())

		rr = request(t, router, http.MethodGet, "/api/tasks/1", "", "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("login reports auth disabled", func(t *testing.T) {
		rr := request(t, router, http.MethodPost, "/api/login", `{"username":"u","password":"p"}`, "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "JWT not enabled on server (set JWT_SECRET to enable)", resp["error"])
	})

	t.Run("health", func(t *testing.T) {
		rr := request(t, router, http.MethodGet, "/health", "", "")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "OK", rr.Body.String())
	})
}

func TestServerAuthReadOnlyMode(t *testing.T) {
	const secret = "integration-test-secret"
	router := newTestServer(t, secret, true)

	login := func(t *testing.T) string {
		t.Helper()
		rr := request(t, router, http.MethodPost, "/api/login", `{"username":"alice","password":"pw"}`, "")
		require.Equal(t, http.StatusOK, rr.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		token, ok := resp["token"].(string)
		require.True(t, ok)
		require.NotEmpty(t, token)
		assert.Equal(t, float64(12), resp["expires_in_hours"])
		return token
	}

	t.Run("reads pass without a token", func(t *testing.T) {
		rr := request(t, router, http.MethodGet, "/api/tasks", "", "")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "[]", strings.TrimSpace(rr.Body.String()))
	})

	t.Run("writes require a token", func(t *testing.T) {
		rr := request(t, router, http.MethodPost, "/api/tasks", `{"title":"nope"}`, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)

		rr = request(t, router, http.MethodPut, "/api/tasks/1", `{"completed":true}`, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)

		rr = request(t, router, http.MethodDelete, "/api/tasks/1", "", "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("login token authorizes writes", func(t *testing.T) {
		token := login(t)

		rr := request(t, router, http.MethodPost, "/api/tasks", `{"title":"with token"}`, token)
		require.Equal(t, http.StatusCreated, rr.Code)
		created := decodeTask(t, rr)

		rr = request(t, router, http.MethodDelete, "/api/tasks/"+strconv.FormatInt(created.ID, 10), "", token)
		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		now := time.Now().UTC()
		claims := jwt.RegisteredClaims{
			Subject:   "alice",
			IssuedAt:  jwt.NewNumericDate(now.Add(-13 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-1 * time.Hour)),
			ID:        "stale",
		}
		stale, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)

		rr := request(t, router, http.MethodPost, "/api/tasks", `{"title":"late"}`, stale)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		rr := request(t, router, http.MethodPost, "/api/tasks", `{"title":"x"}`, "not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("empty credentials rejected at login", func(t *testing.T) {
		rr := request(t, router, http.MethodPost, "/api/login", `{"username":"","password":""}`, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestServerAuthStrictMode(t *testing.T) {
	router := newTestServer(t, "strict-secret", false)

	// With the read-only exemption off, even GETs need a token.
	rr := request(t, router, http.MethodGet, "/api/tasks", "", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
