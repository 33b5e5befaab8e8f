package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticModelStatus bool

func (s staticModelStatus) ModelLoaded() bool { return bool(s) }

func serveHealth(t *testing.T, h *HealthHandler, path string) (*httptest.ResponseRecorder, HealthStatus) {
	t.Helper()

	router := gin.New()
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)

	req, _ := http.NewRequest("GET", path, http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var status HealthStatus
	if path == "/health" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	}
	return w, status
}

func TestHealthHandler_Health(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("healthy when no dependencies", func(t *testing.T) {
		w, status := serveHealth(t, NewHealthHandler(nil, nil), "/health")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "healthy", status.Status)
		assert.Equal(t, "not configured", status.Components["model"])
		assert.Equal(t, "not configured", status.Components["redis"])
	})

	t.Run("reports unloaded model as healthy", func(t *testing.T) {
		w, status := serveHealth(t, NewHealthHandler(staticModelStatus(false), nil), "/health")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "unloaded", status.Components["model"])
	})

	t.Run("reports loaded model", func(t *testing.T) {
		_, status := serveHealth(t, NewHealthHandler(staticModelStatus(true), nil), "/health")

		assert.Equal(t, "loaded", status.Components["model"])
	})

	t.Run("unhealthy when redis is unreachable", func(t *testing.T) {
		client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
		defer client.Close()

		w, status := serveHealth(t, NewHealthHandler(staticModelStatus(true), client), "/health")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "unhealthy", status.Status)
		assert.Contains(t, status.Components["redis"], "error")
	})
}

func TestHealthHandler_Ready(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("ready without redis", func(t *testing.T) {
		w, _ := serveHealth(t, NewHealthHandler(staticModelStatus(false), nil), "/ready")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "ready")
	})

	t.Run("not ready when redis is unreachable", func(t *testing.T) {
		client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
		defer client.Close()

		w, _ := serveHealth(t, NewHealthHandler(nil, client), "/ready")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "redis unreachable")
	})
}
