package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskpilot/taskpilot-web/internal/gateway"
	"github.com/taskpilot/taskpilot-web/internal/session"
)

func serveHealth(t *testing.T, h *HealthHandler, path string) (*httptest.ResponseRecorder, HealthResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.RegisterRoutes(r)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return rr, body
}

func TestHealthCheck_MemoryStore(t *testing.T) {
	h := NewHealthHandler("taskpilot-web", "1.2.3", session.NewMemoryStore(time.Hour), gateway.New(gateway.Options{BaseURL: "http://api"}).Metrics())

	for _, path := range []string{"/health", "/healthz"} {
		rr, body := serveHealth(t, h, path)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "healthy", body.Status)
		assert.Equal(t, "up", body.Sessions)
		assert.Equal(t, "1.2.3", body.Version)
		assert.Zero(t, body.Upstream.Calls)
	}
}

func TestHealthCheck_RedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	h := NewHealthHandler("taskpilot-web", "1.2.3", session.NewRedisStore(client, time.Hour), nil)

	rr, body := serveHealth(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "up", body.Sessions)

	mr.Close()
	rr, body = serveHealth(t, h, "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "down", body.Sessions)
}

func TestHealthCheck_NoStore(t *testing.T) {
	_, body := serveHealth(t, NewHealthHandler("svc", "v", nil, nil), "/health")
	assert.Equal(t, "disabled", body.Sessions)
}
