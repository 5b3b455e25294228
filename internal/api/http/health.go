package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskpilot/taskpilot-web/internal/gateway"
	"github.com/taskpilot/taskpilot-web/internal/session"
)

type HealthResponse struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Service   string           `json:"service"`
	Version   string           `json:"version"`
	Sessions  string           `json:"sessions"`
	Upstream  gateway.Snapshot `json:"upstream"`
}

type HealthHandler struct {
	serviceName string
	version     string
	store       session.Store
	metrics     *gateway.Metrics
}

func NewHealthHandler(serviceName, version string, store session.Store, metrics *gateway.Metrics) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		store:       store,
		metrics:     metrics,
	}
}

// HealthCheck reports the session store and the upstream call counters. The
// service is "degraded" when the session store cannot be reached, since no
// one can sign in then.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	status, code := "healthy", http.StatusOK

	storeStatus := "disabled"
	if h.store != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if err := h.store.Ping(pingCtx); err != nil {
			storeStatus = "down"
			status, code = "degraded", http.StatusServiceUnavailable
		} else {
			storeStatus = "up"
		}
	}

	var upstream gateway.Snapshot
	if h.metrics != nil {
		upstream = h.metrics.Snapshot()
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		Sessions:  storeStatus,
		Upstream:  upstream,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
