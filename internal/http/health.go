package http

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	healthStatusOK           = "ok"
	healthStatusShuttingDown = "shutting down"
)

// Health serves the liveness and readiness probes.
type Health struct {
	ready     atomic.Bool
	startTime time.Time
}

func NewHealth() *Health {
	h := &Health{startTime: time.Now()}
	h.ready.Store(true)
	return h
}

// SetReady flips readiness, e.g. to drain traffic before shutdown.
func (h *Health) SetReady(ready bool) {
	h.ready.Store(ready)
}

type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime,omitempty"`
}

func (h *Health) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status: healthStatusOK,
		Uptime: time.Since(h.startTime).Round(time.Second).String(),
	})
}

func (h *Health) Readiness(c echo.Context) error {
	if !h.ready.Load() {
		return c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: healthStatusShuttingDown})
	}
	return c.JSON(http.StatusOK, HealthResponse{Status: healthStatusOK})
}
