package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	middleware "task-sheet-manager.com/task-sheet-manager/internal/http/middlewares"
	"task-sheet-manager.com/task-sheet-manager/internal/http/validators"
	"task-sheet-manager.com/task-sheet-manager/internal/instrumentation"
)

type RouteOptions struct {
	RateLimitPerMinute int

	// Counter, when set, shares the rate limit across instances.
	Counter        middleware.Counter
	Metrics        *instrumentation.Metrics
	MetricsHandler http.Handler
	Health         *Health
	Logger         *slog.Logger
}

// Register wires the task API, probes and the metrics endpoint onto e.
func Register(e *echo.Echo, h *Handler, opts RouteOptions) {
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validators.New()
	e.HTTPErrorHandler = ErrorHandler(opts.Logger)

	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(opts.Logger, opts.Metrics))

	health := opts.Health
	if health == nil {
		health = NewHealth()
	}
	e.GET("/healthz", health.Liveness)
	e.GET("/readyz", health.Readiness)
	if opts.MetricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(opts.MetricsHandler))
	}

	limiter := middleware.RateLimiter(opts.RateLimitPerMinute, time.Minute)
	if opts.Counter != nil {
		limiter = middleware.SharedRateLimiter(opts.Counter, opts.RateLimitPerMinute, time.Minute, opts.Logger)
	}

	api := e.Group("/api", limiter)
	api.GET("/tasks", h.ListTasks)
	api.POST("/tasks", h.CreateTask)
	api.GET("/tasks/stats", h.Stats)
	api.GET("/tasks/chart", h.Chart)
	api.GET("/tasks/:id", h.GetTask)
	api.PUT("/tasks/:id", h.UpdateTask)
	api.PATCH("/tasks/:id", h.UpdateTask)
	api.DELETE("/tasks/:id", h.DeleteTask)
}
