package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "task-sheet-manager.com/task-sheet-manager/internal/errors"
	"task-sheet-manager.com/task-sheet-manager/internal/instrumentation"
	"task-sheet-manager.com/task-sheet-manager/internal/logging"
)

// RequestLogger logs every request and records its duration. Routes are
// labelled by their pattern, not the concrete path.
func RequestLogger(logger *slog.Logger, metrics *instrumentation.Metrics) echo.MiddlewareFunc {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logging.WithComponent(logger, "http")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			started := time.Now()
			err := next(c)
			elapsed := time.Since(started)

			status := c.Response().Status
			if err != nil {
				status = statusOf(err)
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			req := c.Request()

			metrics.RecordHTTPRequest(req.Context(), req.Method, route, status, elapsed)

			attrs := []any{
				slog.String("method", req.Method),
				slog.String("route", route),
				slog.Int("status", status),
				logging.Duration(elapsed),
			}
			switch {
			case status >= http.StatusInternalServerError:
				logger.Error("request failed", append(attrs, logging.Err(err))...)
			case err != nil:
				logger.Info("request rejected", append(attrs, logging.Err(err))...)
			default:
				logger.Debug("request served", attrs...)
			}
			return err
		}
	}
}

func statusOf(err error) int {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	return apperrors.StatusCode(err)
}
