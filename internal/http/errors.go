package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-sheet-manager.com/task-sheet-manager/internal/data_models"
	apperrors "task-sheet-manager.com/task-sheet-manager/internal/errors"
	"task-sheet-manager.com/task-sheet-manager/internal/logging"
)

// ErrorHandler renders errors as {"error", "details"} with the status of
// the error kind.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := render(err)
		if status >= http.StatusInternalServerError {
			logger.Error("request error",
				slog.String("path", c.Path()),
				slog.String("kind", string(apperrors.KindOf(err))),
				logging.Err(err),
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.Warn("failed to write error response", logging.Err(writeErr))
		}
	}
}

func render(err error) (int, dto.ErrorResponse) {
	var appErr *apperrors.Exception
	if errors.As(err, &appErr) {
		body := dto.ErrorResponse{Error: appErr.Message}
		if appErr.Err != nil {
			body.Details = appErr.Err.Error()
		}
		return apperrors.StatusCode(appErr), body
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		body := dto.ErrorResponse{Error: fmt.Sprint(httpErr.Message)}
		if httpErr.Internal != nil {
			body.Details = httpErr.Internal.Error()
		}
		return httpErr.Code, body
	}

	return http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error", Details: err.Error()}
}
