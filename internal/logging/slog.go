package logging

import (
	"log/slog"
	"time"
)

// Common log attribute keys.
const (
	KeyOperation = "operation"
	KeyComponent = "component"
	KeyTaskID    = "task_id"
	KeyRow       = "row"
	KeyDuration  = "duration"
	KeyStatus    = "status"
	KeyError     = "error"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// WithOperation returns a logger with the operation attribute set.
func WithOperation(logger *slog.Logger, operation string) *slog.Logger {
	return logger.With(slog.String(KeyOperation, operation))
}

// WithComponent returns a logger with the component attribute set.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With(slog.String(KeyComponent, component))
}

func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

func TaskID(id string) slog.Attr {
	return slog.String(KeyTaskID, id)
}

func Row(row int) slog.Attr {
	return slog.Int(KeyRow, row)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration(KeyDuration, d)
}

func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Err returns a slog attribute for an error. A nil error yields an empty
// group, which slog omits.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// StatusOf maps an error to StatusSuccess or StatusError.
func StatusOf(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusSuccess
}
