// Package logging provides slog setup and attribute helpers so that log
// lines across the service use the same keys.
//
//	logger := logging.WithOperation(slog.Default(), "tasks.update")
//	logger.Info("task updated", logging.TaskID(id), logging.Status(logging.StatusSuccess))
//
// Init configures the default logger, optionally writing to a rotating
// file through lumberjack.
package logging
