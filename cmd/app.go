package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/joho/godotenv"

	config "task-sheet-manager.com/task-sheet-manager/internal/configs"
	"task-sheet-manager.com/task-sheet-manager/internal/instrumentation"
	"task-sheet-manager.com/task-sheet-manager/internal/logging"
	repository "task-sheet-manager.com/task-sheet-manager/internal/repositories"
	"task-sheet-manager.com/task-sheet-manager/internal/services"
	"task-sheet-manager.com/task-sheet-manager/internal/spreadsheet"
)

// app holds the process-wide dependencies shared by every command.
type app struct {
	cfg         config.Config
	logger      *slog.Logger
	provider    *instrumentation.Provider
	taskService *services.TaskService
	closers     []io.Closer
}

func newApp(ctx context.Context) (*app, error) {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.LogLevel
	logCfg.Format = cfg.LogFormat
	logCfg.FilePath = cfg.LogFile
	logCloser, err := logging.Init(logCfg)
	if err != nil {
		return nil, err
	}
	logger := slog.Default()
	if envErr != nil {
		logger.Debug(".env file not found, using environment variables")
	}

	a := &app{cfg: cfg, logger: logger, closers: []io.Closer{logCloser}}

	a.provider, err = instrumentation.NewProvider(ctx, instrumentation.Config{
		Enabled:        cfg.MetricsEnabled,
		ServiceName:    "task-sheet-manager",
		ServiceVersion: version,
	})
	if err != nil {
		a.Close(ctx)
		return nil, err
	}

	table, err := newTable(ctx, cfg)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}
	title := sheetTitle(table, cfg)
	table = spreadsheet.NewInstrumentedTable(table, cfg.StoreDriver, a.provider.Metrics(), logger)

	repo := repository.NewTaskRepository(table, cfg.ValueInput, a.provider.Metrics(), logger)
	a.taskService = services.NewTaskService(repo, services.Options{
		DeleteMode: cfg.DeleteMode,
		Location:   cfg.Location,
		Logger:     logger,
	})

	logger.Info("store ready",
		slog.String("driver", cfg.StoreDriver),
		slog.String("sheet", title),
		slog.String("delete_mode", string(cfg.DeleteMode)),
	)
	return a, nil
}

func newTable(ctx context.Context, cfg config.Config) (spreadsheet.Table, error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		return config.NewSQLiteTable(cfg)
	default:
		// The client refreshes its token with this context for the
		// process lifetime, so it must not be a request context.
		return config.NewGoogleTable(context.WithoutCancel(ctx), cfg)
	}
}

func sheetTitle(table spreadsheet.Table, cfg config.Config) string {
	if titled, ok := table.(interface{ SheetTitle() string }); ok {
		return titled.SheetTitle()
	}
	return cfg.SheetTitle
}

func (a *app) Close(ctx context.Context) {
	if a.provider != nil {
		if err := a.provider.Shutdown(ctx); err != nil {
			a.logger.Warn("metrics shutdown failed", logging.Err(err))
		}
	}
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	if err := errors.Join(errs...); err != nil {
		a.logger.Warn("close failed", logging.Err(err))
	}
}
