package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	config "task-sheet-manager.com/task-sheet-manager/internal/configs"
	httpapi "task-sheet-manager.com/task-sheet-manager/internal/http"
	middleware "task-sheet-manager.com/task-sheet-manager/internal/http/middlewares"
	"task-sheet-manager.com/task-sheet-manager/internal/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the task HTTP API on top of the configured sheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close(context.Background())
		cfg := a.cfg

		if _, err := a.taskService.EnsureHeaders(ctx); err != nil {
			a.logger.Warn("header check at startup failed", logging.Err(err))
		}

		opts := httpapi.RouteOptions{
			RateLimitPerMinute: cfg.RateLimit,
			Metrics:            a.provider.Metrics(),
			MetricsHandler:     a.provider.Handler(),
			Health:             httpapi.NewHealth(),
			Logger:             a.logger,
		}
		if cfg.RedisAddr != "" {
			redisClient, err := config.NewRedisClient(cfg.RedisAddr)
			if err != nil {
				return err
			}
			defer redisClient.Close()
			opts.Counter = middleware.NewRedisCounter(redisClient, "task-sheet-manager:ratelimit")
		}

		e := echo.New()
		httpapi.Register(e, httpapi.NewHandler(a.taskService), opts)

		go func() {
			a.logger.Info("HTTP server listening", slog.String("addr", cfg.AppURL))
			if err := e.Start(cfg.AppURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("server stopped", logging.Err(err))
				stop()
			}
		}()

		<-ctx.Done()
		opts.Health.SetReady(false)

		echoCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		if err := e.Shutdown(echoCtx); err != nil {
			a.logger.Warn("HTTP shutdown failed", logging.Err(err))
		}

		a.logger.Info("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
