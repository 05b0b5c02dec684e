package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/rueidis"

	"task-sheet-manager.com/task-sheet-manager/internal/logging"
)

// RateLimiter allows limit requests per client IP and window, counted in
// process memory.
func RateLimiter(limit int, window time.Duration) echo.MiddlewareFunc {
	limiter := newMemoryLimiter(limit, window)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.allow(c.RealIP(), time.Now()) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}

type bucket struct {
	count int
	start time.Time
}

// memoryLimiter is a fixed-window counter per key. Expired buckets are
// swept at most once per window so idle clients do not accumulate.
type memoryLimiter struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	buckets   map[string]*bucket
	lastSweep time.Time
}

func newMemoryLimiter(limit int, window time.Duration) *memoryLimiter {
	return &memoryLimiter{
		limit:     limit,
		window:    window,
		buckets:   make(map[string]*bucket),
		lastSweep: time.Now(),
	}
}

func (l *memoryLimiter) allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > l.window {
		for k, b := range l.buckets {
			if now.Sub(b.start) > l.window {
				delete(l.buckets, k)
			}
		}
		l.lastSweep = now
	}

	b, ok := l.buckets[key]
	if !ok || now.Sub(b.start) > l.window {
		b = &bucket{start: now}
		l.buckets[key] = b
	}
	if b.count >= l.limit {
		return false
	}
	b.count++
	return true
}

// Counter increments a counter that expires after window.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisCounter is a fixed-window Counter shared by every instance that
// talks to the same Redis.
type RedisCounter struct {
	client rueidis.Client
	prefix string
}

func NewRedisCounter(client rueidis.Client, prefix string) *RedisCounter {
	return &RedisCounter{client: client, prefix: prefix}
}

func (r *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	full := r.prefix + ":" + key
	results := r.client.DoMulti(ctx,
		r.client.B().Incr().Key(full).Build(),
		r.client.B().Expire().Key(full).Seconds(int64(window/time.Second)).Build(),
	)
	count, err := results[0].AsInt64()
	if err != nil {
		return 0, fmt.Errorf("failed to increment %s: %w", full, err)
	}
	if err := results[1].Error(); err != nil {
		return 0, fmt.Errorf("failed to expire %s: %w", full, err)
	}
	return count, nil
}

// SharedRateLimiter allows limit requests per client IP and window using
// counter. Requests pass when the counter is unreachable.
func SharedRateLimiter(counter Counter, limit int, window time.Duration, logger *slog.Logger) echo.MiddlewareFunc {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logging.WithComponent(logger, "rate_limiter")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			slot := time.Now().UnixNano() / int64(window)
			key := fmt.Sprintf("%s:%d", c.RealIP(), slot)

			count, err := counter.Incr(c.Request().Context(), key, window)
			if err != nil {
				logger.Warn("rate limit counter unavailable", logging.Err(err))
				return next(c)
			}
			if count > int64(limit) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
