package instrumentation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	attrMethod    = "method"
	attrRoute     = "route"
	attrStatus    = "status"
	attrOperation = "operation"
	attrBackend   = "backend"
)

// Metrics provides methods for recording service metrics.
type Metrics struct {
	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram

	storeOperationsTotal   metric.Int64Counter
	storeOperationDuration metric.Float64Histogram

	headerRewritesTotal metric.Int64Counter
}

// NewMetrics creates all instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	m.httpRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	m.httpRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}

	m.storeOperationsTotal, err = meter.Int64Counter(
		"sheet_operations_total",
		metric.WithDescription("Total number of backing sheet operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet_operations_total counter: %w", err)
	}

	m.storeOperationDuration, err = meter.Float64Histogram(
		"sheet_operation_duration_seconds",
		metric.WithDescription("Backing sheet operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet_operation_duration_seconds histogram: %w", err)
	}

	m.headerRewritesTotal, err = meter.Int64Counter(
		"sheet_header_rewrites_total",
		metric.WithDescription("Number of times the sheet header row was rewritten"),
		metric.WithUnit("{rewrite}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet_header_rewrites_total counter: %w", err)
	}

	return m, nil
}

// RecordHTTPRequest records one request. route is the registered path
// pattern, not the raw URL, to keep cardinality bounded.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, route string, statusCode int, duration time.Duration) {
	if m == nil || m.httpRequestsTotal == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrMethod, method),
		attribute.String(attrRoute, route),
		attribute.String(attrStatus, strconv.Itoa(statusCode)),
	)
	m.httpRequestsTotal.Add(ctx, 1, attrs)
	m.httpRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordStoreOperation records one backing store call.
//
// Parameters:
//   - backend: "sheets" or "sqlite"
//   - operation: get, update, append, clear, delete_rows
//   - status: "success" or "error"
func (m *Metrics) RecordStoreOperation(ctx context.Context, backend, operation, status string, duration time.Duration) {
	if m == nil || m.storeOperationsTotal == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrBackend, backend),
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	)
	m.storeOperationsTotal.Add(ctx, 1, attrs)
	m.storeOperationDuration.Record(ctx, duration.Seconds(), attrs)
}

func (m *Metrics) RecordHeaderRewrite(ctx context.Context) {
	if m == nil || m.headerRewritesTotal == nil {
		return
	}
	m.headerRewritesTotal.Add(ctx, 1)
}
