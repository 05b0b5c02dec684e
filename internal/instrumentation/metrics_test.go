package instrumentation

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collectNames(t *testing.T, reader *sdkmetric.ManualReader) map[string]bool {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	names := map[string]bool{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			names[m.Name] = true
		}
	}
	return names
}

func TestMetrics_Record(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer provider.Shutdown(context.Background())

	m, err := NewMetrics(provider.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordHTTPRequest(ctx, http.MethodGet, "/api/tasks", http.StatusOK, 15*time.Millisecond)
	m.RecordStoreOperation(ctx, "sqlite", "get", "success", 2*time.Millisecond)
	m.RecordHeaderRewrite(ctx)

	names := collectNames(t, reader)
	for _, want := range []string{
		"http_requests_total",
		"http_request_duration_seconds",
		"sheet_operations_total",
		"sheet_operation_duration_seconds",
		"sheet_header_rewrites_total",
	} {
		assert.True(t, names[want], "missing metric %s", want)
	}
}

func TestMetrics_ZeroValueIsNoop(t *testing.T) {
	var nilMetrics *Metrics
	ctx := context.Background()

	assert.NotPanics(t, func() {
		nilMetrics.RecordHTTPRequest(ctx, "GET", "/", 200, time.Second)
		(&Metrics{}).RecordStoreOperation(ctx, "sheets", "get", "error", time.Second)
		(&Metrics{}).RecordHeaderRewrite(ctx)
	})
}

func TestProvider_Disabled(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Enabled: false})
	require.NoError(t, err)

	assert.False(t, p.Enabled())
	assert.Nil(t, p.Handler())
	assert.NotNil(t, p.Metrics())
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestProvider_ServesPrometheus(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{
		Enabled:        true,
		ServiceName:    "task-sheet-manager",
		ServiceVersion: "test",
	})
	require.NoError(t, err)
	defer p.Shutdown(context.Background())

	p.Metrics().RecordStoreOperation(context.Background(), "sheets", "get", "success", time.Millisecond)

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(body), "sheet_operations_total")
}
