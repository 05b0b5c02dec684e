// Package instrumentation records service metrics with OpenTelemetry and
// exposes them for Prometheus scraping.
//
// A disabled Provider hands out a Metrics value whose methods are no-ops,
// so callers never check whether metrics are on.
package instrumentation
