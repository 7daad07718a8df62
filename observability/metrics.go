package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records request, schema validation and error counts. Both the
// fetch client and the server middleware feed the same instruments,
// separated by the service attribute.
type Metrics struct {
	requests    metric.Int64Counter
	latency     metric.Float64Histogram
	inflight    metric.Int64UpDownCounter
	validations metric.Int64Counter
	validateDur metric.Float64Histogram
	errors      metric.Int64Counter
}

// NewMetrics creates the instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	var (
		m   Metrics
		err error
	)
	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&m.requests, "fetchkit.requests", "Completed requests"},
		{&m.validations, "fetchkit.validations", "Schema validations run on response bodies"},
		{&m.errors, "fetchkit.errors", "Failed requests by error code"},
	}
	for _, c := range counters {
		if *c.dst, err = meter.Int64Counter(c.name, metric.WithDescription(c.desc)); err != nil {
			return nil, fmt.Errorf("observability: %s: %w", c.name, err)
		}
	}

	histograms := []struct {
		dst  *metric.Float64Histogram
		name string
		desc string
	}{
		{&m.latency, "fetchkit.request.duration", "Request latency"},
		{&m.validateDur, "fetchkit.validation.duration", "Schema validation latency"},
	}
	for _, h := range histograms {
		if *h.dst, err = meter.Float64Histogram(h.name, metric.WithDescription(h.desc), metric.WithUnit("s")); err != nil {
			return nil, fmt.Errorf("observability: %s: %w", h.name, err)
		}
	}

	if m.inflight, err = meter.Int64UpDownCounter("fetchkit.requests.active",
		metric.WithDescription("Requests in flight")); err != nil {
		return nil, fmt.Errorf("observability: fetchkit.requests.active: %w", err)
	}
	return &m, nil
}

// RecordRequestStart marks a request as in flight.
func (m *Metrics) RecordRequestStart(ctx context.Context) {
	m.inflight.Add(ctx, 1)
}

// RecordRequestEnd closes a request opened with RecordRequestStart. status
// is the HTTP status code, or "error"/"cancelled" when none was received.
func (m *Metrics) RecordRequestEnd(ctx context.Context, service, method, status string, d time.Duration) {
	base := []attribute.KeyValue{
		attribute.String("service", service),
		attribute.String("method", method),
	}
	m.inflight.Add(ctx, -1)
	m.requests.Add(ctx, 1, metric.WithAttributes(append(base, attribute.String("status", status))...))
	m.latency.Record(ctx, d.Seconds(), metric.WithAttributes(base...))
}

// RecordValidation counts one run of the After pipeline. result is "ok" or
// "mismatch".
func (m *Metrics) RecordValidation(ctx context.Context, service, result string, d time.Duration) {
	svc := attribute.String("service", service)
	m.validations.Add(ctx, 1, metric.WithAttributes(svc, attribute.String("result", result)))
	m.validateDur.Record(ctx, d.Seconds(), metric.WithAttributes(svc))
}

// RecordError counts a failed request under its error code.
func (m *Metrics) RecordError(ctx context.Context, code, component string) {
	m.errors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("code", code),
		attribute.String("component", component),
	))
}
