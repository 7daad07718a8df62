// Package observability wires OpenTelemetry tracing and metrics.
//
//	p, err := observability.Setup(ctx, observability.Service{Name: "mockserver"}, cfg)
//	defer p.Shutdown(ctx)
//	metrics, err := p.Metrics("mockserver")
//
// The fetch client records a fetch.call span per call; the server's Tracing
// middleware records http.request spans that continue the caller's trace.
package observability
