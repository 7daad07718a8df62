package middleware

import (
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/fetchkit/observability"
)

// Tracing starts an http.request span per request, continuing any trace
// propagated by the caller. When metrics is non-nil the request is also
// counted and timed under service.
func Tracing(service string, metrics *observability.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := observability.StartSpan(ctx, observability.SpanHTTPRequest,
				trace.WithSpanKind(trace.SpanKindServer))
			defer span.End()

			span.SetAttributes(
				attribute.String(observability.AttrHTTPMethod, r.Method),
				attribute.String(observability.AttrHTTPRoute, r.URL.Path),
			)
			if id := r.Header.Get(HeaderRequestID); id != "" {
				span.SetAttributes(attribute.String(observability.AttrRequestID, id))
			}

			if metrics != nil {
				metrics.RecordRequestStart(ctx)
			}
			start := time.Now()
			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r.WithContext(ctx))

			span.SetAttributes(attribute.Int(observability.AttrHTTPStatusCode, sw.status))
			if sw.status >= 500 {
				span.SetStatus(codes.Error, http.StatusText(sw.status))
			}
			if metrics != nil {
				metrics.RecordRequestEnd(ctx, service, r.Method, strconv.Itoa(sw.status), time.Since(start))
			}
		})
	}
}
