package middleware

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/fetchkit/logger"
)

// quietPaths are probe endpoints polled often enough that logging them
// drowns the fixture traffic.
var quietPaths = map[string]bool{"/health": true, "/ready": true, "/alive": true}

// RequestLogger logs one line per request: 5xx at error, 4xx at warn and
// the rest at debug. The request and trace IDs are attached when present.
func RequestLogger(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if quietPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)

			fields := map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      sw.status,
				"duration_ms": time.Since(start).Milliseconds(),
			}
			if id := r.Header.Get(HeaderRequestID); id != "" {
				fields["request_id"] = id
			}
			if sc := trace.SpanContextFromContext(r.Context()); sc.HasTraceID() {
				fields["trace_id"] = sc.TraceID().String()
			}

			switch {
			case sw.status >= 500:
				log.Error("Request completed", fields)
			case sw.status >= 400:
				log.Warn("Request completed", fields)
			default:
				log.Debug("Request completed", fields)
			}
		})
	}
}
