// Package server runs gin routes behind a net/http middleware chain, served
// with h2c so HTTP/2 clients work without TLS.
//
// ApplyMiddleware installs, outermost first: Recovery, RequestID, CORS,
// BodySizeLimit and RequestLogger. Anything added with Use before that call
// wraps all of them; the mock server adds Tracing this way so request logs
// carry the trace ID.
//
// RegisterDefaultEndpoints mounts /health, /ready, /alive and /version and
// renders unknown routes as a NOT_FOUND error body. Handlers report
// failures with RespondWithError.
package server
