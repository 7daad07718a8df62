// Package errors defines AppError, the structured error the mock server
// renders as {"error": {"code", "message", "retryable", "details"}}.
//
// Handlers return an *AppError and server.RespondWithError derives the
// status and body from it. Anything else is rendered as INTERNAL_ERROR.
package errors
