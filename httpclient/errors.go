package httpclient

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrCancelled is wrapped by the error returned for a request the Before
// pipeline cancelled.
var ErrCancelled = errors.New("request cancelled before dispatch")

// ErrorCode classifies a failed request.
type ErrorCode string

const (
	ErrCodeTimeout    ErrorCode = "timeout"
	ErrCodeConnection ErrorCode = "connection"
	ErrCodeAuth       ErrorCode = "auth"
	ErrCodeNotFound   ErrorCode = "not_found"
	ErrCodeRateLimit  ErrorCode = "rate_limit"
	// ErrCodeValidation covers 4xx responses without a dedicated code and
	// requests that could not be built.
	ErrCodeValidation ErrorCode = "validation"
	ErrCodeServer     ErrorCode = "server"
	ErrCodeCancelled  ErrorCode = "cancelled"
)

func (c ErrorCode) String() string { return string(c) }

// Retryable reports whether failures with this code are usually transient.
// Nothing in this package retries on its own.
func (c ErrorCode) Retryable() bool {
	switch c {
	case ErrCodeTimeout, ErrCodeConnection, ErrCodeRateLimit, ErrCodeServer:
		return true
	}
	return false
}

// Error describes a request that failed in transport or completed with a
// non-2xx status.
type Error struct {
	Code ErrorCode
	// StatusCode is 0 when no response was received.
	StatusCode int
	Message    string
	Retryable  bool
	// Body is the raw response body and Data its parsed form, filled in by
	// callers that decode it.
	Body []byte
	Data any
	Err  error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf returns an Error with code and a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Retryable: code.Retryable()}
}

// Wrap returns an Error with code that wraps err.
func Wrap(code ErrorCode, err error) *Error {
	e := Errorf(code, "%v", err)
	e.Err = err
	return e
}

func cancelledError(reason string) *Error {
	e := Errorf(ErrCodeCancelled, "%s", reason)
	e.Err = ErrCancelled
	return e
}

// FromStatus classifies a response status. It returns nil for 2xx.
func FromStatus(status int, body []byte) *Error {
	var code ErrorCode
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		code = ErrCodeAuth
	case status == http.StatusNotFound:
		code = ErrCodeNotFound
	case status == http.StatusTooManyRequests:
		code = ErrCodeRateLimit
	case status >= 400 && status < 500:
		code = ErrCodeValidation
	default:
		code = ErrCodeServer
	}

	text := http.StatusText(status)
	if text == "" {
		text = fmt.Sprintf("HTTP %d", status)
	}
	e := Errorf(code, "%s", text)
	e.StatusCode = status
	e.Body = body
	return e
}

// HasCode reports whether err wraps an *Error with code.
func HasCode(err error, code ErrorCode) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// IsCancelled reports whether err is a pre-dispatch cancellation.
func IsCancelled(err error) bool { return HasCode(err, ErrCodeCancelled) }

// StatusCode returns the response status carried by err, or 0.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}
