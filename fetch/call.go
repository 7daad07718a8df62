package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/tidwall/gjson"

	"github.com/kbukum/fetchkit/hook"
	"github.com/kbukum/fetchkit/httpclient"
)

// Call is a lazy handle on one request. Nothing is sent until Execute; each
// Execute builds a fresh request and replaces the recorded outcome. The
// accessors are safe to use from another goroutine.
type Call[T any] struct {
	client *Client
	method string
	path   string
	opts   Options
	decode func(*hook.Response) (T, error)

	mu         sync.Mutex
	executed   bool
	cancelled  bool
	statusCode int
	header     http.Header
	raw        []byte
	data       T
	errData    any
	err        error
}

func newCall[T any](c *Client, method, path string, opts Options, decode func(*hook.Response) (T, error)) *Call[T] {
	if decode == nil {
		decode = decodeJSON[T]
	}
	return &Call[T]{client: c, method: method, path: path, opts: opts, decode: decode}
}

// Execute sends the request and returns the decoded body.
//
// The error is ErrCancelled (errors.Is) when the request was never sent, a
// *schema.Error when a declared schema rejected the body, or an
// *httpclient.Error for transport failures and non-2xx responses. In the
// last case ErrorData holds the parsed error body.
func (c *Call[T]) Execute(ctx context.Context) (T, error) {
	resp, err := c.client.do(ctx, c.method, c.path, c.opts)

	var data T
	if err == nil {
		data, err = c.decode(resp)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	c.cancelled = stderrors.Is(err, ErrCancelled)
	c.executed = !c.cancelled
	c.statusCode, c.header, c.raw = 0, nil, nil
	if resp != nil {
		c.statusCode, c.header, c.raw = resp.StatusCode, resp.Header, resp.Raw
	}
	c.data, c.errData = data, nil
	if err != nil {
		c.data = zero
		var he *httpclient.Error
		if stderrors.As(err, &he) {
			c.errData = he.Data
		}
	}
	c.err = err
	return c.data, err
}

// Data returns the decoded body of the last successful Execute.
func (c *Call[T]) Data() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data
}

// ErrorData returns the parsed body of the last non-2xx response, or nil.
func (c *Call[T]) ErrorData() any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errData
}

// StatusCode returns the last response status, or 0 when nothing was
// received.
func (c *Call[T]) StatusCode() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusCode
}

// Header returns the last response headers.
func (c *Call[T]) Header() http.Header {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.header
}

// Raw returns the last undecoded response body.
func (c *Call[T]) Raw() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.raw
}

// Err returns the error of the last Execute.
func (c *Call[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Executed reports whether the last Execute dispatched the request.
func (c *Call[T]) Executed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.executed
}

// Cancelled reports whether the last Execute was cancelled before dispatch.
func (c *Call[T]) Cancelled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancelled
}

// Field looks up a gjson path ("message", "items.0.name") in the raw body.
func (c *Call[T]) Field(path string) gjson.Result {
	return gjson.GetBytes(c.Raw(), path)
}

// decodeJSON decodes the body into T. Non-JSON bodies are accepted when T
// is string or []byte.
func decodeJSON[T any](resp *hook.Response) (T, error) {
	var out T
	if len(bytes.TrimSpace(resp.Raw)) == 0 {
		return out, nil
	}
	switch p := any(&out).(type) {
	case *string:
		if resp.Data == nil {
			*p = string(resp.Raw)
			return out, nil
		}
	case *[]byte:
		*p = resp.Raw
		return out, nil
	case *any:
		*p = resp.Data
		if resp.Data == nil {
			*p = string(resp.Raw)
		}
		return out, nil
	}
	if err := json.Unmarshal(resp.Raw, &out); err != nil {
		return out, fmt.Errorf("fetch: decode response: %w", err)
	}
	return out, nil
}

// StatusCall is the handle returned by Delete: only the status is kept.
type StatusCall struct {
	call *Call[struct{}]
}

// Execute sends the request and returns the response status.
func (s *StatusCall) Execute(ctx context.Context) (int, error) {
	_, err := s.call.Execute(ctx)
	return s.call.StatusCode(), err
}

// StatusCode returns the last response status.
func (s *StatusCall) StatusCode() int { return s.call.StatusCode() }

// Err returns the error of the last Execute.
func (s *StatusCall) Err() error { return s.call.Err() }

// Executed reports whether the last Execute dispatched the request.
func (s *StatusCall) Executed() bool { return s.call.Executed() }

// Cancelled reports whether the last Execute was cancelled before dispatch.
func (s *StatusCall) Cancelled() bool { return s.call.Cancelled() }

func discardBody(*hook.Response) (struct{}, error) { return struct{}{}, nil }

// Blob is a raw response payload with its content type.
type Blob struct {
	Data        []byte
	ContentType string
}

// Size returns len(b.Data).
func (b Blob) Size() int { return len(b.Data) }

func decodeBlob(resp *hook.Response) (Blob, error) {
	return Blob{Data: resp.Raw, ContentType: resp.Header.Get("Content-Type")}, nil
}
