package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/kbukum/fetchkit/hook"
)

// Transport sends the request produced by the before pipeline and returns
// the raw response context for the after pipeline. HTTP status codes are
// never turned into errors here.
type Transport struct {
	httpClient *http.Client
	config     Config
}

// Option customizes a Transport.
type Option func(*Transport)

// WithRoundTripper replaces the underlying http.RoundTripper.
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(t *Transport) {
		t.httpClient.Transport = rt
	}
}

// New creates a transport with the given configuration.
func New(cfg Config, opts ...Option) (*Transport, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	t := &Transport{
		httpClient: &http.Client{
			Transport:     http.DefaultTransport.(*http.Transport).Clone(),
			Timeout:       cfg.Timeout,
			CheckRedirect: redirectPolicy(cfg.MaxRedirects),
		},
		config: cfg,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

func redirectPolicy(limit int) func(*http.Request, []*http.Request) error {
	return func(_ *http.Request, via []*http.Request) error {
		if len(via) >= limit {
			return fmt.Errorf("stopped after %d redirects", limit)
		}
		return nil
	}
}

// Send dispatches res. A *hook.Cancelled result is never sent; Send returns
// an error with code ErrCodeCancelled wrapping ErrCancelled instead.
func (t *Transport) Send(ctx context.Context, res hook.Result) (*hook.Response, error) {
	switch r := res.(type) {
	case *hook.Cancelled:
		return nil, cancelledError(r.Reason)
	case *hook.Proceed:
		return t.send(ctx, r.Request())
	default:
		return nil, Errorf(ErrCodeValidation, "unknown result %T", res)
	}
}

func (t *Transport) send(ctx context.Context, req *hook.Request) (*hook.Response, error) {
	httpReq, err := t.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil || isTimeout(err) {
			return nil, Wrap(ErrCodeTimeout, err)
		}
		return nil, Wrap(ErrCodeConnection, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, Wrap(ErrCodeConnection, fmt.Errorf("read response body: %w", err))
	}

	return hook.NewResponse(resp.StatusCode, resp.Header, body), nil
}

// buildRequest constructs an *http.Request from the transport config and
// the shaped request.
func (t *Transport) buildRequest(ctx context.Context, req *hook.Request) (*http.Request, error) {
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, t.ResolveURL(req.URL), req.Body.Reader())
	if err != nil {
		return nil, Wrap(ErrCodeValidation, fmt.Errorf("create request: %w", err))
	}

	httpReq.Header.Set("User-Agent", t.config.UserAgent)
	for k, v := range t.config.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, vs := range req.Header {
		httpReq.Header.Del(k)
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))
	return httpReq, nil
}

// ResolveURL joins path onto the base URL. Absolute URLs pass through.
func (t *Transport) ResolveURL(path string) string {
	if t.config.BaseURL == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(t.config.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// Unwrap returns the underlying *http.Client for advanced use cases.
func (t *Transport) Unwrap() *http.Client {
	return t.httpClient
}

// Config returns the effective configuration.
func (t *Transport) Config() Config {
	return t.config
}

// Close releases idle connections.
func (t *Transport) Close() {
	t.httpClient.CloseIdleConnections()
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}
