package fetch

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/fetchkit/hook"
	"github.com/kbukum/fetchkit/httpclient"
	"github.com/kbukum/fetchkit/logger"
	"github.com/kbukum/fetchkit/observability"
)

// ErrCancelled is matched (errors.Is) by the error of a call the before
// pipeline cancelled. Such calls are never sent.
var ErrCancelled = httpclient.ErrCancelled

// Client issues calls through the hook pipelines. It is safe for concurrent
// use; calls share nothing but the underlying transport.
type Client struct {
	transport *httpclient.Transport
	config    Config
	diag      Diagnostics
	log       *logger.Logger
	metrics   *observability.Metrics
}

type clientOptions struct {
	diag          Diagnostics
	log           *logger.Logger
	metrics       *observability.Metrics
	transportOpts []httpclient.Option
}

// Option customizes a Client.
type Option func(*clientOptions)

// WithDiagnostics overrides the diagnostics chosen from Config.Verbose.
func WithDiagnostics(d Diagnostics) Option {
	return func(o *clientOptions) { o.diag = d }
}

// WithLogger sets the logger used for per-call debug logs.
func WithLogger(l *logger.Logger) Option {
	return func(o *clientOptions) { o.log = l }
}

// WithMetrics records request counters and durations for every call.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *clientOptions) { o.metrics = m }
}

// WithRoundTripper replaces the transport's http.RoundTripper.
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(o *clientOptions) {
		o.transportOpts = append(o.transportOpts, httpclient.WithRoundTripper(rt))
	}
}

// New creates a client. A verbose config without an explicit Diagnostics
// prints schema mismatches to stderr; otherwise they are discarded.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}

	transport, err := httpclient.New(cfg.transportConfig(), o.transportOpts...)
	if err != nil {
		return nil, err
	}

	if o.diag == nil {
		if cfg.Verbose {
			o.diag = NewConsoleDiagnostics(os.Stderr)
		} else {
			o.diag = NopDiagnostics{}
		}
	}
	if o.log == nil {
		o.log = logger.Get("fetch")
	}

	return &Client{
		transport: transport,
		config:    cfg,
		diag:      o.diag,
		log:       o.log,
		metrics:   o.metrics,
	}, nil
}

// Config returns the effective configuration.
func (c *Client) Config() Config {
	return c.config
}

// Close releases idle connections.
func (c *Client) Close() {
	c.transport.Close()
}

// do runs one complete round trip: before pipeline, transport, after
// pipeline, status classification. The response is returned whenever one
// was received, even alongside an error.
func (c *Client) do(ctx context.Context, method, path string, opts Options) (*hook.Response, error) {
	hopts := opts.hookOptions()
	before, err := hook.NewBefore(hopts)
	if err != nil {
		return nil, httpclient.Wrap(httpclient.ErrCodeValidation, err)
	}
	res := before.Run(hook.NewRequest(method, path))
	url := c.transport.ResolveURL(res.Request().URL)

	ctx, span := observability.StartSpan(ctx, observability.SpanFetchCall, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String(observability.AttrHTTPMethod, method),
		attribute.String(observability.AttrHTTPURL, url),
	)

	start := time.Now()
	if c.metrics != nil {
		c.metrics.RecordRequestStart(ctx)
	}

	resp, err := c.roundTrip(ctx, res, hopts)

	duration := time.Since(start)
	status := "error"
	fields := logger.Fields("method", method, "url", url)
	if resp != nil {
		status = strconv.Itoa(resp.StatusCode)
		fields[logger.FieldStatus] = resp.StatusCode
		span.SetAttributes(attribute.Int(observability.AttrHTTPStatusCode, resp.StatusCode))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		fields = logger.MergeWithError(fields, err)
		if httpclient.IsCancelled(err) {
			status = "cancelled"
		}
	}
	if c.metrics != nil {
		c.metrics.RecordRequestEnd(ctx, serviceName, method, status, duration)
		if err != nil {
			c.metrics.RecordError(ctx, errorType(err), "fetch")
		}
	}
	c.log.WithContext(ctx).Debug("fetch call", logger.MergeWithDuration(fields, duration))

	return resp, err
}

func (c *Client) roundTrip(ctx context.Context, res hook.Result, hopts hook.Options) (*hook.Response, error) {
	resp, err := c.transport.Send(ctx, res)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	err = hook.NewAfter(hopts, c.diag).Run(resp)
	if c.metrics != nil && (hopts.ResponseSchema != nil || hopts.ErrorSchema != nil) {
		result := "ok"
		if err != nil {
			result = "mismatch"
		}
		c.metrics.RecordValidation(ctx, serviceName, result, time.Since(start))
	}
	if err != nil {
		return resp, err
	}
	if classErr := httpclient.FromStatus(resp.StatusCode, resp.Raw); classErr != nil {
		classErr.Data = resp.Data
		return resp, classErr
	}
	return resp, nil
}

func errorType(err error) string {
	var he *httpclient.Error
	if stderrors.As(err, &he) {
		return he.Code.String()
	}
	return fmt.Sprintf("%T", err)
}
