package bootstrap

import (
	"io"
	"time"

	"github.com/kbukum/fetchkit/logger"
)

// DefaultGracefulTimeout bounds Shutdown.
const DefaultGracefulTimeout = 15 * time.Second

// Option configures NewApp. Options are not generic so one set works for
// any config type.
type Option func(*appOptions)

type appOptions struct {
	logger          *logger.Logger
	gracefulTimeout time.Duration
	output          io.Writer
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{gracefulTimeout: DefaultGracefulTimeout}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger skips logger.Init and uses l.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) { o.logger = l }
}

// WithGracefulTimeout bounds Shutdown and each component's Stop.
// Non-positive values keep the default.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) {
		if d > 0 {
			o.gracefulTimeout = d
		}
	}
}

// WithSummaryOutput sends the startup summary to w instead of stdout.
func WithSummaryOutput(w io.Writer) Option {
	return func(o *appOptions) { o.output = w }
}
