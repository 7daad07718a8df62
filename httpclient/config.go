package httpclient

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kbukum/fetchkit/version"
)

const (
	// DefaultTimeout is the fixed per-request timeout.
	DefaultTimeout = 50 * time.Second
	// DefaultMaxRedirects is the redirect limit; redirects are followed.
	DefaultMaxRedirects = 10
)

// Config configures the transport.
type Config struct {
	// BaseURL is prepended to relative request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds a whole round trip. Defaults to 50s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// MaxRedirects caps followed redirects. Defaults to 10.
	MaxRedirects int `yaml:"max_redirects" mapstructure:"max_redirects"`

	// UserAgent is sent unless a header overrides it. Defaults to
	// "fetchkit/<version>".
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// Headers are default headers applied to every request. Headers set by
	// the before pipeline take precedence.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxRedirects <= 0 {
		c.MaxRedirects = DefaultMaxRedirects
	}
	if c.UserAgent == "" {
		c.UserAgent = "fetchkit/" + version.GetVersionInfo().Short()
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil {
			return fmt.Errorf("httpclient: invalid base url: %w", err)
		}
		if u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("httpclient: base url %q must be absolute", c.BaseURL)
		}
	}
	return nil
}
