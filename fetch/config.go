package fetch

import (
	"fmt"
	"time"

	"github.com/kbukum/fetchkit/config"
	"github.com/kbukum/fetchkit/httpclient"
)

const serviceName = "fetchkit"

// Config configures a Client.
type Config struct {
	// BaseURL is prepended to every request path (env API_BASE_URL).
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds each call (env API_TIMEOUT). Defaults to 50s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Verbose enables console diagnostics for schema mismatches
	// (env API_VERBOSE). It is forced on when Environment is "development".
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`

	// Environment is the runtime mode (env ENVIRONMENT).
	Environment string `yaml:"environment" mapstructure:"environment"`

	// Headers are sent with every request.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = httpclient.DefaultTimeout
	}
	if c.Environment == "development" {
		c.Verbose = true
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("fetch: timeout must be positive")
	}
	tc := c.transportConfig()
	return tc.Validate()
}

func (c *Config) transportConfig() httpclient.Config {
	return httpclient.Config{
		BaseURL: c.BaseURL,
		Timeout: c.Timeout,
		Headers: c.Headers,
	}
}

// fileConfig mirrors the layout of config.yml / the environment:
//
//	environment: development
//	api:
//	  base_url: http://localhost:3000
//	  timeout: 50s
type fileConfig struct {
	Environment string `mapstructure:"environment"`
	API         Config `mapstructure:"api"`
}

// LoadConfig reads the client configuration from config.yml, .env and the
// environment (API_BASE_URL, API_TIMEOUT, API_VERBOSE, ENVIRONMENT).
func LoadConfig(opts ...config.LoaderOption) (Config, error) {
	var fc fileConfig
	if err := config.LoadConfig(serviceName, &fc, opts...); err != nil {
		return Config{}, err
	}
	cfg := fc.API
	if cfg.Environment == "" {
		cfg.Environment = fc.Environment
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
