package observability

import (
	"fmt"
	"time"
)

// Config enables OTLP/HTTP export of traces and metrics.
type Config struct {
	Enabled    bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string        `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure   bool          `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64       `yaml:"sample_rate" mapstructure:"sample_rate"`
	Interval   time.Duration `yaml:"interval" mapstructure:"interval"`
}

// Service identifies the emitting process in the exported resource.
type Service struct {
	Name        string
	Version     string
	Environment string
}

// ApplyDefaults targets a local collector, samples everything and exports
// metrics every 15s.
func (c *Config) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1
	}
	if c.Interval <= 0 {
		c.Interval = 15 * time.Second
	}
}

// Validate rejects sample rates outside [0, 1].
func (c *Config) Validate() error {
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("observability: sample_rate %v out of range [0, 1]", c.SampleRate)
	}
	return nil
}
