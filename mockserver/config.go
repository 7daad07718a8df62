package mockserver

import (
	"fmt"
	"time"

	"github.com/kbukum/fetchkit/auth/jwt"
	"github.com/kbukum/fetchkit/config"
	"github.com/kbukum/fetchkit/observability"
	"github.com/kbukum/fetchkit/server"
)

// ServiceName is the config and telemetry name of the mock server.
const ServiceName = "mockserver"

// DevSecret signs tokens when no secret is configured. It is meant for
// local testing only.
const DevSecret = "mock-server-development-secret"

// Config configures the mock server.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server server.Config `yaml:"server" mapstructure:"server"`

	// Auth signs and verifies the bearer tokens issued by /sign.
	Auth jwt.Config `yaml:"auth" mapstructure:"auth"`

	// DefaultSubject and DefaultRole fill tokens signed without a body.
	DefaultSubject string `yaml:"default_subject" mapstructure:"default_subject"`
	DefaultRole    string `yaml:"default_role" mapstructure:"default_role"`

	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = ServiceName
	}
	c.ServiceConfig.ApplyDefaults()
	if c.Server.Port == 0 {
		c.Server.Port = 3000
	}
	c.Server.ApplyDefaults()
	if c.Auth.Secret == "" {
		c.Auth.Secret = DevSecret
	}
	if c.Auth.AccessTokenTTL == 0 {
		c.Auth.AccessTokenTTL = time.Hour
	}
	c.Auth.ApplyDefaults()
	if c.DefaultSubject == "" {
		c.DefaultSubject = "mock-user"
	}
	if c.DefaultRole == "" {
		c.DefaultRole = "admin"
	}
	c.Observability.ApplyDefaults()
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	return c.Observability.Validate()
}

// LoadConfig reads cmd/mockserver/config.yml, .env and the environment
// (SERVER_PORT, AUTH_SECRET, ...), then applies defaults.
func LoadConfig(opts ...config.LoaderOption) (*Config, error) {
	var cfg Config
	if err := config.LoadConfig(ServiceName, &cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
