package jwt

import (
	"fmt"
	"slices"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

var hmacMethods = map[string]*gojwt.SigningMethodHMAC{
	"HS256": gojwt.SigningMethodHS256,
	"HS384": gojwt.SigningMethodHS384,
	"HS512": gojwt.SigningMethodHS512,
}

// Config configures HMAC token signing.
type Config struct {
	Secret string `yaml:"secret" mapstructure:"secret"`
	// Method is HS256, HS384 or HS512.
	Method         string        `yaml:"method" mapstructure:"method"`
	Issuer         string        `yaml:"issuer" mapstructure:"issuer"`
	Audience       []string      `yaml:"audience" mapstructure:"audience"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" mapstructure:"access_token_ttl"`
}

// ApplyDefaults selects HS256 and a 15 minute lifetime.
func (c *Config) ApplyDefaults() {
	if c.Method == "" {
		c.Method = "HS256"
	}
	if c.AccessTokenTTL == 0 {
		c.AccessTokenTTL = 15 * time.Minute
	}
}

// Validate requires a secret, a known method and a non-negative lifetime.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return fmt.Errorf("secret is required")
	}
	if _, ok := hmacMethods[c.Method]; !ok {
		methods := make([]string, 0, len(hmacMethods))
		for m := range hmacMethods {
			methods = append(methods, m)
		}
		slices.Sort(methods)
		return fmt.Errorf("method %q not one of %v", c.Method, methods)
	}
	if c.AccessTokenTTL < 0 {
		return fmt.Errorf("access_token_ttl %v is negative", c.AccessTokenTTL)
	}
	return nil
}
