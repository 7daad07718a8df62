package mockserver

import (
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Claims are the token claims issued by /sign.
type Claims struct {
	gojwt.RegisteredClaims
	Role string `json:"role"`
}

// Stamp sets the time claims before signing.
func (c *Claims) Stamp(now time.Time, ttl time.Duration, issuer string, audience []string) {
	c.IssuedAt = gojwt.NewNumericDate(now)
	c.ExpiresAt = gojwt.NewNumericDate(now.Add(ttl))
	if issuer != "" {
		c.Issuer = issuer
	}
	if len(audience) > 0 {
		c.Audience = audience
	}
}

// Exp returns the expiry as Unix seconds, or 0.
func (c *Claims) Exp() int64 {
	if c.ExpiresAt == nil {
		return 0
	}
	return c.ExpiresAt.Unix()
}

// SignRequest is the optional body of POST /sign.
type SignRequest struct {
	Sub  string `json:"sub"`
	Role string `json:"role"`
}

// SignResponse is returned by POST /sign.
type SignResponse struct {
	Token string `json:"token"`
	Sub   string `json:"sub"`
	Role  string `json:"role"`
	Exp   int64  `json:"exp"`
}
