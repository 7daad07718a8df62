package jwt

import (
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Stamper is implemented by claims that accept the standard time, issuer
// and audience claims before signing.
type Stamper interface {
	Stamp(now time.Time, ttl time.Duration, issuer string, audience []string)
}

// Signer issues and verifies HMAC tokens carrying claims of type T, which
// usually embeds gojwt.RegisteredClaims.
type Signer[T gojwt.Claims] struct {
	cfg    Config
	method *gojwt.SigningMethodHMAC
	key    []byte
	parser *gojwt.Parser
	empty  func() T
}

// NewSigner validates cfg after applying defaults. empty returns the value
// Verify decodes into.
func NewSigner[T gojwt.Claims](cfg Config, empty func() T) (*Signer[T], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("jwt: %w", err)
	}
	method := hmacMethods[cfg.Method]

	popts := []gojwt.ParserOption{gojwt.WithValidMethods([]string{method.Alg()})}
	if cfg.Issuer != "" {
		popts = append(popts, gojwt.WithIssuer(cfg.Issuer))
	}
	if len(cfg.Audience) > 0 {
		popts = append(popts, gojwt.WithAudience(cfg.Audience[0]))
	}

	return &Signer[T]{
		cfg:    cfg,
		method: method,
		key:    []byte(cfg.Secret),
		parser: gojwt.NewParser(popts...),
		empty:  empty,
	}, nil
}

// Sign stamps claims that implement Stamper with the configured lifetime,
// issuer and audience, then signs them.
func (s *Signer[T]) Sign(claims T) (string, error) {
	if st, ok := any(claims).(Stamper); ok {
		st.Stamp(time.Now(), s.cfg.AccessTokenTTL, s.cfg.Issuer, s.cfg.Audience)
	}
	token, err := gojwt.NewWithClaims(s.method, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("jwt: sign: %w", err)
	}
	return token, nil
}

// Verify checks the signature, algorithm, expiry and configured issuer and
// audience, and returns the decoded claims.
func (s *Signer[T]) Verify(token string) (T, error) {
	var zero T
	parsed, err := s.parser.ParseWithClaims(token, s.empty(), func(*gojwt.Token) (any, error) {
		return s.key, nil
	})
	if err != nil {
		return zero, fmt.Errorf("jwt: verify: %w", err)
	}
	claims, ok := parsed.Claims.(T)
	if !ok {
		return zero, fmt.Errorf("jwt: verify: claims are %T", parsed.Claims)
	}
	return claims, nil
}

// Validator adapts Verify to a func(string) (any, error), the shape
// expected by the server Auth middleware.
func (s *Signer[T]) Validator() func(string) (any, error) {
	return func(token string) (any, error) {
		return s.Verify(token)
	}
}

// TTL returns the lifetime given to stamped claims.
func (s *Signer[T]) TTL() time.Duration {
	return s.cfg.AccessTokenTTL
}
