package jwt

import (
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

type roleClaims struct {
	gojwt.RegisteredClaims
	Role string `json:"role"`
}

func (c *roleClaims) Stamp(now time.Time, ttl time.Duration, issuer string, audience []string) {
	c.IssuedAt = gojwt.NewNumericDate(now)
	c.ExpiresAt = gojwt.NewNumericDate(now.Add(ttl))
	c.Issuer = issuer
	c.Audience = audience
}

func newRoleSigner(t *testing.T, cfg Config) *Signer[*roleClaims] {
	t.Helper()
	s, err := NewSigner(cfg, func() *roleClaims { return &roleClaims{} })
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}
	return s
}

func TestConfig(t *testing.T) {
	cfg := Config{Secret: "s"}
	cfg.ApplyDefaults()
	if cfg.Method != "HS256" || cfg.AccessTokenTTL != 15*time.Minute {
		t.Errorf("defaults = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	for name, c := range map[string]Config{
		"no secret":    {Method: "HS256"},
		"asymmetric":   {Secret: "s", Method: "RS256"},
		"negative ttl": {Secret: "s", Method: "HS256", AccessTokenTTL: -time.Second},
	} {
		if err := c.Validate(); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestNewSignerLeavesConfigUntouched(t *testing.T) {
	cfg := Config{Secret: "s"}
	newRoleSigner(t, cfg)
	if cfg.Method != "" {
		t.Errorf("caller config modified: %+v", cfg)
	}
}

func TestSignVerify(t *testing.T) {
	s := newRoleSigner(t, Config{Secret: "secret", Issuer: "mock", Audience: []string{"fetchkit"}})

	claims := &roleClaims{Role: "admin"}
	claims.Subject = "alice"
	token, err := s.Sign(claims)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Fatalf("not a JWT: %q", token)
	}

	got, err := s.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got.Subject != "alice" || got.Role != "admin" || got.Issuer != "mock" {
		t.Errorf("claims = %+v", got)
	}
	if got.ExpiresAt == nil || time.Until(got.ExpiresAt.Time) > s.TTL() {
		t.Errorf("expiry %v beyond ttl %v", got.ExpiresAt, s.TTL())
	}
}

func TestVerifyRejects(t *testing.T) {
	s := newRoleSigner(t, Config{Secret: "secret", Issuer: "mock"})

	sign := func(method gojwt.SigningMethod, key string, rc gojwt.RegisteredClaims) string {
		t.Helper()
		tok, err := gojwt.NewWithClaims(method, &roleClaims{RegisteredClaims: rc}).SignedString([]byte(key))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return tok
	}
	future := gojwt.NewNumericDate(time.Now().Add(time.Hour))
	past := gojwt.NewNumericDate(time.Now().Add(-time.Minute))

	for name, token := range map[string]string{
		"garbage":         "not-a-token",
		"wrong secret":    sign(gojwt.SigningMethodHS256, "other", gojwt.RegisteredClaims{Issuer: "mock", ExpiresAt: future}),
		"expired":         sign(gojwt.SigningMethodHS256, "secret", gojwt.RegisteredClaims{Issuer: "mock", ExpiresAt: past}),
		"wrong algorithm": sign(gojwt.SigningMethodHS512, "secret", gojwt.RegisteredClaims{Issuer: "mock", ExpiresAt: future}),
		"wrong issuer":    sign(gojwt.SigningMethodHS256, "secret", gojwt.RegisteredClaims{Issuer: "elsewhere", ExpiresAt: future}),
	} {
		if _, err := s.Verify(token); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestValidator(t *testing.T) {
	s := newRoleSigner(t, Config{Secret: "secret"})
	token, err := s.Sign(&roleClaims{Role: "user"})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	v, err := s.Validator()(token)
	if err != nil {
		t.Fatalf("validator: %v", err)
	}
	if c, ok := v.(*roleClaims); !ok || c.Role != "user" {
		t.Errorf("claims = %#v", v)
	}
	if _, err := s.Validator()("x.y.z"); err == nil {
		t.Error("expected error for malformed token")
	}
}
