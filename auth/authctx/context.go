// Package authctx carries verified token claims on a request context. The
// claims type is the caller's; lookups are typed with generics:
//
//	ctx = authctx.With(ctx, claims)
//	claims, ok := authctx.From[*mockserver.Claims](ctx)
package authctx

import (
	"context"
	"errors"
)

type key struct{}

// ErrNoClaims reports that the context has no claims of the requested type.
var ErrNoClaims = errors.New("authctx: no claims in context")

// With returns a copy of ctx carrying claims.
func With(ctx context.Context, claims any) context.Context {
	return context.WithValue(ctx, key{}, claims)
}

// From returns the claims in ctx if they have type T.
func From[T any](ctx context.Context) (T, bool) {
	claims, ok := ctx.Value(key{}).(T)
	return claims, ok
}

// Require is From with ErrNoClaims in place of false.
func Require[T any](ctx context.Context) (T, error) {
	claims, ok := From[T](ctx)
	if !ok {
		return claims, ErrNoClaims
	}
	return claims, nil
}

// Subject returns the "sub" claim when the stored claims expose one
// (gojwt.RegisteredClaims does), or "".
func Subject(ctx context.Context) string {
	c, ok := ctx.Value(key{}).(interface{ GetSubject() (string, error) })
	if !ok {
		return ""
	}
	sub, _ := c.GetSubject()
	return sub
}
