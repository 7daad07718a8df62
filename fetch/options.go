package fetch

import (
	"github.com/kbukum/fetchkit/hook"
	"github.com/kbukum/fetchkit/httpclient"
	"github.com/kbukum/fetchkit/schema"
)

// Options declares how a call shapes its request and checks its response.
// Every field is optional; the zero value of a field disables its stage.
type Options struct {
	// BearerRequired sends "Authorization: Bearer <Token>". With an empty
	// Token the call is cancelled and never sent.
	BearerRequired bool
	// Token is the bearer token.
	Token string
	// Query is appended to the URL.
	Query *hook.Values
	// JSON is sent as an application/json body.
	JSON any
	// Multipart is sent as a multipart/form-data body.
	Multipart *httpclient.MultipartBody
	// Form is sent as an application/x-www-form-urlencoded body.
	Form *hook.Values
	// ResponseSchema validates 2xx bodies.
	ResponseSchema schema.Schema
	// ErrorSchema validates non-2xx bodies.
	ErrorSchema schema.Schema
}

func (o Options) hookOptions() hook.Options {
	h := hook.Options{
		BearerRequired: o.BearerRequired,
		Token:          o.Token,
		Query:          o.Query,
		JSON:           o.JSON,
		Form:           o.Form,
	}
	// Typed nils must not reach the interface fields.
	if o.Multipart != nil {
		h.Multipart = o.Multipart
	}
	if o.ResponseSchema != nil {
		h.ResponseSchema = o.ResponseSchema
	}
	if o.ErrorSchema != nil {
		h.ErrorSchema = o.ErrorSchema
	}
	return h
}

// CallOption adjusts the Options assembled by a verb function.
type CallOption func(*Options)

// WithResponseSchema validates successful response bodies against s.
func WithResponseSchema(s schema.Schema) CallOption {
	return func(o *Options) { o.ResponseSchema = s }
}

// WithErrorSchema validates error response bodies against s.
func WithErrorSchema(s schema.Schema) CallOption {
	return func(o *Options) { o.ErrorSchema = s }
}

// WithQuery appends q to the URL of a call whose verb function does not
// take a query argument.
func WithQuery(q *hook.Values) CallOption {
	return func(o *Options) { o.Query = q }
}

func buildOptions(base Options, opts []CallOption) Options {
	for _, opt := range opts {
		opt(&base)
	}
	return base
}
