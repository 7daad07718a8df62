package fetch

import (
	"net/http"

	"github.com/kbukum/fetchkit/hook"
	"github.com/kbukum/fetchkit/httpclient"
)

// Do builds a call from fully assembled Options. The verb functions below
// are shorthands for it.
func Do[T any](c *Client, method, path string, opts Options) *Call[T] {
	return newCall[T](c, method, path, opts, nil)
}

func authed(token string) Options {
	return Options{BearerRequired: true, Token: token}
}

// Get fetches path with an optional query.
func Get[T any](c *Client, path string, query *hook.Values, opts ...CallOption) *Call[T] {
	return Do[T](c, http.MethodGet, path, buildOptions(Options{Query: query}, opts))
}

// GetWithAuth is Get with a required bearer token.
func GetWithAuth[T any](c *Client, path, token string, query *hook.Values, opts ...CallOption) *Call[T] {
	base := authed(token)
	base.Query = query
	return Do[T](c, http.MethodGet, path, buildOptions(base, opts))
}

// Post sends body as JSON.
func Post[T any](c *Client, path string, body any, opts ...CallOption) *Call[T] {
	return Do[T](c, http.MethodPost, path, buildOptions(Options{JSON: body}, opts))
}

// PostWithAuth is Post with a required bearer token.
func PostWithAuth[T any](c *Client, path, token string, body any, opts ...CallOption) *Call[T] {
	base := authed(token)
	base.JSON = body
	return Do[T](c, http.MethodPost, path, buildOptions(base, opts))
}

// Put sends body as JSON.
func Put[T any](c *Client, path string, body any, opts ...CallOption) *Call[T] {
	return Do[T](c, http.MethodPut, path, buildOptions(Options{JSON: body}, opts))
}

// PutWithAuth is Put with a required bearer token.
func PutWithAuth[T any](c *Client, path, token string, body any, opts ...CallOption) *Call[T] {
	base := authed(token)
	base.JSON = body
	return Do[T](c, http.MethodPut, path, buildOptions(base, opts))
}

// Patch sends body as JSON.
func Patch[T any](c *Client, path string, body any, opts ...CallOption) *Call[T] {
	return Do[T](c, http.MethodPatch, path, buildOptions(Options{JSON: body}, opts))
}

// PatchWithAuth is Patch with a required bearer token.
func PatchWithAuth[T any](c *Client, path, token string, body any, opts ...CallOption) *Call[T] {
	base := authed(token)
	base.JSON = body
	return Do[T](c, http.MethodPatch, path, buildOptions(base, opts))
}

// Delete removes path. Only the status is kept.
func Delete(c *Client, path string, opts ...CallOption) *StatusCall {
	o := buildOptions(Options{}, opts)
	return &StatusCall{call: newCall(c, http.MethodDelete, path, o, discardBody)}
}

// DeleteWithAuth is Delete with a required bearer token.
func DeleteWithAuth(c *Client, path, token string, opts ...CallOption) *StatusCall {
	o := buildOptions(authed(token), opts)
	return &StatusCall{call: newCall(c, http.MethodDelete, path, o, discardBody)}
}

// Upload posts form as multipart/form-data.
func Upload[T any](c *Client, path string, form *httpclient.MultipartBody, opts ...CallOption) *Call[T] {
	return Do[T](c, http.MethodPost, path, buildOptions(Options{Multipart: form}, opts))
}

// UploadWithAuth is Upload with a required bearer token.
func UploadWithAuth[T any](c *Client, path, token string, form *httpclient.MultipartBody, opts ...CallOption) *Call[T] {
	base := authed(token)
	base.Multipart = form
	return Do[T](c, http.MethodPost, path, buildOptions(base, opts))
}

// PostForm posts form as application/x-www-form-urlencoded.
func PostForm[T any](c *Client, path string, form *hook.Values, opts ...CallOption) *Call[T] {
	return Do[T](c, http.MethodPost, path, buildOptions(Options{Form: form}, opts))
}

// PostFormWithAuth is PostForm with a required bearer token.
func PostFormWithAuth[T any](c *Client, path, token string, form *hook.Values, opts ...CallOption) *Call[T] {
	base := authed(token)
	base.Form = form
	return Do[T](c, http.MethodPost, path, buildOptions(base, opts))
}

// Preview fetches a binary resource as a Blob. Response and error schemas
// are ignored; the payload is returned unparsed.
func Preview(c *Client, path string, query *hook.Values, opts ...CallOption) *Call[Blob] {
	o := rawOptions(buildOptions(Options{Query: query}, opts))
	return newCall(c, http.MethodGet, path, o, decodeBlob)
}

// PreviewWithAuth is Preview with a required bearer token.
func PreviewWithAuth(c *Client, path, token string, query *hook.Values, opts ...CallOption) *Call[Blob] {
	base := authed(token)
	base.Query = query
	return newCall(c, http.MethodGet, path, rawOptions(buildOptions(base, opts)), decodeBlob)
}

func rawOptions(o Options) Options {
	o.ResponseSchema = nil
	o.ErrorSchema = nil
	return o
}
