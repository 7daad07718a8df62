package hook

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
)

// BodyKind tags the encoding of a request body.
type BodyKind int

const (
	// BodyNone means the request carries no body.
	BodyNone BodyKind = iota
	// BodyJSON is UTF-8 JSON text.
	BodyJSON
	// BodyMultipart is a raw multipart/form-data payload.
	BodyMultipart
	// BodyForm is application/x-www-form-urlencoded text.
	BodyForm
)

// String returns the body kind name.
func (k BodyKind) String() string {
	switch k {
	case BodyJSON:
		return "json"
	case BodyMultipart:
		return "multipart"
	case BodyForm:
		return "form"
	default:
		return "none"
	}
}

// Body is a request body with its encoding. At most one encoding is set;
// the last body stage to write wins.
type Body struct {
	Kind BodyKind
	Data []byte
}

// IsEmpty reports whether no body is set.
func (b Body) IsEmpty() bool {
	return b.Kind == BodyNone
}

// Reader returns a reader over the body bytes, or nil when no body is set.
func (b Body) Reader() io.Reader {
	if b.IsEmpty() {
		return nil
	}
	return bytes.NewReader(b.Data)
}

// Request is the mutable outgoing request context threaded through the
// before pipeline. It is owned by a single call and discarded afterwards.
type Request struct {
	// Method is the HTTP method.
	Method string
	// URL is the request path or absolute URL. The transport resolves it
	// against its base URL.
	URL string
	// Header holds the outgoing headers.
	Header http.Header
	// Body is the encoded request body.
	Body Body
}

// NewRequest creates a request context with empty headers and no body.
func NewRequest(method, url string) *Request {
	return &Request{
		Method: method,
		URL:    url,
		Header: make(http.Header),
	}
}

// setBody replaces the body and its content type.
func (r *Request) setBody(kind BodyKind, data []byte, contentType string) {
	r.Body = Body{Kind: kind, Data: data}
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
}

// Response is the received response context threaded through the after
// pipeline.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// OK is true iff StatusCode is in the 2xx range.
	OK bool
	// Header holds the response headers.
	Header http.Header
	// Raw is the unparsed response payload.
	Raw []byte
	// Data is the payload parsed as JSON, or nil when the payload is empty
	// or not JSON.
	Data any
}

// NewResponse builds a response context and parses raw as JSON when it
// holds a JSON document. Numbers are kept as json.Number.
func NewResponse(statusCode int, header http.Header, raw []byte) *Response {
	if header == nil {
		header = make(http.Header)
	}
	resp := &Response{
		StatusCode: statusCode,
		OK:         statusCode >= 200 && statusCode < 300,
		Header:     header,
		Raw:        raw,
	}
	if len(bytes.TrimSpace(raw)) > 0 && json.Valid(raw) {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var data any
		if err := dec.Decode(&data); err == nil {
			resp.Data = data
		}
	}
	return resp
}
