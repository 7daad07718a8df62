package hook

import (
	"encoding/json"
	"fmt"
)

// Encoder produces a pre-encoded request body and its content type.
// httpclient.MultipartBody implements it.
type Encoder interface {
	Encode() (data []byte, contentType string, err error)
}

// Validator checks a parsed response body. schema.Schema implements it.
type Validator interface {
	Validate(data any) error
}

// Diagnostics receives schema mismatches before they are returned to the
// caller. Implementations decide whether anything is printed.
type Diagnostics interface {
	SchemaMismatch(kind Kind, resp *Response, err error)
}

// NopDiagnostics discards every report.
type NopDiagnostics struct{}

// SchemaMismatch does nothing.
func (NopDiagnostics) SchemaMismatch(Kind, *Response, error) {}

// Options declares what the pipelines should do. Every field is optional;
// its zero value makes the matching stage an identity step.
type Options struct {
	// BearerRequired enables the Authorization stage. When set and Token is
	// empty the request is cancelled instead of sent.
	BearerRequired bool
	// Token is the bearer token sent as "Authorization: Bearer <token>".
	Token string
	// Query is appended to the URL as a query string. Nil or empty: no-op.
	Query *Values
	// JSON is marshalled as an application/json body. Nil: no-op.
	JSON any
	// Multipart is attached as a multipart/form-data body. Nil: no-op.
	Multipart Encoder
	// Form is encoded as an application/x-www-form-urlencoded body. Nil or
	// empty: no-op.
	Form *Values
	// ResponseSchema validates 2xx response bodies. Nil: no-op.
	ResponseSchema Validator
	// ErrorSchema validates non-2xx response bodies. Nil: no-op.
	ErrorSchema Validator
}

// Fold threads input through fns left to right: fn_n(...fn_2(fn_1(input))).
func Fold[C any](input C, fns ...func(C) C) C {
	for _, fn := range fns {
		input = fn(input)
	}
	return input
}

// Before is the fixed five-stage request pipeline.
type Before struct {
	stages [5]BeforeStage
}

// NewBefore builds the before pipeline from opts. Bodies are encoded here so
// that running the pipeline cannot fail.
func NewBefore(opts Options) (*Before, error) {
	auth := Absent[string]()
	if opts.BearerRequired {
		auth = Present(opts.Token)
	}

	query := Absent[string]()
	if enc := opts.Query.Encode(); enc != "" {
		query = Present(enc)
	}

	jsonBody := Absent[[]byte]()
	if opts.JSON != nil {
		data, err := json.Marshal(opts.JSON)
		if err != nil {
			return nil, fmt.Errorf("hook: encode json body: %w", err)
		}
		jsonBody = Present(data)
	}

	multipart := Absent[encodedBody]()
	if opts.Multipart != nil {
		data, ct, err := opts.Multipart.Encode()
		if err != nil {
			return nil, fmt.Errorf("hook: encode multipart body: %w", err)
		}
		multipart = Present(encodedBody{data: data, contentType: ct})
	}

	form := Absent[string]()
	if opts.Form.Len() > 0 {
		form = Present(opts.Form.Encode())
	}

	return &Before{stages: [5]BeforeStage{
		authorizationStage{token: auth},
		queryStage{encoded: query},
		jsonStage{data: jsonBody},
		multipartStage{payload: multipart},
		formStage{encoded: form},
	}}, nil
}

// Stages returns the stages in execution order.
func (b *Before) Stages() []BeforeStage {
	return b.stages[:]
}

// Run folds req through every stage. A stage that cancels does not stop the
// fold; the returned Result tells the transport whether to send.
func (b *Before) Run(req *Request) Result {
	fns := make([]func(Result) Result, len(b.stages))
	for i, st := range b.stages {
		fns[i] = st.Apply
	}
	return Fold[Result](NewProceed(req), fns...)
}

// After is the fixed two-stage response pipeline.
type After struct {
	stages [2]AfterStage
}

// NewAfter builds the after pipeline. A nil diag discards reports.
func NewAfter(opts Options, diag Diagnostics) *After {
	if diag == nil {
		diag = NopDiagnostics{}
	}
	respSchema := Absent[Validator]()
	if opts.ResponseSchema != nil {
		respSchema = Present(opts.ResponseSchema)
	}
	errSchema := Absent[Validator]()
	if opts.ErrorSchema != nil {
		errSchema = Present(opts.ErrorSchema)
	}
	return &After{stages: [2]AfterStage{
		responseSchemaStage{schema: respSchema, diag: diag},
		errorSchemaStage{schema: errSchema, diag: diag},
	}}
}

// Stages returns the stages in execution order.
func (a *After) Stages() []AfterStage {
	return a.stages[:]
}

// Run applies every stage to resp and returns the first error.
func (a *After) Run(resp *Response) error {
	for _, st := range a.stages {
		if err := st.Apply(resp); err != nil {
			return err
		}
	}
	return nil
}
