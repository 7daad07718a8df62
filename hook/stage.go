package hook

import "strings"

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

// ReasonTokenRequired is the cancellation reason used when a bearer token is
// required but missing.
const ReasonTokenRequired = "bearer token required"

// BeforeStage shapes the outgoing request. Apply receives the running
// Result and returns it, possibly converted to *Cancelled.
type BeforeStage interface {
	Kind() Kind
	Apply(Result) Result
}

// AfterStage inspects the received response. A non-nil error ends the after
// pipeline and fails the call.
type AfterStage interface {
	Kind() Kind
	Apply(*Response) error
}

// --- before stages ---

type authorizationStage struct {
	token Slot[string]
}

func (authorizationStage) Kind() Kind { return KindAuthorization }

func (s authorizationStage) Apply(res Result) Result {
	token, ok := s.token.Get()
	if !ok {
		return res
	}
	if token == "" {
		return Cancel(res, ReasonTokenRequired)
	}
	res.Request().Header.Set("Authorization", "Bearer "+token)
	return res
}

type queryStage struct {
	encoded Slot[string]
}

func (queryStage) Kind() Kind { return KindQuery }

func (s queryStage) Apply(res Result) Result {
	enc, ok := s.encoded.Get()
	if !ok {
		return res
	}
	req := res.Request()
	sep := "?"
	if strings.Contains(req.URL, "?") {
		sep = "&"
	}
	req.URL += sep + enc
	return res
}

type jsonStage struct {
	data Slot[[]byte]
}

func (jsonStage) Kind() Kind { return KindJSON }

func (s jsonStage) Apply(res Result) Result {
	if data, ok := s.data.Get(); ok {
		res.Request().setBody(BodyJSON, data, contentTypeJSON)
	}
	return res
}

// encodedBody is a pre-encoded payload with its content type.
type encodedBody struct {
	data        []byte
	contentType string
}

type multipartStage struct {
	payload Slot[encodedBody]
}

func (multipartStage) Kind() Kind { return KindMultipart }

func (s multipartStage) Apply(res Result) Result {
	if p, ok := s.payload.Get(); ok {
		res.Request().setBody(BodyMultipart, p.data, p.contentType)
	}
	return res
}

type formStage struct {
	encoded Slot[string]
}

func (formStage) Kind() Kind { return KindForm }

func (s formStage) Apply(res Result) Result {
	if enc, ok := s.encoded.Get(); ok {
		res.Request().setBody(BodyForm, []byte(enc), contentTypeForm)
	}
	return res
}

// --- after stages ---

type responseSchemaStage struct {
	schema Slot[Validator]
	diag   Diagnostics
}

func (responseSchemaStage) Kind() Kind { return KindResponseSchema }

func (s responseSchemaStage) Apply(resp *Response) error {
	v, ok := s.schema.Get()
	if !ok || !resp.OK {
		return nil
	}
	return validate(KindResponseSchema, v, resp, s.diag)
}

type errorSchemaStage struct {
	schema Slot[Validator]
	diag   Diagnostics
}

func (errorSchemaStage) Kind() Kind { return KindErrorSchema }

func (s errorSchemaStage) Apply(resp *Response) error {
	v, ok := s.schema.Get()
	if !ok || resp.OK {
		return nil
	}
	return validate(KindErrorSchema, v, resp, s.diag)
}

func validate(kind Kind, v Validator, resp *Response, diag Diagnostics) error {
	if err := v.Validate(resp.Data); err != nil {
		diag.SchemaMismatch(kind, resp, err)
		return err
	}
	return nil
}
