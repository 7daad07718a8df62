package hook

// Result is the outcome of the before pipeline: either *Proceed or
// *Cancelled. Both carry the request so later stages keep shaping it.
type Result interface {
	// Request returns the request being shaped.
	Request() *Request
	isResult()
}

// Proceed is a request that may be sent.
type Proceed struct {
	req *Request
}

// NewProceed wraps a fresh request.
func NewProceed(req *Request) *Proceed {
	return &Proceed{req: req}
}

// Request returns the request being shaped.
func (p *Proceed) Request() *Request { return p.req }

func (*Proceed) isResult() {}

// Cancelled is a request that must not be sent.
type Cancelled struct {
	req *Request
	// Reason describes which stage cancelled the request and why.
	Reason string
}

// Request returns the request being shaped.
func (c *Cancelled) Request() *Request { return c.req }

func (*Cancelled) isResult() {}

// Cancel marks res as cancelled. An already cancelled result keeps its
// first reason.
func Cancel(res Result, reason string) Result {
	if c, ok := res.(*Cancelled); ok {
		return c
	}
	return &Cancelled{req: res.Request(), Reason: reason}
}

// IsCancelled reports whether res is a *Cancelled.
func IsCancelled(res Result) bool {
	_, ok := res.(*Cancelled)
	return ok
}
