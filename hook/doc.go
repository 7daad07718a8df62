// Package hook implements the request/response shaping pipeline used by the
// fetch client.
//
// A call is shaped by two fixed-length pipelines. The before pipeline folds a
// Result (wrapping the outgoing Request) through five stages, strictly left
// to right:
//
//	Authorization -> Query -> JSON -> Multipart -> Form
//
// The after pipeline runs two stages over the received Response:
//
//	ResponseSchema (2xx only) -> ErrorSchema (non-2xx only)
//
// Every stage owns a Slot that is either Absent or Present(payload). An
// absent slot makes the stage an identity step, so the pipeline length never
// changes and the fold itself has no branches.
//
// Cancellation is a value, not a flag: the Authorization stage turns the
// Result into a *Cancelled when a bearer token is required but missing. Later
// stages still run against the cancelled request; the transport inspects the
// final Result and never dials a cancelled one.
//
// # Usage
//
//	before, err := hook.NewBefore(hook.Options{
//	    BearerRequired: true,
//	    Token:          token,
//	    Query:          hook.ValuesOf("name", "testing", "tags", []string{"a", "b"}),
//	})
//	res := before.Run(hook.NewRequest(http.MethodGet, "/posts"))
//	if c, ok := res.(*hook.Cancelled); ok {
//	    log.Println("not sent:", c.Reason)
//	}
package hook
