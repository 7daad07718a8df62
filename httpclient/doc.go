// Package httpclient is the transport under the hook pipelines. It resolves
// request paths against a base URL, applies a fixed timeout and redirect
// policy, refuses to send cancelled requests and classifies failures.
//
// # Basic Usage
//
//	t, err := httpclient.New(httpclient.Config{BaseURL: "http://localhost:3000"})
//
//	before, _ := hook.NewBefore(hook.Options{Query: hook.ValuesOf("name", "x")})
//	resp, err := t.Send(ctx, before.Run(hook.NewRequest(http.MethodGet, "/posts")))
//	if httpclient.IsCancelled(err) {
//	    // the request never left the process
//	}
//
// Non-2xx responses are returned as a *hook.Response with a nil error;
// use FromStatus to turn them into a typed *Error.
package httpclient
