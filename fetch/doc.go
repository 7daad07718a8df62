// Package fetch is a typed HTTP client for JSON APIs.
//
// Each verb function returns a lazy *Call that is sent on Execute. Before it
// is sent, the request passes through the hook.Before pipeline
// (authorization, query, json, multipart, form); the response then passes
// through hook.After (response or error schema validation).
//
//	client, _ := fetch.New(fetch.Config{BaseURL: "http://localhost:3000"})
//	call := fetch.Get[[]Post](client, "/posts", hook.ValuesOf("page", 1),
//		fetch.WithResponseSchema(schema.Struct[[]Post]()))
//	posts, err := call.Execute(ctx)
//
// A *WithAuth call with an empty token is cancelled: nothing is sent and
// Execute returns an error matching ErrCancelled.
//
// Non-2xx responses are returned as *httpclient.Error with the parsed body
// available from Call.ErrorData.
package fetch
