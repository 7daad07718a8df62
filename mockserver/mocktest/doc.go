// Package mocktest runs the mock server inside tests.
//
//	srv := mocktest.NewComponent(mockserver.Config{})
//	testutil.Start(t, srv)
//	client, _ := fetch.New(fetch.Config{BaseURL: srv.BaseURL()})
package mocktest
