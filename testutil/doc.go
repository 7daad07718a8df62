// Package testutil runs components inside tests.
//
//	func TestFeature(t *testing.T) {
//	    testutil.Start(t, srv) // stopped when the test ends
//	    ...
//	    testutil.Reset(t, srv)
//	}
package testutil
