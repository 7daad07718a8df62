package testutil

import (
	"context"
	"testing"

	"github.com/kbukum/fetchkit/component"
)

// Resetter is a component that can return to its initial state between
// test cases without a restart.
type Resetter interface {
	component.Component
	Reset(ctx context.Context) error
}

// Fixture is a Resetter whose state can also be captured as an S and put
// back later.
type Fixture[S any] interface {
	Resetter
	Snapshot(ctx context.Context) (S, error)
	Restore(ctx context.Context, snapshot S) error
}

// Start starts c and stops it when t ends.
func Start(t testing.TB, c component.Component) {
	t.Helper()
	if err := c.Start(t.Context()); err != nil {
		t.Fatalf("testutil: start %s: %v", c.Name(), err)
	}
	t.Cleanup(func() {
		// t.Context is already cancelled when cleanups run.
		if err := c.Stop(context.Background()); err != nil {
			t.Errorf("testutil: stop %s: %v", c.Name(), err)
		}
	})
}

// Reset resets r or fails t.
func Reset(t testing.TB, r Resetter) {
	t.Helper()
	if err := r.Reset(t.Context()); err != nil {
		t.Fatalf("testutil: reset %s: %v", r.Name(), err)
	}
}

// Checkpoint snapshots f and returns a func that restores the snapshot:
//
//	defer testutil.Checkpoint(t, srv)()
func Checkpoint[S any](t testing.TB, f Fixture[S]) func() {
	t.Helper()
	snap, err := f.Snapshot(t.Context())
	if err != nil {
		t.Fatalf("testutil: snapshot %s: %v", f.Name(), err)
	}
	return func() {
		t.Helper()
		if err := f.Restore(context.Background(), snap); err != nil {
			t.Fatalf("testutil: restore %s: %v", f.Name(), err)
		}
	}
}
