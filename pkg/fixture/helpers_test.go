package fixture_test

import (
	"testing"
)

// fakeRunner implements fixture.Runner with an explicitly driven cleanup
// phase, so tests can assert post-teardown state without waiting for the
// real runner's cleanup.
type fakeRunner struct {
	t        *testing.T
	cleanups []func()
	finished bool
}

func newFakeRunner(t *testing.T) *fakeRunner {
	t.Helper()
	return &fakeRunner{t: t}
}

func (r *fakeRunner) Helper() {}

func (r *fakeRunner) Cleanup(fn func()) {
	r.cleanups = append(r.cleanups, fn)
}

func (r *fakeRunner) TempDir() string {
	return r.t.TempDir()
}

func (r *fakeRunner) Fatalf(format string, args ...interface{}) {
	r.t.Fatalf(format, args...)
}

// finish runs the registered cleanups the way the runner would: last
// registered first, exactly once.
func (r *fakeRunner) finish() {
	if r.finished {
		return
	}
	r.finished = true
	for i := len(r.cleanups) - 1; i >= 0; i-- {
		r.cleanups[i]()
	}
}
