package fixture

import (
	"os"

	"github.com/arthur-debert/testbed/pkg/logging"
	"github.com/rs/zerolog"
)

// envSnapshot records a variable's pre-test state: its value, or its absence
type envSnapshot struct {
	value   string
	present bool
}

// Bridge connects a test context to the enclosing runner. It owns the
// cleanup registry (hooked into the runner's finalizer exactly once) and the
// scoped environment-variable mutations other capabilities build on.
type Bridge struct {
	runner   Runner
	registry *CleanupRegistry
	envSaved map[string]envSnapshot
	logger   zerolog.Logger
}

// AttachBridge binds a bridge to the runner. The cleanup registry fires once
// after the test body completes, pass or fail.
func AttachBridge(r Runner) *Bridge {
	b := &Bridge{
		runner:   r,
		registry: NewCleanupRegistry(),
		envSaved: make(map[string]envSnapshot),
		logger:   logging.GetLogger("fixture.bridge"),
	}
	r.Cleanup(b.registry.Run)
	return b
}

// RegisterCleanup appends a callback to run after the test body, in reverse
// registration order, even if the test body failed.
func (b *Bridge) RegisterCleanup(fn func()) {
	b.registry.Register(fn)
}

// Setenv sets an environment variable for the duration of the test. The
// prior value (or absence) is restored at teardown, no matter how many
// times the variable is mutated.
func (b *Bridge) Setenv(name, value string) {
	b.runner.Helper()
	b.snapshotEnv(name)
	if err := os.Setenv(name, value); err != nil {
		b.runner.Fatalf("failed to set environment variable %s: %v", name, err)
	}
}

// Unsetenv deletes an environment variable for the duration of the test,
// restoring the prior value (or absence) at teardown. Deleting a variable
// that is not set is not an error.
func (b *Bridge) Unsetenv(name string) {
	b.runner.Helper()
	b.snapshotEnv(name)
	if err := os.Unsetenv(name); err != nil {
		b.runner.Fatalf("failed to unset environment variable %s: %v", name, err)
	}
}

// snapshotEnv records the variable's pre-test state on first touch and
// registers its restoration. Later mutations of the same name reuse the
// original snapshot, so the restore always lands on the pre-test state.
func (b *Bridge) snapshotEnv(name string) {
	if _, seen := b.envSaved[name]; seen {
		return
	}
	value, present := os.LookupEnv(name)
	b.envSaved[name] = envSnapshot{value: value, present: present}

	b.registry.Register(func() {
		snap := b.envSaved[name]
		if snap.present {
			if err := os.Setenv(name, snap.value); err != nil {
				b.logger.Warn().Str("name", name).Err(err).Msg("Failed to restore environment variable")
			}
		} else {
			if err := os.Unsetenv(name); err != nil {
				b.logger.Warn().Str("name", name).Err(err).Msg("Failed to unset environment variable")
			}
		}
	})
}
