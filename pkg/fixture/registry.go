package fixture

import (
	"github.com/arthur-debert/testbed/pkg/logging"
)

// CleanupRegistry holds the teardown callbacks registered during a test.
// Callbacks run in reverse registration order, each at most once. A failing
// callback never prevents the remaining callbacks from running: teardown is
// best-effort per callback, and a test's outcome is decided by its body,
// not its cleanup.
type CleanupRegistry struct {
	callbacks []func()
	ran       bool
}

// NewCleanupRegistry creates an empty registry.
func NewCleanupRegistry() *CleanupRegistry {
	return &CleanupRegistry{}
}

// Register appends a callback to run at test end.
func (r *CleanupRegistry) Register(fn func()) {
	r.callbacks = append(r.callbacks, fn)
}

// Len returns the number of registered callbacks.
func (r *CleanupRegistry) Len() int {
	return len(r.callbacks)
}

// Run invokes all callbacks in reverse registration order. Subsequent calls
// are no-ops, so a callback can never fire twice.
func (r *CleanupRegistry) Run() {
	if r.ran {
		return
	}
	r.ran = true

	logger := logging.GetLogger("fixture.cleanup")
	for i := len(r.callbacks) - 1; i >= 0; i-- {
		fn := r.callbacks[i]
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Warn().
						Interface("panic", rec).
						Msg("Cleanup callback panicked; continuing with remaining callbacks")
				}
			}()
			fn()
		}()
	}
}
