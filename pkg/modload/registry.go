package modload

import (
	"time"

	"github.com/arthur-debert/testbed/pkg/logging"
)

// Registry is the process-wide module cache: it maps a module identifier to
// its loaded representation and remembers insertion order. Modules stay
// registered across test boundaries unless explicitly purged.
type Registry struct {
	modules map[string]*Module
	order   []string
}

// defaultRegistry is the process-wide module cache
var defaultRegistry = NewRegistry()

// Modules returns the process-wide default registry.
func Modules() *Registry {
	return defaultRegistry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]*Module)}
}

// Get returns the module registered under name, or nil.
func (r *Registry) Get(name string) *Module {
	return r.modules[name]
}

// Names returns the registered module identifiers in insertion order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered modules.
func (r *Registry) Len() int {
	return len(r.order)
}

// Put registers a module, replacing any previous module with the same name
// (the original keeps its insertion-order slot).
func (r *Registry) Put(m *Module) {
	if m.LoadedAt.IsZero() {
		m.LoadedAt = time.Now()
	}
	if _, exists := r.modules[m.Name]; !exists {
		r.order = append(r.order, m.Name)
	}
	r.modules[m.Name] = m
}

// Remove unregisters the named module and runs its finalizers. Finalizer
// panics are swallowed; removal of an unknown name is a no-op.
func (r *Registry) Remove(name string) {
	m, ok := r.modules[name]
	if !ok {
		return
	}
	delete(r.modules, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	runFinalizers(m)
}

// PurgeExcept removes every module whose identifier is not in keep.
// It never fails: finalizer panics are swallowed per module.
func (r *Registry) PurgeExcept(keep map[string]bool) {
	for _, name := range r.Names() {
		if !keep[name] {
			r.Remove(name)
		}
	}
}

func runFinalizers(m *Module) {
	logger := logging.GetLogger("modload.registry")
	for _, fn := range m.finalizers {
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Warn().
						Str("module", m.Name).
						Interface("panic", rec).
						Msg("Module finalizer panicked during purge")
				}
			}()
			fn()
		}()
	}
}
