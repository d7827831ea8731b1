package modload

import (
	"strings"
	"time"

	"github.com/arthur-debert/testbed/pkg/errors"
	"golang.org/x/mod/module"
)

// Module is the loaded representation of a module source file.
type Module struct {
	// Name is the dotted module identifier, e.g. "pkg.mod"
	Name string

	// Source is the absolute path of the file the module was loaded from
	Source string

	// Values holds the module's parsed top-level values
	Values map[string]interface{}

	// LoadedAt records when the module entered the registry
	LoadedAt time.Time

	// finalizers run when the module is removed from the registry
	finalizers []func()
}

// Value returns the named top-level value, or nil when absent.
func (m *Module) Value(key string) interface{} {
	if m.Values == nil {
		return nil
	}
	return m.Values[key]
}

// AddFinalizer registers fn to run when the module is purged from the
// registry. Finalizer panics are swallowed during purge: a test's outcome is
// already determined by its body and must not be overwritten by cleanup.
func (m *Module) AddFinalizer(fn func()) {
	m.finalizers = append(m.finalizers, fn)
}

// CheckName validates a dotted module identifier. Identifiers map onto
// slash-separated paths, so the import path rules apply to the mapped form.
func CheckName(name string) error {
	if name == "" {
		return errors.New(errors.ErrModuleInvalid, "empty module name")
	}
	if strings.Contains(name, "/") || strings.Contains(name, "\\") {
		return errors.Newf(errors.ErrModuleInvalid, "module name %q must use dots, not path separators", name)
	}
	asPath := strings.ReplaceAll(name, ".", "/")
	if err := module.CheckImportPath(asPath); err != nil {
		return errors.Wrapf(err, errors.ErrModuleInvalid, "invalid module name %q", name)
	}
	return nil
}

// relSourcePath maps a dotted identifier to its source file path relative to
// a search path entry: "pkg.mod" -> "pkg/mod.toml".
func relSourcePath(name string) string {
	return strings.ReplaceAll(name, ".", "/") + SourceSuffix
}
