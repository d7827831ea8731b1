package fixture

import (
	"github.com/arthur-debert/testbed/pkg/modload"
	"github.com/arthur-debert/testbed/pkg/types"
)

// Option configures a TestContext at construction time.
type Option func(*TestContext)

// WithoutWorkspace disables workspace provisioning for this test. Workspace
// operations such as MakeFile then fail with a precondition error. The flag
// is fixed at construction and cannot change mid-test.
func WithoutWorkspace() Option {
	return func(tc *TestContext) {
		tc.runsInWorkspace = false
	}
}

// WithWorkspaceRoot overrides the base directory under which the workspace
// is created. The default is the runner's per-test temp directory.
func WithWorkspaceRoot(root string) Option {
	return func(tc *TestContext) {
		tc.workspaceRoot = root
	}
}

// WithKeepWorkspace leaves the workspace directory on disk at teardown,
// for post-mortem inspection.
func WithKeepWorkspace() Option {
	return func(tc *TestContext) {
		tc.keepWorkspace = true
	}
}

// WithImportIsolation composes module-loader isolation: the search path and
// the set of loaded modules are snapshotted before the test and restored at
// teardown.
func WithImportIsolation() Option {
	return func(tc *TestContext) {
		tc.imports = newImportIsolation()
		tc.capabilities = append(tc.capabilities, tc.imports)
	}
}

// WithCapture composes stdout/stderr capture with delta-read accessors.
func WithCapture() Option {
	return func(tc *TestContext) {
		tc.capture = newCapture()
		tc.capabilities = append(tc.capabilities, tc.capture)
	}
}

// Compose appends a custom capability, set up after the built-in ones
// declared before it.
func Compose(cap Capability) Option {
	return func(tc *TestContext) {
		tc.capabilities = append(tc.capabilities, cap)
	}
}

// WithSetup installs a per-test initialization hook, invoked after all
// capability setups have run, so the hook can assume workspace, capture and
// import isolation are already active.
func WithSetup(fn func(*TestContext)) Option {
	return func(tc *TestContext) {
		tc.setupHook = fn
	}
}

// WithFS overrides the filesystem used for workspace file creation and
// artifact cleanup. Intended for tests of the fixtures themselves.
func WithFS(fs types.FS) Option {
	return func(tc *TestContext) {
		tc.fs = fs
	}
}

// WithLoader binds the context to a specific module loader instead of the
// process-wide default.
func WithLoader(l *modload.FileLoader) Option {
	return func(tc *TestContext) {
		tc.loader = l
	}
}
