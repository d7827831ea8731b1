package fixture

import (
	"github.com/arthur-debert/testbed/pkg/filesystem"
	"github.com/arthur-debert/testbed/pkg/logging"
	"github.com/arthur-debert/testbed/pkg/modload"
	"github.com/arthur-debert/testbed/pkg/types"
	"github.com/rs/zerolog"
)

// TestContext is the per-test composition of fixture capabilities. Create
// one at the start of a test; all acquired resources are released through
// the runner's finalizer when the test ends.
type TestContext struct {
	runner Runner
	bridge *Bridge

	runsInWorkspace bool
	workspaceRoot   string
	keepWorkspace   bool

	fs     types.FS
	loader *modload.FileLoader

	workspace *Workspace
	imports   *ImportIsolation
	capture   *Capture

	capabilities []Capability
	setupHook    func(*TestContext)
	logger       zerolog.Logger
}

// New builds a TestContext for the runner: the bridge is established first,
// then each composed capability is set up in declaration order (workspace
// before optioned capabilities) with its teardown registered through the
// bridge, and finally the per-test setup hook runs. Setup failures abort
// the test via the runner.
//
// Workspace root and keep-on-exit default from the resolved configuration
// (testbed.toml plus TESTBED_* overrides); options take precedence.
func New(r Runner, opts ...Option) *TestContext {
	r.Helper()

	cfg := loadSettings()
	seedSearchPath(cfg)

	tc := &TestContext{
		runner:          r,
		bridge:          AttachBridge(r),
		runsInWorkspace: true,
		workspaceRoot:   cfg.Workspace.Root,
		keepWorkspace:   cfg.Workspace.Keep,
		fs:              filesystem.NewOS(),
		loader:          modload.DefaultLoader(),
		logger:          logging.GetLogger("fixture.context"),
	}

	for _, opt := range opts {
		opt(tc)
	}

	// The workspace capability is always composed; the runs-in-workspace
	// flag decides whether it provisions anything.
	tc.workspace = newWorkspace(tc.fs)
	caps := append([]Capability{tc.workspace}, tc.capabilities...)
	tc.capabilities = caps

	for _, cap := range caps {
		if err := cap.SetUp(tc); err != nil {
			r.Fatalf("fixture %s setup failed: %v", cap.Name(), err)
			return tc
		}
		tc.registerTearDown(cap)
	}

	if tc.setupHook != nil {
		tc.setupHook(tc)
	}

	return tc
}

// registerTearDown routes a capability's teardown through the bridge, so
// ordering is reverse-of-setup and a teardown error never fails the test.
func (tc *TestContext) registerTearDown(cap Capability) {
	tc.bridge.RegisterCleanup(func() {
		if err := cap.TearDown(tc); err != nil {
			tc.logger.Warn().
				Str("capability", cap.Name()).
				Err(err).
				Msg("Capability teardown failed")
		}
	})
}

// Bridge returns the runner bridge for cleanup registration and scoped
// environment mutation.
func (tc *TestContext) Bridge() *Bridge {
	return tc.bridge
}

// RegisterCleanup is shorthand for Bridge().RegisterCleanup.
func (tc *TestContext) RegisterCleanup(fn func()) {
	tc.bridge.RegisterCleanup(fn)
}

// Setenv is shorthand for Bridge().Setenv.
func (tc *TestContext) Setenv(name, value string) {
	tc.bridge.Setenv(name, value)
}

// Unsetenv is shorthand for Bridge().Unsetenv.
func (tc *TestContext) Unsetenv(name string) {
	tc.bridge.Unsetenv(name)
}

// RunsInWorkspace reports whether this context provisions a workspace.
func (tc *TestContext) RunsInWorkspace() bool {
	return tc.runsInWorkspace
}

// Workspace returns the workspace capability. It is always non-nil; its
// operations fail with a precondition error when the context was built
// with WithoutWorkspace.
func (tc *TestContext) Workspace() *Workspace {
	return tc.workspace
}

// Imports returns the import isolation capability, or nil when the context
// was composed without it.
func (tc *TestContext) Imports() *ImportIsolation {
	return tc.imports
}

// Capture returns the output capture capability, or nil when the context
// was composed without it.
func (tc *TestContext) Capture() *Capture {
	return tc.capture
}

// Loader returns the module loader this context isolates.
func (tc *TestContext) Loader() *modload.FileLoader {
	return tc.loader
}
