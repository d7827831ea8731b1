// Package fixture provides composable per-test lifecycle capabilities:
// an isolated workspace directory, module-loader isolation, stdout/stderr
// capture, and scoped environment-variable overrides.
//
// A test composes the capabilities it needs into a TestContext:
//
//	func TestSomething(t *testing.T) {
//		tc := fixture.New(t, fixture.WithImportIsolation(), fixture.WithCapture())
//		path, err := tc.Workspace().MakeFile("pkg/mod.toml", fixture.WithText("x = 1"))
//		...
//	}
//
// Capabilities set up in declaration order (workspace first) and tear down
// in reverse order through a cleanup registry, regardless of test outcome.
// A TestContext is scoped to one test and is not safe for concurrent use;
// tests sharing process-wide state (working directory, module registry,
// search path) must run sequentially within a process.
package fixture
