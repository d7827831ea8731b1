package fixture

// Runner is the narrow slice of the test runner that fixture capabilities
// depend on: a finalizer hook invoked once per test regardless of outcome,
// a per-test scratch directory, and failure reporting. *testing.T satisfies
// it; everything else in this package is runner-agnostic.
type Runner interface {
	Helper()
	Cleanup(fn func())
	TempDir() string
	Fatalf(format string, args ...interface{})
}
