package fixture_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/arthur-debert/testbed/pkg/fixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingCapability traces its lifecycle into a shared log
type recordingCapability struct {
	name string
	log  *[]string
}

func (c *recordingCapability) Name() string { return c.name }

func (c *recordingCapability) SetUp(tc *fixture.TestContext) error {
	*c.log = append(*c.log, "setup:"+c.name)
	return nil
}

func (c *recordingCapability) TearDown(tc *fixture.TestContext) error {
	*c.log = append(*c.log, "teardown:"+c.name)
	return nil
}

func TestTeardownReverseOfSetup(t *testing.T) {
	var log []string

	r := newFakeRunner(t)
	fixture.New(r,
		fixture.WithoutWorkspace(),
		fixture.Compose(&recordingCapability{name: "a", log: &log}),
		fixture.Compose(&recordingCapability{name: "b", log: &log}),
		fixture.Compose(&recordingCapability{name: "c", log: &log}),
	)

	require.Equal(t, []string{"setup:a", "setup:b", "setup:c"}, log)

	r.finish()
	assert.Equal(t, []string{
		"setup:a", "setup:b", "setup:c",
		"teardown:c", "teardown:b", "teardown:a",
	}, log)
}

func TestSetupHookRunsAfterCapabilities(t *testing.T) {
	var sawActiveWorkspace, sawCapture bool

	r := newFakeRunner(t)
	defer r.finish()
	fixture.New(r,
		fixture.WithLoader(newIsolatedLoader()),
		fixture.WithCapture(),
		fixture.WithSetup(func(tc *fixture.TestContext) {
			sawActiveWorkspace = tc.Workspace().Active()
			sawCapture = tc.Capture() != nil
		}),
	)

	assert.True(t, sawActiveWorkspace, "setup hook must see the workspace already provisioned")
	assert.True(t, sawCapture, "setup hook must see capture already active")
}

func TestAccessorsWithoutComposition(t *testing.T) {
	r := newFakeRunner(t)
	defer r.finish()
	tc := fixture.New(r, fixture.WithoutWorkspace())

	assert.Nil(t, tc.Imports())
	assert.Nil(t, tc.Capture())
	assert.NotNil(t, tc.Workspace(), "workspace accessor is always non-nil")
	assert.NotNil(t, tc.Bridge())
}

func TestFailingTeardownDoesNotBlockOthers(t *testing.T) {
	var log []string

	r := newFakeRunner(t)
	fixture.New(r,
		fixture.WithoutWorkspace(),
		fixture.Compose(&recordingCapability{name: "inner", log: &log}),
		fixture.Compose(&panickyCapability{}),
	)

	require.NotPanics(t, r.finish)
	assert.Contains(t, log, "teardown:inner",
		"one capability's teardown failure must not prevent another's")
}

type panickyCapability struct{}

func (p *panickyCapability) Name() string                          { return "panicky" }
func (p *panickyCapability) SetUp(tc *fixture.TestContext) error   { return nil }
func (p *panickyCapability) TearDown(tc *fixture.TestContext) error { panic("teardown boom") }

// TestFullComposition drives all capabilities together through the
// re-import scenario: write a module, import it, clean local imports,
// rewrite, re-import, and observe the fresh value, with output capture and
// env overrides active throughout.
func TestFullComposition(t *testing.T) {
	const envName = "TESTBED_FULL_COMPOSITION"
	t.Setenv(envName, "before")

	loader := newIsolatedLoader()
	r := newFakeRunner(t)
	tc := fixture.New(r,
		fixture.WithLoader(loader),
		fixture.WithImportIsolation(),
		fixture.WithCapture(),
	)

	tc.Setenv(envName, "during")

	_, err := tc.Workspace().MakeFile("pkg/mod.toml", fixture.WithText("x = 1\n"))
	require.NoError(t, err)

	m, err := loader.Load("pkg.mod")
	require.NoError(t, err)
	require.Equal(t, int64(1), m.Value("x"))

	fmt.Fprintf(os.Stdout, "loaded x=%v", m.Value("x"))
	assert.Equal(t, "loaded x=1", tc.Capture().ReadOut())

	tc.Imports().CleanLocalImports()
	_, err = tc.Workspace().MakeFile("pkg/mod.toml", fixture.WithText("x = 2\n"))
	require.NoError(t, err)

	m2, err := loader.Load("pkg.mod")
	require.NoError(t, err)
	assert.Equal(t, int64(2), m2.Value("x"), "re-import must observe the rewritten source")

	fmt.Fprintf(os.Stdout, "loaded x=%v", m2.Value("x"))
	assert.Equal(t, "loaded x=2", tc.Capture().ReadOut())

	r.finish()

	assert.Equal(t, "before", os.Getenv(envName))
	assert.Empty(t, loader.Registry().Names())
	assert.Empty(t, loader.SearchPath().Entries())
}
