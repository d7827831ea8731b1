package fixture_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/testbed/pkg/fixture"
	"github.com/arthur-debert/testbed/pkg/modload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportIsolationRestoresSearchPath(t *testing.T) {
	loader := newIsolatedLoader()
	loader.SearchPath().Append("/pre/existing")
	before := loader.SearchPath().Entries()

	r := newFakeRunner(t)
	tc := fixture.New(r, fixture.WithLoader(loader), fixture.WithImportIsolation())

	// The test body rearranges the search path at will
	loader.SearchPath().Prepend("/test/added")
	loader.SearchPath().Append("/another")
	require.NotEqual(t, before, loader.SearchPath().Entries())
	_ = tc

	r.finish()
	assert.Equal(t, before, loader.SearchPath().Entries(),
		"search path must be restored verbatim")
}

func TestImportIsolationPurgesNewModules(t *testing.T) {
	loader := newIsolatedLoader()

	// A module loaded before the test must survive it
	preDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(preDir, "pre.toml"), []byte("v = 1\n"), 0644))
	loader.SearchPath().Append(preDir)
	_, err := loader.Load("pre")
	require.NoError(t, err)

	r := newFakeRunner(t)
	tc := fixture.New(r, fixture.WithLoader(loader), fixture.WithImportIsolation())

	_, err = tc.Workspace().MakeFile("during.toml", fixture.WithText("v = 2\n"))
	require.NoError(t, err)
	_, err = loader.Load("during")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"pre", "during"}, loader.Registry().Names())

	r.finish()

	assert.Equal(t, []string{"pre"}, loader.Registry().Names(),
		"modules loaded during the test are purged; pre-existing ones stay")
}

func TestCleanLocalImportsAllowsReimport(t *testing.T) {
	loader := newIsolatedLoader()
	r := newFakeRunner(t)
	defer r.finish()
	tc := fixture.New(r, fixture.WithLoader(loader), fixture.WithImportIsolation())

	_, err := tc.Workspace().MakeFile("pkg/mod.toml", fixture.WithText("x = 1\n"))
	require.NoError(t, err)

	m1, err := loader.Load("pkg.mod")
	require.NoError(t, err)
	assert.Equal(t, int64(1), m1.Value("x"))

	// Without cleaning, a second load sees the cached module
	_, err = tc.Workspace().MakeFile("pkg/mod.toml", fixture.WithText("x = 2\n"))
	require.NoError(t, err)
	cached, err := loader.Load("pkg.mod")
	require.NoError(t, err)
	assert.Equal(t, int64(1), cached.Value("x"))

	// Cleaning forces the next load to read the rewritten source
	tc.Imports().CleanLocalImports()
	m2, err := loader.Load("pkg.mod")
	require.NoError(t, err)
	assert.Equal(t, int64(2), m2.Value("x"))
	assert.NotSame(t, m1, m2, "re-import must yield a fresh module object")
}

func TestCleanLocalImportsRemovesArtifacts(t *testing.T) {
	loader := newIsolatedLoader()
	r := newFakeRunner(t)
	defer r.finish()
	tc := fixture.New(r, fixture.WithLoader(loader), fixture.WithImportIsolation())

	_, err := tc.Workspace().MakeFile("pkg/mod.toml", fixture.WithText("x = 1\n"))
	require.NoError(t, err)
	_, err = loader.Load("pkg.mod")
	require.NoError(t, err)

	cacheDir := filepath.Join(tc.Workspace().Root(), "pkg", modload.CacheDirName)
	_, err = os.Stat(cacheDir)
	require.NoError(t, err, "loading should have produced a compiled artifact cache")

	tc.Imports().CleanLocalImports()

	_, err = os.Stat(cacheDir)
	assert.Error(t, err, "compiled artifact cache should be removed")
}

func TestCleanLocalImportsIdempotent(t *testing.T) {
	loader := newIsolatedLoader()
	r := newFakeRunner(t)
	defer r.finish()
	tc := fixture.New(r, fixture.WithLoader(loader), fixture.WithImportIsolation())

	_, err := tc.Workspace().MakeFile("mod.toml", fixture.WithText("x = 1\n"))
	require.NoError(t, err)
	_, err = loader.Load("mod")
	require.NoError(t, err)

	tc.Imports().CleanLocalImports()
	namesAfterFirst := loader.Registry().Names()

	require.NotPanics(t, func() { tc.Imports().CleanLocalImports() })
	assert.Equal(t, namesAfterFirst, loader.Registry().Names(),
		"a second clean with no intervening import changes nothing")
}

func TestImportIsolationModuleFinalizerPanicIgnored(t *testing.T) {
	loader := newIsolatedLoader()
	r := newFakeRunner(t)
	tc := fixture.New(r, fixture.WithLoader(loader), fixture.WithImportIsolation())

	_, err := tc.Workspace().MakeFile("mod.toml", fixture.WithText("x = 1\n"))
	require.NoError(t, err)
	m, err := loader.Load("mod")
	require.NoError(t, err)
	m.AddFinalizer(func() { panic("finalizer boom") })

	require.NotPanics(t, r.finish)
	assert.Empty(t, loader.Registry().Names())
}
