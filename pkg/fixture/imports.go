package fixture

import (
	"os"

	"github.com/arthur-debert/testbed/pkg/logging"
	"github.com/arthur-debert/testbed/pkg/modload"
	"github.com/arthur-debert/testbed/pkg/types"
	"github.com/rs/zerolog"
)

// ImportIsolation snapshots the module search path and the set of loaded
// modules before the test body runs and restores both at teardown, so a
// test's imports never leak into subsequent tests.
type ImportIsolation struct {
	loader modload.Loader
	sp     *modload.SearchPath
	reg    *modload.Registry
	fs     types.FS
	logger zerolog.Logger

	savedPath    []string
	savedModules map[string]bool
	active       bool
}

func newImportIsolation() *ImportIsolation {
	return &ImportIsolation{
		logger: logging.GetLogger("fixture.imports"),
	}
}

// Name implements Capability.
func (im *ImportIsolation) Name() string { return "imports" }

// SetUp implements Capability: it captures the search path verbatim and the
// identifiers of every currently loaded module.
func (im *ImportIsolation) SetUp(tc *TestContext) error {
	im.loader = tc.loader
	im.sp = tc.loader.SearchPath()
	im.reg = tc.loader.Registry()
	im.fs = tc.fs

	im.savedPath = im.sp.Entries()
	im.savedModules = make(map[string]bool)
	for _, name := range im.reg.Names() {
		im.savedModules[name] = true
	}
	im.active = true
	return nil
}

// TearDown implements Capability: the search path is restored to exactly
// the snapshot, and every module loaded since the snapshot is purged from
// the registry. Purging never fails; finalizer panics are swallowed.
func (im *ImportIsolation) TearDown(tc *TestContext) error {
	if !im.active {
		return nil
	}
	im.active = false

	im.sp.SetEntries(im.savedPath)
	im.reg.PurgeExcept(im.savedModules)
	return nil
}

// CleanLocalImports forces the post-test module purge early, mid-test, so a
// source file already imported once can be imported again as a fresh
// module. It also removes compiled artifacts in the current workspace (their
// timestamps have second resolution, so a quick rewrite might otherwise be
// served stale) and invokes the loader's cache-invalidation hook when that
// optional capability is present. Calling it repeatedly is idempotent.
func (im *ImportIsolation) CleanLocalImports() {
	if !im.active {
		return
	}

	im.reg.PurgeExcept(im.savedModules)

	cwd, err := os.Getwd()
	if err == nil {
		modload.RemoveCaches(im.fs, cwd)
	} else {
		im.logger.Warn().Err(err).Msg("Cannot determine working directory; skipping artifact cleanup")
	}

	modload.InvalidateCaches(im.loader)
}
