package fixture

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/testbed/pkg/errors"
	"github.com/arthur-debert/testbed/pkg/logging"
	"github.com/arthur-debert/testbed/pkg/modload"
	"github.com/arthur-debert/testbed/pkg/paths"
	"github.com/arthur-debert/testbed/pkg/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Workspace provisions an isolated, uniquely named working directory per
// test: the process chdirs into it for the test's duration and its absolute
// path is prepended to the module search path, so same-named module files
// resolve unambiguously without relying on a relative current-directory
// entry.
type Workspace struct {
	fs     types.FS
	logger zerolog.Logger

	root    string
	prevDir string
	active  bool
	keep    bool
}

func newWorkspace(fs types.FS) *Workspace {
	return &Workspace{
		fs:     fs,
		logger: logging.GetLogger("fixture.workspace"),
	}
}

// Name implements Capability.
func (w *Workspace) Name() string { return "workspace" }

// SetUp implements Capability. With the runs-in-workspace flag off it does
// nothing; otherwise it creates the directory, chdirs into it and prepends
// its absolute path to the search path.
func (w *Workspace) SetUp(tc *TestContext) error {
	if !tc.runsInWorkspace {
		return nil
	}

	base := tc.workspaceRoot
	if base == "" {
		base = tc.runner.TempDir()
	}
	w.keep = tc.keepWorkspace

	root := filepath.Join(base, paths.WorkspacePrefix+uuid.NewString())
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return errors.Wrapf(err, errors.ErrWorkspaceCreate, "resolving workspace path %s", root)
	}
	if err := os.MkdirAll(absRoot, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrWorkspaceCreate, "creating workspace %s", absRoot)
	}

	prevDir, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, errors.ErrWorkspaceChdir, "reading current directory")
	}
	if err := os.Chdir(absRoot); err != nil {
		return errors.Wrapf(err, errors.ErrWorkspaceChdir, "entering workspace %s", absRoot)
	}

	w.root = absRoot
	w.prevDir = prevDir
	w.active = true

	tc.loader.SearchPath().Prepend(absRoot)

	w.logger.Debug().Str("root", absRoot).Msg("Workspace provisioned")
	return nil
}

// TearDown implements Capability: the prior current directory is restored
// unconditionally, the workspace's search path entry is dropped, and the
// directory is removed unless the context keeps workspaces.
func (w *Workspace) TearDown(tc *TestContext) error {
	if !w.active {
		return nil
	}
	w.active = false

	var firstErr error
	if err := os.Chdir(w.prevDir); err != nil {
		firstErr = errors.Wrapf(err, errors.ErrWorkspaceChdir, "restoring directory %s", w.prevDir)
	}

	w.removeSearchPathEntry(tc.loader.SearchPath())

	if !w.keep {
		if err := os.RemoveAll(w.root); err != nil && firstErr == nil {
			firstErr = errors.Wrapf(err, errors.ErrInternal, "removing workspace %s", w.root)
		}
	}

	return firstErr
}

// removeSearchPathEntry drops the first occurrence of the workspace root
// from the search path. Import isolation, when composed, has already
// restored its own snapshot by the time this runs.
func (w *Workspace) removeSearchPathEntry(sp *modload.SearchPath) {
	entries := sp.Entries()
	for i, e := range entries {
		if e == w.root {
			sp.SetEntries(append(entries[:i], entries[i+1:]...))
			return
		}
	}
}

// Root returns the workspace directory, or "" when no workspace is active.
func (w *Workspace) Root() string {
	return w.root
}

// Active reports whether a workspace is provisioned for the current test.
func (w *Workspace) Active() bool {
	return w.active
}

// fileParams collects MakeFile options
type fileParams struct {
	text    string
	data    []byte
	newline string
}

// FileOption configures a MakeFile call.
type FileOption func(*fileParams)

// WithText sets the file's content from a string.
func WithText(text string) FileOption {
	return func(p *fileParams) { p.text = text }
}

// WithBytes sets the file's content from raw bytes. Takes precedence over
// WithText; exactly one of the two is meaningful per call.
func WithBytes(data []byte) FileOption {
	return func(p *fileParams) { p.data = data }
}

// WithNewline rewrites the text content's line endings before writing.
func WithNewline(newline string) FileOption {
	return func(p *fileParams) { p.newline = newline }
}

// MakeFile writes a file under the workspace, creating parent directories
// as needed, and returns its absolute path. It fails with a precondition
// error, writing nothing, when the context runs without a workspace.
func (w *Workspace) MakeFile(filename string, opts ...FileOption) (string, error) {
	if !w.active {
		return "", errors.New(errors.ErrPrecondition, "MakeFile requires a workspace; this test runs without one")
	}

	var p fileParams
	for _, opt := range opts {
		opt(&p)
	}

	content := p.data
	if content == nil {
		text := p.text
		if p.newline != "" {
			text = strings.ReplaceAll(text, "\n", p.newline)
		}
		content = []byte(text)
	}

	path := filepath.Join(w.root, filename)
	if dir := filepath.Dir(path); dir != "." {
		if err := w.fs.MkdirAll(dir, 0755); err != nil {
			return "", errors.Wrapf(err, errors.ErrDirCreate, "creating parent directory for %s", filename)
		}
	}
	if err := w.fs.WriteFile(path, content, 0644); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileWrite, "writing %s", filename)
	}

	return path, nil
}
