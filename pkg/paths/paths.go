// Package paths provides centralized path handling for testbed.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/testbed/pkg/errors"
)

// Environment variable names
const (
	// EnvWorkspaceRoot overrides the base directory under which
	// per-test workspaces are created
	EnvWorkspaceRoot = "TESTBED_WORKSPACE_ROOT"

	// EnvConfigDir overrides the XDG config directory for testbed
	EnvConfigDir = "TESTBED_CONFIG_DIR"

	// EnvCacheDir overrides the XDG cache directory for testbed
	EnvCacheDir = "TESTBED_CACHE_DIR"

	// EnvStateDir overrides the XDG state directory for testbed
	EnvStateDir = "TESTBED_STATE_DIR"
)

// Default directories and files
const (
	// TestbedDirName is the directory name for testbed-specific files
	TestbedDirName = "testbed"

	// ConfigFileName is the name of the configuration file
	ConfigFileName = "testbed.toml"

	// LogFileName is the name of the log file
	LogFileName = "testbed.log"

	// WorkspacePrefix is the name prefix of per-test workspace directories
	WorkspacePrefix = "tb-"
)

// Paths provides centralized path management for testbed
type Paths interface {
	ConfigDir() string
	CacheDir() string
	StateDir() string
	ConfigFilePath() string
	LogFilePath() string
	WorkspaceRoot() string
}

// paths provides centralized path management for testbed
type paths struct {
	xdgConfig     string
	xdgCache      string
	xdgState      string
	workspaceRoot string
}

// New creates a new Paths instance. The workspaceRoot argument is the base
// directory for per-test workspaces; if empty it is determined from the
// environment, falling back to the system temp directory.
func New(workspaceRoot string) (Paths, error) {
	p := &paths{}

	if workspaceRoot == "" {
		workspaceRoot = os.Getenv(EnvWorkspaceRoot)
	}
	if workspaceRoot == "" {
		workspaceRoot = os.TempDir()
	}
	absRoot, err := filepath.Abs(expandHome(workspaceRoot))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path for workspace root")
	}
	p.workspaceRoot = absRoot

	p.setupXDGDirs()

	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *paths) setupXDGDirs() {
	// Config directory
	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.xdgConfig = expandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, TestbedDirName)
	}

	// Cache directory
	if cacheDir := os.Getenv(EnvCacheDir); cacheDir != "" {
		p.xdgCache = expandHome(cacheDir)
	} else {
		p.xdgCache = filepath.Join(xdg.CacheHome, TestbedDirName)
	}

	// State directory - XDG doesn't provide StateHome, so we check manually
	if stateDir := os.Getenv(EnvStateDir); stateDir != "" {
		p.xdgState = expandHome(stateDir)
	} else if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		p.xdgState = filepath.Join(stateHome, TestbedDirName)
	} else {
		homeDir, _ := os.UserHomeDir()
		p.xdgState = filepath.Join(homeDir, ".local", "state", TestbedDirName)
	}
}

func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

func (p *paths) CacheDir() string {
	return p.xdgCache
}

func (p *paths) StateDir() string {
	return p.xdgState
}

func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.xdgConfig, ConfigFileName)
}

func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

func (p *paths) WorkspaceRoot() string {
	return p.workspaceRoot
}

// expandHome expands a leading ~ to the user's home directory
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return homeDir
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
