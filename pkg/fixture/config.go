package fixture

import (
	"sync"

	"github.com/arthur-debert/testbed/pkg/config"
	"github.com/arthur-debert/testbed/pkg/logging"
	"github.com/arthur-debert/testbed/pkg/modload"
	"github.com/arthur-debert/testbed/pkg/paths"
)

var seedOnce sync.Once

// loadSettings resolves the layered configuration for this process:
// defaults, then testbed.toml from the XDG config dir, then TESTBED_*
// environment overrides. A broken config file falls back to defaults so it
// cannot prevent tests from running.
func loadSettings() *config.Config {
	logger := logging.GetLogger("fixture.config")

	configPath := ""
	if p, err := paths.New(""); err == nil {
		configPath = p.ConfigFilePath()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Warn().Err(err).Msg("Config unreadable; using defaults")
		def := config.Default()
		cfg = &def
	}

	// A configured workspace root goes through the usual path resolution
	// (~ expansion, absolute)
	if cfg.Workspace.Root != "" {
		if p, err := paths.New(cfg.Workspace.Root); err == nil {
			cfg.Workspace.Root = p.WorkspaceRoot()
		}
	}
	return cfg
}

// seedSearchPath appends the configured modules.search_path entries to the
// process-wide module search path, once per process, before any test runs.
func seedSearchPath(cfg *config.Config) {
	seedOnce.Do(func() {
		for _, dir := range cfg.Modules.SearchPath {
			modload.Path().Append(dir)
		}
	})
}
