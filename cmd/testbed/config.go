package testbed

import (
	"github.com/arthur-debert/testbed/pkg/config"
	"github.com/arthur-debert/testbed/pkg/paths"
)

// loadConfig resolves the CLI's configuration: testbed.toml from the XDG
// config dir layered with TESTBED_* environment overrides. Errors fall back
// to defaults; the CLI stays usable with a broken config file.
func loadConfig() *config.Config {
	configPath := ""
	if p, err := paths.New(""); err == nil {
		configPath = p.ConfigFilePath()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		def := config.Default()
		return &def
	}
	return cfg
}
