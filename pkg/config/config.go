// Package config loads testbed's layered configuration: built-in defaults,
// an optional testbed.toml file, and TESTBED_* environment overrides, in
// that order of precedence (later layers win).
package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/testbed/pkg/errors"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables that override config keys
const EnvPrefix = "TESTBED_"

// Config is the resolved testbed configuration
type Config struct {
	Workspace WorkspaceConfig `koanf:"workspace" toml:"workspace"`
	Modules   ModulesConfig   `koanf:"modules" toml:"modules"`
	Logging   LoggingConfig   `koanf:"logging" toml:"logging"`
}

// WorkspaceConfig controls per-test workspace provisioning
type WorkspaceConfig struct {
	// Root is the base directory under which workspaces are created;
	// empty means the runner's per-test temp directory
	Root string `koanf:"root" toml:"root"`

	// Keep leaves workspace directories on disk at teardown
	Keep bool `koanf:"keep" toml:"keep"`
}

// ModulesConfig controls the module loader
type ModulesConfig struct {
	// SearchPath seeds the module search path before any test runs
	SearchPath []string `koanf:"search_path" toml:"search_path"`
}

// LoggingConfig controls log output
type LoggingConfig struct {
	// Verbosity maps onto log levels: 0 warn, 1 info, 2 debug, 3+ trace
	Verbosity int `koanf:"verbosity" toml:"verbosity"`
}

// Default returns the built-in configuration defaults.
func Default() Config {
	return Config{
		Workspace: WorkspaceConfig{Root: "", Keep: false},
		Modules:   ModulesConfig{SearchPath: nil},
		Logging:   LoggingConfig{Verbosity: 0},
	}
}

func defaultsMap() map[string]interface{} {
	return map[string]interface{}{
		"workspace.root":      "",
		"workspace.keep":      false,
		"modules.search_path": []string{},
		"logging.verbosity":   0,
	}
}

// Load resolves the configuration. configPath points at a testbed.toml; an
// empty path or a missing file falls back to defaults plus environment
// overrides.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	// 1. Built-in defaults
	if err := k.Load(confmap.Provider(defaultsMap(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "loading defaults")
	}

	// 2. Config file, when present
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "loading config from %s", configPath)
			}
		}
	}

	// 3. Environment overrides: TESTBED_WORKSPACE_ROOT -> workspace.root
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		// Only the first underscore separates section from key; keys such
		// as search_path keep theirs
		return strings.Replace(key, "_", ".", 1)
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "loading environment overrides")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "unmarshaling config")
	}
	return &cfg, nil
}
