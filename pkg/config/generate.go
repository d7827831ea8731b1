package config

import (
	"strings"

	"github.com/arthur-debert/testbed/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

// GenerateConfigContent renders the default configuration as TOML with
// every value commented out, ready to drop into a testbed.toml and edit.
func GenerateConfigContent() (string, error) {
	defaults := Default()
	raw, err := toml.Marshal(defaults)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "marshaling default config")
	}
	return commentOutConfigValues(string(raw)), nil
}

// commentOutConfigValues comments out every assignment line, keeping blank
// lines, existing comments, and section headers as-is
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			result = append(result, line)
			continue
		}
		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}
