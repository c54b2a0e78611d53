package commons

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"fieldops/internal/config"
)

// LoadConfigFile overlays a YAML config file on top of an already loaded
// config. Used when CONFIG_FILE is set; env defaults apply otherwise.
func LoadConfigFile(path string, cfg *config.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}
