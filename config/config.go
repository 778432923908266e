// Package config handles podsign server configuration loading.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lvillar/podsign/httpapi"
)

// Config is the root configuration structure.
type Config struct {
	// Server holds the HTTP listener settings.
	Server httpapi.Config `yaml:"server"`

	// TemplatePath optionally points at a JSON overlay template. Empty
	// means the built-in A4 delivery-note template.
	TemplatePath string `yaml:"template"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: httpapi.DefaultConfig(),
	}
}

// Load reads configuration from a YAML file. A missing file is not an
// error: defaults are returned so the server runs with no config at all.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}
