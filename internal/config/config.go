// Package config loads tool-level settings from a YAML file. Settings
// here are defaults for the whole run; per-invocation behavior comes
// from the directive flags in the source itself.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// NullPolicy selects how a null literal is typed when nothing else
// reveals the field's kind.
type NullPolicy string

const (
	// NullPolicyDefer keeps the field's element kind open until
	// another occurrence of the same key reveals it; an unrevealed
	// kind resolves to optional text.
	NullPolicyDefer NullPolicy = "defer"
	// NullPolicyText types every null field as optional text
	// immediately, with no deferral.
	NullPolicyText NullPolicy = "text"
)

// Config represents the complete configuration for json-to-struct
type Config struct {
	Package        string     `yaml:"package"`
	Format         bool       `yaml:"format"`
	RecursionLimit int        `yaml:"recursion_limit"`
	NullPolicy     NullPolicy `yaml:"null_policy"`
	Singularize    bool       `yaml:"singularize"`
	ExtraDerives   []string   `yaml:"extra_derives"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Package:        "main",
		Format:         true,
		RecursionLimit: 1000,
		NullPolicy:     NullPolicyDefer,
		Singularize:    true,
	}
}

// Validate checks option values that the YAML schema cannot express.
func (c *Config) Validate() error {
	switch c.NullPolicy {
	case NullPolicyDefer, NullPolicyText:
	default:
		return fmt.Errorf("invalid null_policy %q, must be %q or %q", c.NullPolicy, NullPolicyDefer, NullPolicyText)
	}
	if c.RecursionLimit < 1 {
		return fmt.Errorf("recursion_limit must be positive, got %d", c.RecursionLimit)
	}
	return nil
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file '%s': %w", path, err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".json-to-struct.yml", ".json-to-struct.yaml", "json-to-struct.yml", "json-to-struct.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}
