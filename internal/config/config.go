package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Unbounded disables the recursion depth limit. Any negative depth
// behaves the same way: counting down never reaches zero.
const Unbounded = -1

// Options is the fully merged configuration consumed by the traversal:
// config file values overridden by command-line flags.
type Options struct {
	SourcePath      string
	DestinationPath string
	IgnoreHidden    bool
	IgnoreSymlinks  bool
	MaxDepth        int
	HideProgressBar bool
	DryRun          bool
	Exclude         []string
}

// Config holds the values that can come from the YAML config file.
// Flags take precedence over these.
type Config struct {
	IgnoreHidden   bool     `yaml:"ignore_hidden"`
	IgnoreSymlinks bool     `yaml:"ignore_symlinks"`
	MaxDepth       int      `yaml:"max_depth"`
	Exclude        []string `yaml:"exclude"`
}

func DefaultConfig() *Config {
	return &Config{
		IgnoreHidden:   false,
		IgnoreSymlinks: false,
		MaxDepth:       Unbounded,
		Exclude:        []string{},
	}
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	// Initialize Exclude slice if nil (for empty configs)
	if cfg.Exclude == nil {
		cfg.Exclude = []string{}
	}

	return cfg, nil
}
