package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mcncl/jsonlens/internal/errors"
	"gopkg.in/yaml.v3"
)

// Default limits applied by the structural scan and by every traversal.
const (
	DefaultMaxArrayLength  = 10000
	DefaultMaxObjectKeys   = 1000
	DefaultMaxKeyLength    = 100
	DefaultMaxStringLength = 100000
	DefaultMaxDepth        = 1000
	DefaultIndent          = 2
	DefaultRootLabel       = "root"
)

// Config represents the complete configuration for jsonlens
type Config struct {
	Limits LimitsConfig `yaml:"limits"`
	Format FormatConfig `yaml:"format"`
	Schema SchemaConfig `yaml:"schema"`
	Scan   ScanConfig   `yaml:"scan"`
	Dev    DevConfig    `yaml:"dev"`
}

// LimitsConfig holds the structural thresholds. A document exceeding one of
// the size limits is reported as invalid; exceeding MaxDepth aborts the
// operation. A zero limit disables that check.
type LimitsConfig struct {
	MaxArrayLength  int `yaml:"max_array_length"`
	MaxObjectKeys   int `yaml:"max_object_keys"`
	MaxKeyLength    int `yaml:"max_key_length"`
	MaxStringLength int `yaml:"max_string_length"`
	MaxDepth        int `yaml:"max_depth"`
}

// FormatConfig controls text output
type FormatConfig struct {
	Indent int `yaml:"indent"`
}

// SchemaConfig decorates the root of generated schemas
type SchemaConfig struct {
	Title string `yaml:"title"`
	Draft string `yaml:"draft"`
}

// ScanConfig controls structural scan labelling
type ScanConfig struct {
	RootLabel string `yaml:"root_label"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			MaxArrayLength:  DefaultMaxArrayLength,
			MaxObjectKeys:   DefaultMaxObjectKeys,
			MaxKeyLength:    DefaultMaxKeyLength,
			MaxStringLength: DefaultMaxStringLength,
			MaxDepth:        DefaultMaxDepth,
		},
		Format: FormatConfig{
			Indent: DefaultIndent,
		},
		Scan: ScanConfig{
			RootLabel: DefaultRootLabel,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to read config file '%s'", path), err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to parse config file '%s'", path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings no traversal can honor
func (c *Config) Validate() error {
	checks := []struct {
		name  string
		value int
	}{
		{"limits.max_array_length", c.Limits.MaxArrayLength},
		{"limits.max_object_keys", c.Limits.MaxObjectKeys},
		{"limits.max_key_length", c.Limits.MaxKeyLength},
		{"limits.max_string_length", c.Limits.MaxStringLength},
		{"limits.max_depth", c.Limits.MaxDepth},
		{"format.indent", c.Format.Indent},
	}
	for _, check := range checks {
		if check.value < 0 {
			return errors.NewConfigError(fmt.Sprintf("%s must not be negative, got %d", check.name, check.value), nil)
		}
	}
	if c.Scan.RootLabel == "" {
		c.Scan.RootLabel = DefaultRootLabel
	}
	return nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsonlens.yml", ".jsonlens.yaml", "jsonlens.yml", "jsonlens.yaml"}

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
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// LoadConfigWithCLI loads config with CLI argument precedence.
// An empty configPath falls back to FindConfigFile, then to defaults.
func LoadConfigWithCLI(configPath string, cliDebug bool) (*Config, error) {
	cfg := NewConfig()

	if configPath == "" {
		configPath = FindConfigFile()
	}
	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	// --debug can only switch debugging on
	if cliDebug {
		cfg.Dev.Debug = true
	}

	return cfg, nil
}
