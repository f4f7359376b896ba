package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
}

// GlobalConfig is the full tool configuration. Values are layered:
// defaults, then an optional YAML config file, then environment, then
// command-line flags.
type GlobalConfig struct {
	// CacheDir is the build-tool-owned directory the libraries are
	// fetched into and verified against. The directory must exist or be
	// creatable; it is never deleted by this tool.
	CacheDir string `yaml:"cacheDir" json:"cacheDir"`

	// Platform overrides target platform detection, e.g. "x86_64-linux".
	Platform string `yaml:"platform" json:"platform"`

	// LinkMode is "static" or "dynamic".
	LinkMode string `yaml:"linkMode" json:"linkMode"`

	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// GlConfig is the process-wide configuration, set once by Load (or
// Default) from main.
var GlConfig *GlobalConfig

// Default returns the built-in configuration.
func Default() *GlobalConfig {
	return &GlobalConfig{
		CacheDir: "build/mkl",
		LinkMode: "static",
		Logging:  LoggingConfig{Level: "info"},
	}
}

// Load reads and validates a YAML config file on top of the defaults.
func Load(path string) (*GlobalConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := validateSchema(data); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv layers build-tool environment variables over the config. The
// calling build system passes the cache location through OUT_DIR.
func (c *GlobalConfig) ApplyEnv() {
	if dir := os.Getenv("OUT_DIR"); dir != "" {
		c.CacheDir = dir
	}
}
