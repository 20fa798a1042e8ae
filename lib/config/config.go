// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"
)

// Config is the top-level graphgen configuration.
type Config struct {
	// Generation controls the mapper pipeline.
	Generation GenerationConfig `yaml:"generation"`

	// Cache controls the fingerprint cache.
	Cache CacheConfig `yaml:"cache"`

	// Log controls diagnostic output.
	Log LogConfig `yaml:"log"`
}

// GenerationConfig holds mapper pipeline settings.
type GenerationConfig struct {
	// DerivedDirectory is the per-project directory, relative to the
	// project, that receives generated files. It is deleted and
	// recreated on every generation.
	DerivedDirectory string `yaml:"derived_directory"`

	// InfoPlistsDirectory is the subdirectory of DerivedDirectory
	// holding derived Info.plist files.
	InfoPlistsDirectory string `yaml:"info_plists_directory"`

	// DefaultConfiguration is the build configuration given to
	// projects that declare none.
	DefaultConfiguration string `yaml:"default_configuration"`

	// Workers bounds per-target and per-project parallelism for both
	// mapping and hashing. Zero means unbounded.
	Workers int `yaml:"workers"`
}

// CacheConfig holds fingerprint cache settings.
type CacheConfig struct {
	// Path is the SQLite database file. Empty disables the cache.
	Path string `yaml:"path"`

	// Compression is one of "none", "lz4", "zstd".
	Compression string `yaml:"compression"`

	// MemoryEntries sizes the in-process LRU in front of the
	// database. Zero disables it.
	MemoryEntries int `yaml:"memory_entries"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `yaml:"level"`

	// Format is "auto" (text on a terminal, JSON otherwise), "text",
	// or "json".
	Format string `yaml:"format"`
}

// Default returns a configuration with the built-in defaults.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		Generation: GenerationConfig{
			DerivedDirectory:     "Derived",
			InfoPlistsDirectory:  "InfoPlists",
			DefaultConfiguration: "Debug",
			Workers:              0,
		},
		Cache: CacheConfig{
			Path:          filepath.Join(homeDir, ".cache", "graphgen", "fingerprints.db"),
			Compression:   "zstd",
			MemoryEntries: 256,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// Load loads configuration from the file named by GRAPHGEN_CONFIG.
// Returns an error if the variable is not set.
func Load() (*Config, error) {
	configPath := os.Getenv("GRAPHGEN_CONFIG")
	if configPath == "" {
		return nil, fmt.Errorf("GRAPHGEN_CONFIG environment variable not set; " +
			"set it to the path of your graphgen.yaml config file, or use --config flag")
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from path. Fields the file does not
// set keep their [Default] values.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in
// paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME":           os.Getenv("HOME"),
		"GRAPHGEN_CACHE": os.Getenv("GRAPHGEN_CACHE"),
	}
	c.Cache.Path = expandVars(c.Cache.Path, vars)
	c.Generation.DerivedDirectory = expandVars(c.Generation.DerivedDirectory, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Generation.DerivedDirectory == "" {
		errs = append(errs, errors.New("generation.derived_directory is required"))
	} else if filepath.IsAbs(c.Generation.DerivedDirectory) {
		errs = append(errs, fmt.Errorf("generation.derived_directory must be relative, got %s", c.Generation.DerivedDirectory))
	}
	if c.Generation.InfoPlistsDirectory == "" {
		errs = append(errs, errors.New("generation.info_plists_directory is required"))
	}
	if c.Generation.DefaultConfiguration == "" {
		errs = append(errs, errors.New("generation.default_configuration is required"))
	}
	if c.Generation.Workers < 0 {
		errs = append(errs, fmt.Errorf("generation.workers must not be negative, got %d", c.Generation.Workers))
	}

	compressions := []string{"none", "lz4", "zstd"}
	if !slices.Contains(compressions, c.Cache.Compression) {
		errs = append(errs, fmt.Errorf("cache.compression must be one of: %v", compressions))
	}
	if c.Cache.MemoryEntries < 0 {
		errs = append(errs, fmt.Errorf("cache.memory_entries must not be negative, got %d", c.Cache.MemoryEntries))
	}

	levels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(levels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of: %v", levels))
	}
	formats := []string{"auto", "text", "json"}
	if !slices.Contains(formats, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format must be one of: %v", formats))
	}

	return errors.Join(errs...)
}

// EnsureCacheDirectory creates the directory holding the cache
// database. No-op when the cache is disabled.
func (c *Config) EnsureCacheDirectory() error {
	if c.Cache.Path == "" {
		return nil
	}
	directory := filepath.Dir(c.Cache.Path)
	if err := os.MkdirAll(directory, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", directory, err)
	}
	return nil
}
