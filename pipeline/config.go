// Package pipeline orchestrates asset loads: it parses exports, builds
// collision geometry per level, reports per-asset failures instead of
// aborting the process, and watches asset files for re-triggering.
package pipeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config drives a load pass.
type Config struct {
	// Project is the path to the level export.
	Project string `yaml:"project"`
	// Levels lists the level identifiers to build.
	Levels []string `yaml:"levels"`
	// Sheets lists sprite sheet exports to parse, keyed by name.
	Sheets []SheetConfig `yaml:"sheets"`
	// Scale is pixels per world unit; 0 means the default.
	Scale float64 `yaml:"scale"`
}

type SheetConfig struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// LoadConfig reads a yaml file into T.
func LoadConfig[T any](path string) (T, error) {
	var zero T
	data, err := os.ReadFile(path)
	if err != nil {
		return zero, fmt.Errorf("pipeline: load %s: %w", path, err)
	}

	var cfg T
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return zero, fmt.Errorf("pipeline: unmarshal %s: %w", path, err)
	}

	return cfg, nil
}
