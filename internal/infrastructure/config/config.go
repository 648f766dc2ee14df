// Package config loads and validates the boardpulse configuration file.
// Configuration is always an explicit value handed down to collaborators;
// nothing in the system reads it ambiently, so concurrent report runs for
// different projects cannot interfere.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/felixgeelhaar/boardpulse/pkg/domain/metrics"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up when no --config flag is given.
const DefaultFile = "boardpulse.yaml"

// Config holds one project's report settings.
type Config struct {
	Owner         string           `yaml:"owner"`
	ProjectNumber int              `yaml:"project_number"`
	DefaultFormat string           `yaml:"default_format"`
	OutputDir     string           `yaml:"output_dir"`
	SnapshotDir   string           `yaml:"snapshot_dir"`
	Thresholds    metrics.Policies `yaml:"thresholds"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		DefaultFormat: "html",
		OutputDir:     "reports",
		SnapshotDir:   ".boardpulse",
		Thresholds:    metrics.DefaultPolicies(),
	}
}

// Load reads the config file at path, falling back to defaults when the file
// does not exist. A file that exists but cannot be parsed is an error, not a
// silent fallback.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultFile
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the --config flag
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// ValidFormats lists the renderer formats a config may select.
var ValidFormats = []string{"html", "md", "csv", "json"}

// Validate checks the configuration and names the offending field on error.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Owner) == "" {
		return fmt.Errorf("owner cannot be empty")
	}
	if c.ProjectNumber <= 0 {
		return fmt.Errorf("project_number must be positive, got %d", c.ProjectNumber)
	}

	valid := false
	for _, f := range ValidFormats {
		if c.DefaultFormat == f {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("default_format must be one of: %s", strings.Join(ValidFormats, ", "))
	}

	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}
	if strings.TrimSpace(c.SnapshotDir) == "" {
		return fmt.Errorf("snapshot_dir cannot be empty")
	}

	if err := c.Thresholds.Validate(); err != nil {
		return fmt.Errorf("thresholds: %w", err)
	}

	return nil
}
