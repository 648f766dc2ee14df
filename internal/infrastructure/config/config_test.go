package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/boardpulse/internal/infrastructure/config"
	"github.com/felixgeelhaar/boardpulse/pkg/domain/metrics"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DefaultFormat != "html" {
		t.Errorf("expected html default, got %q", cfg.DefaultFormat)
	}
	if cfg.SnapshotDir != ".boardpulse" {
		t.Errorf("expected .boardpulse default, got %q", cfg.SnapshotDir)
	}
	if cfg.Thresholds.Completion.Good != 70 {
		t.Errorf("expected default thresholds, got %+v", cfg.Thresholds.Completion)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boardpulse.yaml")
	content := `
owner: acme
project_number: 7
default_format: md
thresholds:
  completion:
    good: 80
    bad: 40
    direction: higher_better
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Owner != "acme" || cfg.ProjectNumber != 7 {
		t.Errorf("unexpected project settings: %+v", cfg)
	}
	if cfg.DefaultFormat != "md" {
		t.Errorf("expected md, got %q", cfg.DefaultFormat)
	}
	if cfg.Thresholds.Completion.Good != 80 {
		t.Errorf("expected overridden threshold, got %v", cfg.Thresholds.Completion.Good)
	}
	// Untouched sections keep their defaults
	if cfg.Thresholds.Unplanned.Bad != 20 {
		t.Errorf("expected default unplanned threshold, got %v", cfg.Thresholds.Unplanned.Bad)
	}
	if cfg.OutputDir != "reports" {
		t.Errorf("expected default output dir, got %q", cfg.OutputDir)
	}
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boardpulse.yaml")
	if err := os.WriteFile(path, []byte("owner: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := config.Load(path); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestValidate(t *testing.T) {
	valid := config.Default()
	valid.Owner = "acme"
	valid.ProjectNumber = 2

	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid config, got: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"empty owner", func(c *config.Config) { c.Owner = "  " }},
		{"zero project number", func(c *config.Config) { c.ProjectNumber = 0 }},
		{"unknown format", func(c *config.Config) { c.DefaultFormat = "pdf" }},
		{"empty output dir", func(c *config.Config) { c.OutputDir = "" }},
		{"empty snapshot dir", func(c *config.Config) { c.SnapshotDir = "" }},
		{"inverted thresholds", func(c *config.Config) {
			c.Thresholds.Completion = metrics.Policy{Good: 10, Bad: 90, Direction: metrics.HigherIsBetter}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error for %s", tt.name)
			}
		})
	}
}
