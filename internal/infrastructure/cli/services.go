package cli

import (
	"fmt"

	"github.com/felixgeelhaar/boardpulse/internal/infrastructure/config"
	"github.com/felixgeelhaar/boardpulse/internal/infrastructure/githubcli"
	"github.com/felixgeelhaar/boardpulse/internal/infrastructure/render"
	"github.com/felixgeelhaar/boardpulse/internal/infrastructure/storage"
	"github.com/felixgeelhaar/boardpulse/pkg/application"
	"github.com/felixgeelhaar/boardpulse/pkg/domain/board"
)

// loadConfig reads the config file and applies the owner/project flag
// overrides shared by several commands. Flags win over file values.
func loadConfig(ownerFlag string, projectFlag int) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}

	if ownerFlag != "" {
		cfg.Owner = ownerFlag
	}
	if projectFlag != 0 {
		cfg.ProjectNumber = projectFlag
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newReportService wires the production collaborators for one config.
func newReportService(cfg config.Config) *application.ReportService {
	return application.NewReportService(
		githubcli.NewFetcher(cfg.Owner, cfg.ProjectNumber),
		storage.NewFilesystemRepository(cfg.SnapshotDir),
		render.Registry(),
		cfg.Thresholds,
	)
}

func projectFromConfig(cfg config.Config) board.Project {
	return board.Project{Owner: cfg.Owner, Number: cfg.ProjectNumber}
}
