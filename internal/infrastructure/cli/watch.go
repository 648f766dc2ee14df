package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/felixgeelhaar/boardpulse/internal/infrastructure/config"
	"github.com/felixgeelhaar/boardpulse/internal/infrastructure/render"
	"github.com/felixgeelhaar/boardpulse/internal/infrastructure/storage"
	"github.com/felixgeelhaar/boardpulse/internal/infrastructure/watch"
	"github.com/spf13/cobra"
)

// Flag variables for watch command
var (
	watchFormat   string
	watchOutput   string
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-render the report whenever the snapshot history changes",
	Long: `Watch the snapshot directory and the config file, re-rendering the
report from the latest snapshot on every change. Useful next to a cron
job or CI step that runs 'boardpulse report' periodically.

Examples:
  boardpulse watch
  boardpulse watch --format html --output ./out`,
	RunE: runWatchCmd,
}

func runWatchCmd(cmd *cobra.Command, args []string) error {
	log := logger()

	cfg, err := loadConfig("", 0)
	if err != nil {
		return err
	}

	format := cfg.DefaultFormat
	if watchFormat != "" {
		format = watchFormat
	}
	outputDir := cfg.OutputDir
	if watchOutput != "" {
		outputDir = watchOutput
	}

	renderer, ok := render.Registry()[format]
	if !ok {
		return fmt.Errorf("unknown report format %q", format)
	}

	service := newReportService(cfg)
	project := projectFromConfig(cfg)

	rerender := func(e watch.Event) {
		log.Debug().Str("path", e.Path).Str("op", e.Op).Msg("change detected")

		report, err := service.Status(project)
		if err != nil {
			log.Error().Err(err).Msg("reload failed")
			return
		}

		data, err := renderer.Render(*report)
		if err != nil {
			log.Error().Err(err).Msg("render failed")
			return
		}

		path := filepath.Join(outputDir, fmt.Sprintf("latest.%s", renderer.Extension()))
		if err := os.WriteFile(path, data, 0o600); err != nil {
			log.Error().Err(err).Msg("write failed")
			return
		}
		log.Info().Str("path", path).Msg("report re-rendered")
	}

	watcher, err := watch.New(watchDebounce, rerender)
	if err != nil {
		return err
	}

	snapshotsDir := filepath.Join(cfg.SnapshotDir, storage.SnapshotsDir)
	if err := os.MkdirAll(snapshotsDir, 0o700); err != nil {
		return fmt.Errorf("create snapshots directory: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := watcher.Add(snapshotsDir); err != nil {
		return err
	}
	// The config file may not exist yet; watching it is best-effort.
	if _, statErr := os.Stat(configFileOrDefault()); statErr == nil {
		if err := watcher.Add(configFileOrDefault()); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("dir", snapshotsDir).Msg("watching for changes, ctrl+c to stop")
	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func configFileOrDefault() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultFile
}

func init() {
	watchCmd.Flags().StringVarP(&watchFormat, "format", "f", "",
		"Report format to re-render")
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "",
		"Output directory for the rendered report")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond,
		"Quiet window before a change triggers a re-render")

	RootCmd.AddCommand(watchCmd)
}
