package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/boardpulse/internal/infrastructure/render"
	"github.com/felixgeelhaar/boardpulse/pkg/application"
	"github.com/felixgeelhaar/boardpulse/pkg/domain/board"
	"github.com/spf13/cobra"
)

// Flag variables for report command
var (
	reportFormat     string
	reportOutput     string
	reportOwner      string
	reportProject    int
	reportSince      string
	reportUntil      string
	reportDateField  string
	reportNoSnapshot bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Fetch the board and generate a report",
	Long: `Fetch the project board through the gh CLI, compute health metrics,
diff against the previous snapshot and write the rendered report.

Examples:
  boardpulse report
  boardpulse report --format md --output ./out
  boardpulse report --owner acme --project 7 --since 2026-06-01
  boardpulse report --no-snapshot`,
	RunE: runReportCmd,
}

func runReportCmd(cmd *cobra.Command, args []string) error {
	log := logger()

	cfg, err := loadConfig(reportOwner, reportProject)
	if err != nil {
		return err
	}

	format := cfg.DefaultFormat
	if reportFormat != "" {
		format = reportFormat
	}
	outputDir := cfg.OutputDir
	if reportOutput != "" {
		outputDir = reportOutput
	}

	opts := application.GenerateOptions{
		Format:       format,
		OutputDir:    outputDir,
		SkipSnapshot: reportNoSnapshot,
	}

	if opts.Since, err = parseDateFlag("since", reportSince); err != nil {
		return err
	}
	if opts.Until, err = parseDateFlag("until", reportUntil); err != nil {
		return err
	}
	if reportDateField != "" {
		if opts.DateField, err = board.ParseDateField(reportDateField); err != nil {
			return err
		}
	}

	log.Info().
		Str("project", fmt.Sprintf("%s/%d", cfg.Owner, cfg.ProjectNumber)).
		Str("format", format).
		Msg("generating report")

	service := newReportService(cfg)
	result, err := service.Generate(cmd.Context(), opts)
	if err != nil {
		return err
	}

	m := result.Report.Metrics
	log.Info().
		Int("items", m.TotalItems).
		Float64("completion_pct", m.CompletionPct).
		Int("added", result.Report.Diff.Added).
		Int("completed", result.Report.Diff.Completed).
		Msg("report computed")

	log.Info().Str("path", result.OutputPath).Msg("report written")
	if result.SnapshotPath != "" {
		log.Debug().Str("path", result.SnapshotPath).Msg("snapshot saved")
	}

	return nil
}

func parseDateFlag(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	ts, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s date %q, want YYYY-MM-DD", name, value)
	}
	return ts, nil
}

func init() {
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "",
		fmt.Sprintf("Report format (%s)", strings.Join(render.Formats(), ", ")))
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "",
		"Output directory for the rendered report")
	reportCmd.Flags().StringVar(&reportOwner, "owner", "",
		"GitHub organization or user owning the project")
	reportCmd.Flags().IntVarP(&reportProject, "project", "p", 0,
		"Project number")
	reportCmd.Flags().StringVar(&reportSince, "since", "",
		"Only include items on or after this date (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportUntil, "until", "",
		"Only include items on or before this date (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportDateField, "date-field", "",
		"Timestamp the date range applies to (created_at, updated_at, closed_at)")
	reportCmd.Flags().BoolVar(&reportNoSnapshot, "no-snapshot", false,
		"Skip persisting a snapshot for this run")

	RootCmd.AddCommand(reportCmd)
}
