package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/felixgeelhaar/boardpulse/pkg/application"
	"github.com/felixgeelhaar/boardpulse/pkg/domain/board"
	"github.com/felixgeelhaar/boardpulse/pkg/domain/metrics"
	"github.com/spf13/cobra"
)

// Flag variables for status command
var (
	statusOwner   string
	statusProject int
	statusJSON    bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Summarize the latest snapshot without fetching",
	Long: `Show board health from the most recent snapshot: completion, planning
discipline, priority pressure and what moved since the run before.
Reads only local snapshot history; the network is never touched.

Examples:
  boardpulse status
  boardpulse status --json`,
	RunE: runStatusCmd,
}

// Band styles
var (
	goodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	badStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func bandStyle(band metrics.Band) lipgloss.Style {
	switch band {
	case metrics.BandGood:
		return goodStyle
	case metrics.BandWarn:
		return warnStyle
	default:
		return badStyle
	}
}

func runStatusCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(statusOwner, statusProject)
	if err != nil {
		return err
	}

	service := newReportService(cfg)
	report, err := service.Status(projectFromConfig(cfg))
	if err != nil {
		return err
	}

	if statusJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	return outputStatusText(report)
}

func outputStatusText(report *application.Report) error {
	m := report.Metrics
	p := report.Policies

	fmt.Printf("Project: %s/%d\n", report.Project.Owner, report.Project.Number)
	fmt.Printf("Captured: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))

	completion := bandStyle(metrics.Classify(m.CompletionPct, p.Completion)).
		Render(fmt.Sprintf("%.1f%%", m.CompletionPct))
	unplanned := bandStyle(metrics.Classify(m.UnplannedPct, p.Unplanned)).
		Render(fmt.Sprintf("%.1f%%", m.UnplannedPct))
	highPriority := bandStyle(metrics.Classify(float64(m.HighPriorityNotStarted), p.HighPriorityNotStarted)).
		Render(fmt.Sprintf("%d", m.HighPriorityNotStarted))

	fmt.Printf("Items: %d (%g estimated hours)\n", m.TotalItems, m.TotalEstimateHours)
	fmt.Printf("Completion: %s\n", completion)
	fmt.Printf("Unplanned: %s\n", unplanned)
	fmt.Printf("High-priority not started: %s\n", highPriority)
	fmt.Printf("Unassigned: %d\n\n", m.UnassignedCount)

	fmt.Println("By status:")
	for _, status := range board.AllStatuses() {
		if count := m.ByStatus[status]; count > 0 {
			fmt.Printf("- %-12s %d\n", status.DisplayName()+":", count)
		}
	}

	if report.Diff.HasChanges() {
		fmt.Printf("\nSince previous snapshot: %d new, %d completed, %d moved\n",
			report.Diff.Added, report.Diff.Completed, len(report.Diff.Transitions))
	}

	return nil
}

func init() {
	statusCmd.Flags().StringVar(&statusOwner, "owner", "",
		"GitHub organization or user owning the project")
	statusCmd.Flags().IntVarP(&statusProject, "project", "p", 0,
		"Project number")
	statusCmd.Flags().BoolVar(&statusJSON, "json", false,
		"Output in JSON format")

	RootCmd.AddCommand(statusCmd)
}
