package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/felixgeelhaar/boardpulse/pkg/application"
	"github.com/felixgeelhaar/boardpulse/pkg/domain/metrics"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive TUI over the latest snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv("BOARDPULSE_SKIP_DASHBOARD_RUN") == "true" {
			return nil
		}
		p := tea.NewProgram(initialModel())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("dashboard run failed: %w", err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(dashboardCmd)
}

// Styles
var baseStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("240"))

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	PaddingLeft(1).
	PaddingRight(1)

type dashboardModel struct {
	table  table.Model
	report *application.Report
	err    error
}

func initialModel() dashboardModel {
	cfg, err := loadConfig("", 0)
	if err != nil {
		return dashboardModel{err: err}
	}

	service := newReportService(cfg)
	report, err := service.Status(projectFromConfig(cfg))
	if err != nil {
		return dashboardModel{err: err}
	}

	columns := []table.Column{
		{Title: "Status", Width: 12},
		{Title: "Priority", Width: 8},
		{Title: "Title", Width: 40},
		{Title: "Assignees", Width: 20},
		{Title: "Est (h)", Width: 8},
	}

	items := make([]int, len(report.Items))
	for i := range items {
		items[i] = i
	}
	// Board column order, most urgent first within a column.
	sort.Slice(items, func(a, b int) bool {
		x, y := report.Items[items[a]], report.Items[items[b]]
		if x.Status.Order() != y.Status.Order() {
			return x.Status.Order() < y.Status.Order()
		}
		return x.Priority.Compare(y.Priority) < 0
	})

	rows := make([]table.Row, 0, len(report.Items))
	for _, i := range items {
		item := report.Items[i]
		assignees := "-"
		if len(item.Assignees) > 0 {
			assignees = item.Assignees[0]
			if len(item.Assignees) > 1 {
				assignees = fmt.Sprintf("%s +%d", item.Assignees[0], len(item.Assignees)-1)
			}
		}
		estimate := "-"
		if item.Estimate.Present() {
			estimate = fmt.Sprintf("%g", item.Estimate.Hours())
		}
		rows = append(rows, table.Row{
			item.Status.DisplayName(),
			item.Priority.DisplayName(),
			item.Title,
			assignees,
			estimate,
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229"))
	t.SetStyles(s)

	return dashboardModel{table: t, report: report}
}

func (m dashboardModel) Init() tea.Cmd { return nil }

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m dashboardModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error loading dashboard: %v\nPress q to quit.", m.err)
	}

	rec := m.report.Metrics
	pol := m.report.Policies

	header := headerStyle.Render(fmt.Sprintf("%s/%d · %d items",
		m.report.Project.Owner, m.report.Project.Number, rec.TotalItems))

	completion := bandStyle(metrics.Classify(rec.CompletionPct, pol.Completion)).
		Render(fmt.Sprintf("%.1f%%", rec.CompletionPct))
	unplanned := bandStyle(metrics.Classify(rec.UnplannedPct, pol.Unplanned)).
		Render(fmt.Sprintf("%.1f%%", rec.UnplannedPct))
	summary := fmt.Sprintf("Completion: %s  Unplanned: %s  High-priority open: %d",
		completion, unplanned, rec.HighPriorityNotStarted)

	changes := ""
	if m.report.Diff.HasChanges() {
		changes = fmt.Sprintf("\nSince last run: %d new, %d completed, %d moved",
			m.report.Diff.Added, m.report.Diff.Completed, len(m.report.Diff.Transitions))
	}

	return baseStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			summary,
			"",
			m.table.View(),
			changes,
			"\n[q] Quit  [Up/Down] Navigate",
		),
	) + "\n"
}
