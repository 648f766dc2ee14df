package render

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/boardpulse/pkg/application"
	"github.com/felixgeelhaar/boardpulse/pkg/domain/board"
	"github.com/felixgeelhaar/boardpulse/pkg/domain/metrics"
)

// MarkdownRenderer writes the report as a standalone Markdown document:
// summary with severity markers, distribution tables, the high-priority
// list, per-status item lists, the change-set, and the full item table.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) Extension() string { return "md" }

func (r *MarkdownRenderer) Render(report application.Report) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# Project Report: %s\n\n", report.Project.Title)
	fmt.Fprintf(&b, "**Owner:** %s | **Project:** #%d\n\n", report.Project.Owner, report.Project.Number)
	fmt.Fprintf(&b, "**Generated:** %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	b.WriteString("---\n\n")

	r.writeSummary(&b, report)
	r.writeStatusDistribution(&b, report)
	r.writePriorityDistribution(&b, report)
	r.writeHighPriority(&b, report.Items)
	r.writeChanges(&b, report)
	r.writeItemsByStatus(&b, report.Items)
	r.writeItemTable(&b, report.Items)

	return []byte(b.String()), nil
}

func (r *MarkdownRenderer) writeSummary(b *strings.Builder, report application.Report) {
	m := report.Metrics
	p := report.Policies

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(b, "- **Total items:** %d\n", m.TotalItems)
	fmt.Fprintf(b, "- **Total estimate:** %g hours\n", m.TotalEstimateHours)
	fmt.Fprintf(b, "- **Completion:** %s %s\n",
		formatPct(m.CompletionPct), bandMarker(metrics.Classify(m.CompletionPct, p.Completion)))
	fmt.Fprintf(b, "- **Unplanned:** %s %s\n",
		formatPct(m.UnplannedPct), bandMarker(metrics.Classify(m.UnplannedPct, p.Unplanned)))
	fmt.Fprintf(b, "- **High-priority not started:** %d %s\n",
		m.HighPriorityNotStarted,
		bandMarker(metrics.Classify(float64(m.HighPriorityNotStarted), p.HighPriorityNotStarted)))
	fmt.Fprintf(b, "- **Unassigned:** %d\n", m.UnassignedCount)
	b.WriteString("\n")
}

func (r *MarkdownRenderer) writeStatusDistribution(b *strings.Builder, report application.Report) {
	b.WriteString("## Status Distribution\n\n")
	b.WriteString("| Status | Count | Share |\n")
	b.WriteString("|--------|-------|-------|\n")
	for _, status := range board.AllStatuses() {
		count := report.Metrics.ByStatus[status]
		if count == 0 {
			continue
		}
		fmt.Fprintf(b, "| %s | %d | %s |\n",
			status.DisplayName(), count, sharePct(count, report.Metrics.TotalItems))
	}
	b.WriteString("\n")
}

func (r *MarkdownRenderer) writePriorityDistribution(b *strings.Builder, report application.Report) {
	b.WriteString("## Priority Distribution (active items)\n\n")
	b.WriteString("| Priority | Count | Share |\n")
	b.WriteString("|----------|-------|-------|\n")
	for _, priority := range board.AllPriorities() {
		count := report.Metrics.ByPriority[priority]
		if count == 0 {
			continue
		}
		fmt.Fprintf(b, "| %s | %d | %s |\n",
			priority.DisplayName(), count, sharePct(count, report.Metrics.ActiveItems))
	}
	b.WriteString("\n")
}

func (r *MarkdownRenderer) writeHighPriority(b *strings.Builder, items []board.WorkItem) {
	var high []board.WorkItem
	for _, item := range items {
		if item.Priority.IsHigh() {
			high = append(high, item)
		}
	}
	if len(high) == 0 {
		return
	}

	b.WriteString("## High-Priority Items (P🔥 and P0)\n\n")
	for _, item := range high {
		fmt.Fprintf(b, "- **[%s]** %s\n", item.Priority.DisplayName(), itemLink(item))
		fmt.Fprintf(b, "  - Status: %s\n", item.Status.DisplayName())
		fmt.Fprintf(b, "  - Assignees: %s\n", joinOr(item.Assignees, "unassigned"))
		fmt.Fprintf(b, "  - Estimate: %s\n", formatEstimate(item.Estimate, "-"))
	}
	b.WriteString("\n")
}

func (r *MarkdownRenderer) writeChanges(b *strings.Builder, report application.Report) {
	diff := report.Diff
	if !diff.HasChanges() {
		return
	}

	b.WriteString("## Changes Since Last Snapshot\n\n")
	fmt.Fprintf(b, "- **New items:** %d\n", diff.Added)
	fmt.Fprintf(b, "- **Completed:** %d\n", diff.Completed)
	if len(diff.Transitions) > 0 {
		b.WriteString("- **Moved:**\n")
		for _, t := range diff.Transitions {
			fmt.Fprintf(b, "  - %s: %s → %s\n", t.Title, t.From.DisplayName(), t.To.DisplayName())
		}
	}
	b.WriteString("\n")
}

func (r *MarkdownRenderer) writeItemsByStatus(b *strings.Builder, items []board.WorkItem) {
	b.WriteString("## Items by Status\n\n")
	for _, status := range board.AllStatuses() {
		var group []board.WorkItem
		for _, item := range items {
			if item.Status == status {
				group = append(group, item)
			}
		}
		if len(group) == 0 {
			continue
		}

		fmt.Fprintf(b, "### %s (%d)\n\n", status.DisplayName(), len(group))
		for _, item := range group {
			fmt.Fprintf(b, "- **[%s]** %s - %s\n",
				item.Priority.DisplayName(), itemLink(item), joinOr(item.Assignees, "unassigned"))
		}
		b.WriteString("\n")
	}
}

func (r *MarkdownRenderer) writeItemTable(b *strings.Builder, items []board.WorkItem) {
	b.WriteString("## All Items\n\n")
	b.WriteString("| Title | Status | Priority | Assignees | Estimate | Labels |\n")
	b.WriteString("|-------|--------|----------|-----------|----------|--------|\n")
	for _, item := range items {
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s | %s |\n",
			itemLink(item),
			item.Status.DisplayName(),
			item.Priority.DisplayName(),
			joinOr(item.Assignees, "-"),
			formatEstimate(item.Estimate, "-"),
			joinOr(item.Labels, "-"))
	}
}

func itemLink(item board.WorkItem) string {
	if item.URL == "" {
		return item.Title
	}
	return fmt.Sprintf("[%s](%s)", item.Title, item.URL)
}
