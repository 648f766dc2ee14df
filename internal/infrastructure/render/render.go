// Package render turns a finished report into its output representations.
// Renderers format values already present on the report; none of them
// recompute metrics.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/felixgeelhaar/boardpulse/pkg/application"
	"github.com/felixgeelhaar/boardpulse/pkg/domain/board"
	"github.com/felixgeelhaar/boardpulse/pkg/domain/metrics"
)

// Registry returns every available renderer keyed by format name.
func Registry() map[string]application.Renderer {
	return map[string]application.Renderer{
		"html": &HTMLRenderer{},
		"md":   &MarkdownRenderer{},
		"csv":  &CSVRenderer{},
		"json": &JSONRenderer{},
	}
}

// Formats lists the registered format names.
func Formats() []string {
	return []string{"html", "md", "csv", "json"}
}

// bandMarker is the textual severity marker used by the non-graphical
// formats.
func bandMarker(band metrics.Band) string {
	switch band {
	case metrics.BandGood:
		return "✅"
	case metrics.BandWarn:
		return "⚠️"
	default:
		return "❌"
	}
}

func joinOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ", ")
}

func formatEstimate(e board.Estimate, fallback string) string {
	if !e.Present() {
		return fallback
	}
	return strconv.FormatFloat(e.Hours(), 'f', -1, 64)
}

func formatPct(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// sharePct is the display-only share of count in total, shown next to raw
// counts in distribution tables.
func sharePct(count, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(count)/float64(total)*100)
}
