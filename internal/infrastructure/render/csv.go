package render

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/felixgeelhaar/boardpulse/pkg/application"
)

// CSVRenderer writes one row per item. The output starts with a UTF-8 BOM
// so Excel detects the encoding.
type CSVRenderer struct{}

func (r *CSVRenderer) Extension() string { return "csv" }

var csvHeader = []string{
	"Title", "Status", "Priority", "Assignees", "Estimate", "Labels",
	"URL", "Repository", "Issue Number",
}

func (r *CSVRenderer) Render(report application.Report) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write([]byte{0xEF, 0xBB, 0xBF})

	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, item := range report.Items {
		issueNumber := ""
		if item.IssueNumber != 0 {
			issueNumber = strconv.Itoa(item.IssueNumber)
		}

		row := []string{
			item.Title,
			item.Status.String(),
			item.Priority.String(),
			joinOr(item.Assignees, ""),
			formatEstimate(item.Estimate, ""),
			joinOr(item.Labels, ""),
			item.URL,
			item.Repository,
			issueNumber,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row for %q: %w", item.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
