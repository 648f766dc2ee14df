package render

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/felixgeelhaar/boardpulse/pkg/application"
	"github.com/felixgeelhaar/boardpulse/pkg/domain/board"
	"github.com/felixgeelhaar/boardpulse/pkg/domain/metrics"
	"github.com/felixgeelhaar/boardpulse/pkg/domain/snapshot"
)

// JSONRenderer emits the machine-readable report: metadata, the full
// metrics record, the change-set, and every item with its predicate flags.
type JSONRenderer struct{}

func (r *JSONRenderer) Extension() string { return "json" }

type jsonMetadata struct {
	ProjectName   string    `json:"project_name"`
	Owner         string    `json:"owner"`
	ProjectNumber int       `json:"project_number"`
	GeneratedAt   time.Time `json:"generated_at"`
	TotalItems    int       `json:"total_items"`
}

type jsonItem struct {
	board.WorkItem
	IsPlanned bool `json:"is_planned"`
	IsActive  bool `json:"is_active"`
}

type jsonGrouped struct {
	ByStatus   map[string]int `json:"by_status"`
	ByPriority map[string]int `json:"by_priority"`
	ByAssignee map[string]int `json:"by_assignee"`
}

type jsonReport struct {
	Metadata jsonMetadata    `json:"metadata"`
	Metrics  metrics.Record  `json:"metrics"`
	Diff     snapshot.Report `json:"diff"`
	Items    []jsonItem      `json:"items"`
	Grouped  jsonGrouped     `json:"grouped_data"`
}

func (r *JSONRenderer) Render(report application.Report) ([]byte, error) {
	out := jsonReport{
		Metadata: jsonMetadata{
			ProjectName:   report.Project.Title,
			Owner:         report.Project.Owner,
			ProjectNumber: report.Project.Number,
			GeneratedAt:   report.GeneratedAt,
			TotalItems:    report.Metrics.TotalItems,
		},
		Metrics: report.Metrics,
		Diff:    report.Diff,
		Items:   make([]jsonItem, 0, len(report.Items)),
		Grouped: jsonGrouped{
			ByStatus:   make(map[string]int, len(report.Metrics.ByStatus)),
			ByPriority: make(map[string]int, len(report.Metrics.ByPriority)),
			ByAssignee: make(map[string]int, len(report.Metrics.ByAssignee)),
		},
	}

	for _, item := range report.Items {
		out.Items = append(out.Items, jsonItem{
			WorkItem:  item,
			IsPlanned: item.IsPlanned(),
			IsActive:  item.IsActive(),
		})
	}

	for status, count := range report.Metrics.ByStatus {
		out.Grouped.ByStatus[status.String()] = count
	}
	for priority, count := range report.Metrics.ByPriority {
		out.Grouped.ByPriority[priority.String()] = count
	}
	for assignee, load := range report.Metrics.ByAssignee {
		out.Grouped.ByAssignee[assignee] = load.Count
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json report: %w", err)
	}
	return data, nil
}
