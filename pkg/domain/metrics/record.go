// Package metrics derives project-health numbers from a list of work items.
// Everything here is a pure function over immutable inputs: the record is
// recomputed wholesale on every fetch cycle and renderers only ever format
// values already present on it.
package metrics

import (
	"github.com/felixgeelhaar/boardpulse/pkg/domain/board"
)

// Record is a single immutable snapshot of derived numbers. Every percentage
// lies in [0,100] and is exactly 0 when its denominator is 0.
type Record struct {
	TotalItems         int     `json:"total_items"`
	TotalEstimateHours float64 `json:"total_estimate_hours"`

	ByStatus   map[board.Status]int    `json:"by_status"`
	ByPriority map[board.Priority]int  `json:"by_priority"`
	ByAssignee map[string]AssigneeLoad `json:"by_assignee"`

	CompletionPct       float64 `json:"completion_pct"`
	ActiveCompletionPct float64 `json:"active_completion_pct"`
	UnplannedPct        float64 `json:"unplanned_pct"`
	ActiveUnplannedPct  float64 `json:"active_unplanned_pct"`
	UnplannedDonePct    float64 `json:"unplanned_done_pct"`

	PlannedCount           int `json:"planned_count"`
	UnplannedCount         int `json:"unplanned_count"`
	ActiveUnplannedCount   int `json:"active_unplanned_count"`
	UnplannedDoneCount     int `json:"unplanned_done_count"`
	UnassignedCount        int `json:"unassigned_count"`
	HighPriorityNotStarted int `json:"high_priority_not_started"`

	ActiveItems     int `json:"active_items"`
	BacklogItems    int `json:"backlog_items"`
	TodoItems       int `json:"todo_items"`
	PendingItems    int `json:"pending_items"`
	InProgressItems int `json:"in_progress_items"`
	InReviewItems   int `json:"in_review_items"`
	DoneItems       int `json:"done_items"`

	WithEstimate    int `json:"with_estimate"`
	WithoutEstimate int `json:"without_estimate"`
}
