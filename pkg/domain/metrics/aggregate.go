package metrics

import (
	"github.com/felixgeelhaar/boardpulse/pkg/domain/board"
)

// Unassigned is the bucket for items that have no assignee. Items without an
// owner are counted there rather than dropped.
const Unassigned = "Unassigned"

// AssigneeLoad is the aggregated workload of one assignee.
type AssigneeLoad struct {
	Count         int     `json:"count"`
	ActiveCount   int     `json:"active_count"`
	EstimateHours float64 `json:"estimate_hours"`
}

// CountByStatus returns the number of items in each board column. Input order
// does not affect the result.
func CountByStatus(items []board.WorkItem) map[board.Status]int {
	counts := make(map[board.Status]int)
	for _, item := range items {
		counts[item.Status]++
	}
	return counts
}

// CountByPriority returns the number of active (not done) items per priority.
// Priority pressure is only interesting for unfinished work, so done items
// are excluded.
func CountByPriority(items []board.WorkItem) map[board.Priority]int {
	counts := make(map[board.Priority]int)
	for _, item := range items {
		if !item.IsActive() {
			continue
		}
		counts[item.Priority]++
	}
	return counts
}

// GroupByAssignee returns the per-assignee workload. An item with several
// assignees contributes its full count and full estimate to each of them:
// every assignee is considered individually responsible for the whole item,
// so estimate hours summed across assignees deliberately exceed the project
// total for shared items.
func GroupByAssignee(items []board.WorkItem) map[string]AssigneeLoad {
	loads := make(map[string]AssigneeLoad)

	add := func(assignee string, item board.WorkItem) {
		load := loads[assignee]
		load.Count++
		if item.IsActive() {
			load.ActiveCount++
		}
		if item.Estimate.Present() {
			load.EstimateHours += item.Estimate.Hours()
		}
		loads[assignee] = load
	}

	for _, item := range items {
		if item.IsUnassigned() {
			add(Unassigned, item)
			continue
		}
		for _, assignee := range item.Assignees {
			add(assignee, item)
		}
	}

	return loads
}

// CountEstimated returns how many items carry an estimate and how many do
// not. A zero-hour estimate counts as estimated; an absent estimate does not.
func CountEstimated(items []board.WorkItem) (with, without int) {
	for _, item := range items {
		if item.Estimate.Present() {
			with++
		} else {
			without++
		}
	}
	return with, without
}
