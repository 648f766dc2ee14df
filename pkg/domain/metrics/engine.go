package metrics

import (
	"math"

	"github.com/felixgeelhaar/boardpulse/pkg/domain/board"
)

// Compute derives the full metrics record for one fetch cycle. It makes a
// single pass over the items plus the grouping pass; input order never
// affects the result.
//
// Scope vocabulary: "active scope" is every item outside the backlog column,
// which is the denominator for the active-* percentages. That is distinct
// from an item being active (not yet done).
func Compute(items []board.WorkItem) Record {
	record := Record{
		TotalItems: len(items),
		ByStatus:   CountByStatus(items),
		ByPriority: CountByPriority(items),
		ByAssignee: GroupByAssignee(items),
	}

	record.BacklogItems = record.ByStatus[board.StatusBacklog]
	record.TodoItems = record.ByStatus[board.StatusTodo]
	record.PendingItems = record.ByStatus[board.StatusPending]
	record.InProgressItems = record.ByStatus[board.StatusInProgress]
	record.InReviewItems = record.ByStatus[board.StatusInReview]
	record.DoneItems = record.ByStatus[board.StatusDone]
	record.ActiveItems = record.TotalItems - record.BacklogItems

	var activeDone, activeUnplanned int
	for _, item := range items {
		if item.Estimate.Present() {
			record.WithEstimate++
			record.TotalEstimateHours += item.Estimate.Hours()
		} else {
			record.WithoutEstimate++
		}

		if item.IsPlanned() {
			record.PlannedCount++
		} else {
			record.UnplannedCount++
			if item.Status.IsDone() {
				record.UnplannedDoneCount++
			}
		}

		if item.IsUnassigned() {
			record.UnassignedCount++
		}

		if item.Priority.IsHigh() && item.Status.IsNotStarted() {
			record.HighPriorityNotStarted++
		}

		if !item.IsBacklog() {
			if item.Status.IsDone() {
				activeDone++
			}
			if !item.IsPlanned() {
				activeUnplanned++
			}
		}
	}
	record.ActiveUnplannedCount = activeUnplanned

	record.CompletionPct = percentage(record.DoneItems, record.TotalItems)
	record.ActiveCompletionPct = percentage(activeDone, record.ActiveItems)
	record.UnplannedPct = percentage(record.UnplannedCount, record.TotalItems)
	record.ActiveUnplannedPct = percentage(activeUnplanned, record.ActiveItems)
	record.UnplannedDonePct = percentage(record.UnplannedDoneCount, record.DoneItems)

	return record
}

// percentage returns 100*numerator/denominator rounded half-up to one
// decimal place, and exactly 0 for a zero denominator. An empty project is a
// valid state to report on, never an arithmetic error.
func percentage(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return math.Round(float64(numerator)/float64(denominator)*1000) / 10
}
