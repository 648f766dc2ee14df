package snapshot

import (
	"github.com/felixgeelhaar/boardpulse/pkg/domain/board"
)

// Transition records one item whose status changed between two snapshots.
type Transition struct {
	ID    string       `json:"id"`
	Title string       `json:"title"`
	From  board.Status `json:"from"`
	To    board.Status `json:"to"`
}

// Report is the change-set between the current items and the previous
// snapshot. An item counted as Added never also appears in Transitions.
type Report struct {
	Added       int          `json:"added"`
	Completed   int          `json:"completed"`
	Transitions []Transition `json:"transitions"`
}

// HasChanges returns true if anything moved since the previous snapshot.
func (r Report) HasChanges() bool {
	return r.Added > 0 || r.Completed > 0 || len(r.Transitions) > 0
}

// Diff compares the current items against the previous snapshot. A nil
// previous snapshot is not an error: it behaves as an empty baseline, so
// every current item is new and the done ones among them count as completed.
//
// Items present only in the previous snapshot (deleted or moved out of
// scope) are not reported. Diff is a pure function of its inputs: the same
// arguments always produce an identical report.
func Diff(current []board.WorkItem, previous *Snapshot) Report {
	report := Report{Transitions: []Transition{}}

	var previousByID map[string]board.WorkItem
	if previous != nil {
		previousByID = previous.ItemsByID()
	}

	for _, item := range current {
		prev, seen := previousByID[item.ID]
		if !seen {
			report.Added++
			if item.Status.IsDone() {
				report.Completed++
			}
			continue
		}

		if prev.Status == item.Status {
			continue
		}

		report.Transitions = append(report.Transitions, Transition{
			ID:    item.ID,
			Title: item.Title,
			From:  prev.Status,
			To:    item.Status,
		})

		if item.Status.IsDone() && !prev.Status.IsDone() {
			report.Completed++
		}
	}

	return report
}
