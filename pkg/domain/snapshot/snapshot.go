// Package snapshot captures a fetch cycle's work items with a timestamp and
// computes what changed between two captures.
package snapshot

import (
	"time"

	"github.com/felixgeelhaar/boardpulse/pkg/domain/board"
)

// Snapshot is a captured list of work items paired with the capture time.
// It is written by the persistence collaborator after each run and read back
// as the baseline for the next run's diff.
type Snapshot struct {
	ID         string           `json:"id"`
	CapturedAt time.Time        `json:"captured_at"`
	Items      []board.WorkItem `json:"items"`
}

// New captures the given items at the given time.
func New(id string, capturedAt time.Time, items []board.WorkItem) Snapshot {
	return Snapshot{
		ID:         id,
		CapturedAt: capturedAt,
		Items:      items,
	}
}

// ItemsByID returns an identifier-keyed lookup of the snapshot's items.
func (s Snapshot) ItemsByID() map[string]board.WorkItem {
	byID := make(map[string]board.WorkItem, len(s.Items))
	for _, item := range s.Items {
		byID[item.ID] = item
	}
	return byID
}
