package metrics_test

import (
	"testing"

	"github.com/felixgeelhaar/boardpulse/pkg/domain/board"
	"github.com/felixgeelhaar/boardpulse/pkg/domain/metrics"
)

func item(status board.Status, priority board.Priority) board.WorkItem {
	return board.WorkItem{Status: status, Priority: priority}
}

func TestCountByStatus(t *testing.T) {
	items := []board.WorkItem{
		item(board.StatusTodo, board.PriorityP1),
		item(board.StatusTodo, board.PriorityP2),
		item(board.StatusDone, board.PriorityP1),
	}

	counts := metrics.CountByStatus(items)
	if counts[board.StatusTodo] != 2 {
		t.Errorf("expected 2 todo, got %d", counts[board.StatusTodo])
	}
	if counts[board.StatusDone] != 1 {
		t.Errorf("expected 1 done, got %d", counts[board.StatusDone])
	}
	if counts[board.StatusBacklog] != 0 {
		t.Errorf("expected 0 backlog, got %d", counts[board.StatusBacklog])
	}
}

func TestCountByStatusOrderIndependent(t *testing.T) {
	forward := []board.WorkItem{
		item(board.StatusTodo, board.PriorityP1),
		item(board.StatusDone, board.PriorityP2),
		item(board.StatusBacklog, board.PriorityP0),
	}
	reversed := []board.WorkItem{forward[2], forward[1], forward[0]}

	a := metrics.CountByStatus(forward)
	b := metrics.CountByStatus(reversed)
	for status, count := range a {
		if b[status] != count {
			t.Errorf("count for %s differs with input order: %d vs %d", status, count, b[status])
		}
	}
}

func TestCountByPriorityExcludesDone(t *testing.T) {
	items := []board.WorkItem{
		item(board.StatusTodo, board.PriorityUrgent),
		item(board.StatusInProgress, board.PriorityUrgent),
		item(board.StatusDone, board.PriorityUrgent),
		item(board.StatusDone, board.PriorityP2),
	}

	counts := metrics.CountByPriority(items)
	if counts[board.PriorityUrgent] != 2 {
		t.Errorf("expected 2 active urgent, got %d", counts[board.PriorityUrgent])
	}
	if counts[board.PriorityP2] != 0 {
		t.Errorf("done items should not count toward priority pressure, got %d", counts[board.PriorityP2])
	}
}

func TestGroupByAssigneeDoubleCountsSharedItems(t *testing.T) {
	shared := board.WorkItem{
		Status:    board.StatusTodo,
		Priority:  board.PriorityP1,
		Assignees: []string{"alice", "bob"},
		Estimate:  board.MustNewEstimate(8),
	}

	loads := metrics.GroupByAssignee([]board.WorkItem{shared})

	for _, name := range []string{"alice", "bob"} {
		load := loads[name]
		if load.Count != 1 {
			t.Errorf("%s: expected count 1, got %d", name, load.Count)
		}
		if load.EstimateHours != 8 {
			t.Errorf("%s: expected full 8h estimate, got %v", name, load.EstimateHours)
		}
		if load.ActiveCount != 1 {
			t.Errorf("%s: expected active count 1, got %d", name, load.ActiveCount)
		}
	}
}

func TestGroupByAssigneeUnassignedBucket(t *testing.T) {
	items := []board.WorkItem{
		{Status: board.StatusTodo, Priority: board.PriorityP1},
		{Status: board.StatusDone, Priority: board.PriorityP2, Estimate: board.MustNewEstimate(3)},
	}

	loads := metrics.GroupByAssignee(items)
	bucket, ok := loads[metrics.Unassigned]
	if !ok {
		t.Fatal("expected an Unassigned bucket")
	}
	if bucket.Count != 2 {
		t.Errorf("expected 2 unassigned items, got %d", bucket.Count)
	}
	if bucket.ActiveCount != 1 {
		t.Errorf("expected 1 active unassigned item, got %d", bucket.ActiveCount)
	}
	if bucket.EstimateHours != 3 {
		t.Errorf("expected 3h, got %v", bucket.EstimateHours)
	}
}

func TestCountEstimatedDistinguishesZeroFromAbsent(t *testing.T) {
	items := []board.WorkItem{
		{Status: board.StatusTodo, Priority: board.PriorityP1, Estimate: board.MustNewEstimate(0)},
		{Status: board.StatusTodo, Priority: board.PriorityP1},
		{Status: board.StatusTodo, Priority: board.PriorityP1, Estimate: board.MustNewEstimate(4)},
	}

	with, without := metrics.CountEstimated(items)
	if with != 2 {
		t.Errorf("zero-hour estimate should count as estimated: expected 2, got %d", with)
	}
	if without != 1 {
		t.Errorf("expected 1 without estimate, got %d", without)
	}
}
