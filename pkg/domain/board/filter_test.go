package board_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/boardpulse/pkg/domain/board"
)

func itemCreatedAt(id string, ts time.Time) board.WorkItem {
	return board.WorkItem{
		ID:        id,
		Status:    board.StatusTodo,
		Priority:  board.PriorityP1,
		CreatedAt: ts,
	}
}

func TestFilterByDateRange(t *testing.T) {
	jan := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	items := []board.WorkItem{
		itemCreatedAt("1", jan),
		itemCreatedAt("2", feb),
		itemCreatedAt("3", mar),
		itemCreatedAt("4", time.Time{}), // no timestamp
	}

	got := board.FilterByDateRange(items, feb, mar, board.DateFieldCreated)
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	if got[0].ID != "2" || got[1].ID != "3" {
		t.Errorf("unexpected items: %v, %v", got[0].ID, got[1].ID)
	}

	// Open lower bound
	got = board.FilterByDateRange(items, time.Time{}, feb, board.DateFieldCreated)
	if len(got) != 2 {
		t.Errorf("expected 2 items with open lower bound, got %d", len(got))
	}

	// Bounds are inclusive
	got = board.FilterByDateRange(items, feb, feb, board.DateFieldCreated)
	if len(got) != 1 || got[0].ID != "2" {
		t.Errorf("expected exactly item 2, got %d items", len(got))
	}

	// No bounds: input unchanged, untimestamped item included
	got = board.FilterByDateRange(items, time.Time{}, time.Time{}, board.DateFieldCreated)
	if len(got) != 4 {
		t.Errorf("expected all 4 items without bounds, got %d", len(got))
	}
}

func TestParseDateField(t *testing.T) {
	for _, valid := range []string{"created_at", "updated_at", "closed_at"} {
		if _, err := board.ParseDateField(valid); err != nil {
			t.Errorf("ParseDateField(%q): unexpected error: %v", valid, err)
		}
	}
	if _, err := board.ParseDateField("resolved_at"); err == nil {
		t.Error("expected error for unknown date field")
	}
}
