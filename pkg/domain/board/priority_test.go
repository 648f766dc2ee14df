package board_test

import (
	"encoding/json"
	"testing"

	"github.com/felixgeelhaar/boardpulse/pkg/domain/board"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input   string
		want    board.Priority
		wantErr bool
	}{
		{"P🔥", board.PriorityUrgent, false},
		{"urgent", board.PriorityUrgent, false},
		{"P0", board.PriorityP0, false},
		{"p0", board.PriorityP0, false},
		{"P1", board.PriorityP1, false},
		{"P2", board.PriorityP2, false},
		{" p1 ", board.PriorityP1, false},
		{"", "", true},
		{"P3", "", true},
		{"high", "", true},
	}

	for _, tt := range tests {
		got, err := board.ParsePriority(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParsePriority(%q): expected error, got %q", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePriority(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePriority(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPriorityCompare(t *testing.T) {
	if board.PriorityUrgent.Compare(board.PriorityP0) != 1 {
		t.Error("urgent should rank above p0")
	}
	if board.PriorityP2.Compare(board.PriorityP1) != -1 {
		t.Error("p2 should rank below p1")
	}
	if board.PriorityP1.Compare(board.PriorityP1) != 0 {
		t.Error("equal priorities should compare 0")
	}
}

func TestPriorityPredicates(t *testing.T) {
	if !board.PriorityUrgent.IsUrgent() {
		t.Error("urgent should be urgent")
	}
	if board.PriorityP0.IsUrgent() {
		t.Error("p0 should not be urgent")
	}
	if !board.PriorityUrgent.IsHigh() || !board.PriorityP0.IsHigh() {
		t.Error("urgent and p0 should be high priority")
	}
	if board.PriorityP1.IsHigh() {
		t.Error("p1 should not be high priority")
	}
}

func TestPriorityDisplayName(t *testing.T) {
	if got := board.PriorityUrgent.DisplayName(); got != "P🔥" {
		t.Errorf("expected fire label, got %q", got)
	}
	if got := board.PriorityP0.DisplayName(); got != "P0" {
		t.Errorf("expected P0, got %q", got)
	}
}

func TestPriorityJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(board.PriorityUrgent)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"urgent"` {
		t.Errorf("unexpected JSON: %s", data)
	}

	var p board.Priority
	if err := json.Unmarshal([]byte(`"P🔥"`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p != board.PriorityUrgent {
		t.Errorf("expected urgent, got %q", p)
	}

	if err := json.Unmarshal([]byte(`"P5"`), &p); err == nil {
		t.Error("expected error for unknown priority")
	}
}
