package board

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Priority is the planning priority of a work item. Urgent marks reactive,
// unplanned work; P0 through P2 are planned priority levels.
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityP0     Priority = "p0"
	PriorityP1     Priority = "p1"
	PriorityP2     Priority = "p2"
)

// priorityOrder defines the ordering of priorities (higher order = more urgent).
var priorityOrder = map[Priority]int{
	PriorityP2:     1,
	PriorityP1:     2,
	PriorityP0:     3,
	PriorityUrgent: 4,
}

// priorityLabels maps the board field labels to priorities. The urgent label
// is the fire emoji the board uses for unplanned work.
var priorityLabels = map[string]Priority{
	"p🔥":     PriorityUrgent,
	"urgent": PriorityUrgent,
	"p0":     PriorityP0,
	"p1":     PriorityP1,
	"p2":     PriorityP2,
}

// AllPriorities returns all valid priorities, most urgent first.
func AllPriorities() []Priority {
	return []Priority{
		PriorityUrgent,
		PriorityP0,
		PriorityP1,
		PriorityP2,
	}
}

// IsValid returns true if the priority is a valid board priority.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityUrgent, PriorityP0, PriorityP1, PriorityP2:
		return true
	default:
		return false
	}
}

// String returns the string representation of the priority.
func (p Priority) String() string {
	return string(p)
}

// Order returns the numeric order of the priority (higher = more urgent).
func (p Priority) Order() int {
	if order, ok := priorityOrder[p]; ok {
		return order
	}
	return 0
}

// Compare compares this priority to another.
// Returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Priority) Compare(other Priority) int {
	thisOrder := p.Order()
	otherOrder := other.Order()

	switch {
	case thisOrder < otherOrder:
		return -1
	case thisOrder > otherOrder:
		return 1
	default:
		return 0
	}
}

// IsUrgent returns true if this is the unplanned, reactive priority.
func (p Priority) IsUrgent() bool {
	return p == PriorityUrgent
}

// IsHigh returns true for the priorities that demand immediate scheduling.
func (p Priority) IsHigh() bool {
	return p == PriorityUrgent || p == PriorityP0
}

// DisplayName returns the board field label for the priority.
func (p Priority) DisplayName() string {
	switch p {
	case PriorityUrgent:
		return "P🔥"
	case PriorityP0:
		return "P0"
	case PriorityP1:
		return "P1"
	case PriorityP2:
		return "P2"
	default:
		return string(p)
	}
}

// ParsePriority parses a string into a Priority. It accepts both the
// canonical form ("urgent") and the board field label ("P🔥", "P0").
// Unknown values are an error, never coerced to a default.
func ParsePriority(s string) (Priority, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if priority, ok := priorityLabels[normalized]; ok {
		return priority, nil
	}
	return "", fmt.Errorf("invalid priority: %q", s)
}

// MustParsePriority parses a string into a Priority, panicking on error.
func MustParsePriority(s string) Priority {
	priority, err := ParsePriority(s)
	if err != nil {
		panic(err)
	}
	return priority
}

// MarshalJSON implements json.Marshaler interface.
func (p Priority) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(p))
}

// UnmarshalJSON implements json.Unmarshaler interface.
func (p *Priority) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	priority, err := ParsePriority(str)
	if err != nil {
		return err
	}

	*p = priority
	return nil
}
