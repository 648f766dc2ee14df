package board

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Status is the workflow column of a work item on the project board.
type Status string

const (
	StatusBacklog    Status = "backlog"
	StatusTodo       Status = "todo"
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusInReview   Status = "in_review"
	StatusDone       Status = "done"
)

// statusOrder defines the board column ordering, left to right.
var statusOrder = map[Status]int{
	StatusBacklog:    1,
	StatusTodo:       2,
	StatusPending:    3,
	StatusInProgress: 4,
	StatusInReview:   5,
	StatusDone:       6,
}

// AllStatuses returns all valid statuses in board order.
func AllStatuses() []Status {
	return []Status{
		StatusBacklog,
		StatusTodo,
		StatusPending,
		StatusInProgress,
		StatusInReview,
		StatusDone,
	}
}

// IsValid returns true if the status is a valid board status.
func (s Status) IsValid() bool {
	switch s {
	case StatusBacklog, StatusTodo, StatusPending, StatusInProgress, StatusInReview, StatusDone:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// Order returns the numeric board position of the status (higher = further along).
func (s Status) Order() int {
	if order, ok := statusOrder[s]; ok {
		return order
	}
	return 0
}

// IsDone returns true if the item has been completed.
func (s Status) IsDone() bool {
	return s == StatusDone
}

// IsBacklog returns true if the item has not been pulled into active scope.
func (s Status) IsBacklog() bool {
	return s == StatusBacklog
}

// IsNotStarted returns true if no work has begun on the item.
func (s Status) IsNotStarted() bool {
	return s == StatusBacklog || s == StatusTodo
}

// DisplayName returns the board column label for the status.
func (s Status) DisplayName() string {
	switch s {
	case StatusBacklog:
		return "Backlog"
	case StatusTodo:
		return "Todo"
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In Progress"
	case StatusInReview:
		return "In Review"
	case StatusDone:
		return "Done"
	default:
		return string(s)
	}
}

// ParseStatus parses a string into a Status. It accepts both the canonical
// form ("in_progress") and the board column label ("In Progress"). Unknown
// values are an error, never coerced to a default.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
	status := Status(normalized)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid status: %q", s)
	}
	return status, nil
}

// MustParseStatus parses a string into a Status, panicking on error.
func MustParseStatus(s string) Status {
	status, err := ParseStatus(s)
	if err != nil {
		panic(err)
	}
	return status
}

// MarshalJSON implements json.Marshaler interface.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

// UnmarshalJSON implements json.Unmarshaler interface.
func (s *Status) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	status, err := ParseStatus(str)
	if err != nil {
		return err
	}

	*s = status
	return nil
}
