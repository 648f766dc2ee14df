package board

import (
	"fmt"
	"time"
)

// DateField selects which item timestamp a date-range filter applies to.
type DateField string

const (
	DateFieldCreated DateField = "created_at"
	DateFieldUpdated DateField = "updated_at"
	DateFieldClosed  DateField = "closed_at"
)

// IsValid returns true if the field is a filterable timestamp.
func (f DateField) IsValid() bool {
	switch f {
	case DateFieldCreated, DateFieldUpdated, DateFieldClosed:
		return true
	default:
		return false
	}
}

// ParseDateField parses a string into a DateField.
func ParseDateField(s string) (DateField, error) {
	field := DateField(s)
	if !field.IsValid() {
		return "", fmt.Errorf("invalid date field: %q", s)
	}
	return field, nil
}

// FilterByDateRange returns the items whose selected timestamp falls inside
// [from, to]. A zero bound is open on that side; items without the selected
// timestamp are excluded whenever any bound is set. With both bounds zero the
// input is returned unchanged.
func FilterByDateRange(items []WorkItem, from, to time.Time, field DateField) []WorkItem {
	if from.IsZero() && to.IsZero() {
		return items
	}

	filtered := make([]WorkItem, 0, len(items))
	for _, item := range items {
		ts := item.timestamp(field)
		if ts.IsZero() {
			continue
		}
		if !from.IsZero() && ts.Before(from) {
			continue
		}
		if !to.IsZero() && ts.After(to) {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

func (w WorkItem) timestamp(field DateField) time.Time {
	switch field {
	case DateFieldCreated:
		return w.CreatedAt
	case DateFieldUpdated:
		return w.UpdatedAt
	case DateFieldClosed:
		return w.ClosedAt
	default:
		return time.Time{}
	}
}
