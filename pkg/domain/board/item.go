// Package board holds the normalized model of a project-board work item.
// Items are constructed once per fetch cycle at the parsing boundary and are
// immutable afterwards; a change over time is represented by a new item with
// the same ID in a later snapshot.
package board

import (
	"fmt"
	"time"
)

// WorkItem is one trackable unit of work on the project board.
type WorkItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	Assignees   []string  `json:"assignees"`
	Estimate    Estimate  `json:"estimate_hours"`
	Labels      []string  `json:"labels"`
	URL         string    `json:"url"`
	Repository  string    `json:"repository"`
	IssueNumber int       `json:"issue_number,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"`
	ClosedAt    time.Time `json:"closed_at,omitzero"`
}

// IsPlanned returns true if the item carries a planned priority (not urgent).
func (w WorkItem) IsPlanned() bool {
	return !w.Priority.IsUrgent()
}

// IsActive returns true if the item is not yet done.
func (w WorkItem) IsActive() bool {
	return !w.Status.IsDone()
}

// IsBacklog returns true if the item sits in the backlog column.
func (w WorkItem) IsBacklog() bool {
	return w.Status.IsBacklog()
}

// IsUnassigned returns true if nobody owns the item.
func (w WorkItem) IsUnassigned() bool {
	return len(w.Assignees) == 0
}

// RawItem is the wire shape of one board row as returned by the fetch
// collaborator, before enumeration validation.
type RawItem struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Status        string   `json:"status"`
	Priority      string   `json:"priority"`
	Assignees     []string `json:"assignees"`
	EstimateHours *float64 `json:"estimate (Hrs)"`
	Labels        []string `json:"labels"`
	Content       struct {
		URL        string `json:"url"`
		Repository string `json:"repository"`
		Number     int    `json:"number"`
	} `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	ClosedAt  string `json:"closed_at"`
}

// ParseWorkItem validates a raw board row into an immutable WorkItem. This is
// the fail-fast boundary: an unknown status or priority, or a negative
// estimate, is an error identifying the offending field and value. Nothing is
// coerced to a default.
func ParseWorkItem(raw RawItem) (WorkItem, error) {
	status, err := ParseStatus(raw.Status)
	if err != nil {
		return WorkItem{}, fmt.Errorf("item %q: %w", raw.ID, err)
	}

	priority, err := ParsePriority(raw.Priority)
	if err != nil {
		return WorkItem{}, fmt.Errorf("item %q: %w", raw.ID, err)
	}

	estimate := NoEstimate()
	if raw.EstimateHours != nil {
		estimate, err = NewEstimate(*raw.EstimateHours)
		if err != nil {
			return WorkItem{}, fmt.Errorf("item %q: %w", raw.ID, err)
		}
	}

	item := WorkItem{
		ID:          raw.ID,
		Title:       raw.Title,
		Status:      status,
		Priority:    priority,
		Assignees:   raw.Assignees,
		Estimate:    estimate,
		Labels:      raw.Labels,
		URL:         raw.Content.URL,
		Repository:  raw.Content.Repository,
		IssueNumber: raw.Content.Number,
	}

	if item.CreatedAt, err = parseTimestamp(raw.ID, "created_at", raw.CreatedAt); err != nil {
		return WorkItem{}, err
	}
	if item.UpdatedAt, err = parseTimestamp(raw.ID, "updated_at", raw.UpdatedAt); err != nil {
		return WorkItem{}, err
	}
	if item.ClosedAt, err = parseTimestamp(raw.ID, "closed_at", raw.ClosedAt); err != nil {
		return WorkItem{}, err
	}

	return item, nil
}

// ParseWorkItems validates a full fetch cycle of raw rows. The first
// malformed row aborts the parse.
func ParseWorkItems(raws []RawItem) ([]WorkItem, error) {
	items := make([]WorkItem, 0, len(raws))
	for _, raw := range raws {
		item, err := ParseWorkItem(raw)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func parseTimestamp(itemID, field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("item %q: invalid %s: %q", itemID, field, value)
	}
	return ts, nil
}
