package board

import (
	"encoding/json"
	"fmt"
)

// Estimate represents an optional time estimate in hours. An item with a
// zero-hour estimate is distinct from an item with no estimate at all: the
// former counts as estimated work, the latter is excluded from estimate
// aggregation entirely.
type Estimate struct {
	hours   float64
	present bool
}

// NewEstimate constructs a present estimate. Negative values are rejected.
func NewEstimate(hours float64) (Estimate, error) {
	if hours < 0 {
		return Estimate{}, fmt.Errorf("estimate hours must be non-negative, got %v", hours)
	}
	return Estimate{hours: hours, present: true}, nil
}

// MustNewEstimate constructs a present estimate, panicking on error.
func MustNewEstimate(hours float64) Estimate {
	e, err := NewEstimate(hours)
	if err != nil {
		panic(err)
	}
	return e
}

// NoEstimate returns the absent estimate.
func NoEstimate() Estimate {
	return Estimate{}
}

// Present returns true if an estimate was provided.
func (e Estimate) Present() bool {
	return e.present
}

// Hours returns the estimated hours, 0 when absent.
func (e Estimate) Hours() float64 {
	return e.hours
}

// String returns a display form of the estimate.
func (e Estimate) String() string {
	if !e.present {
		return "-"
	}
	return fmt.Sprintf("%gh", e.hours)
}

// MarshalJSON encodes the estimate as a number, or null when absent.
func (e Estimate) MarshalJSON() ([]byte, error) {
	if !e.present {
		return []byte("null"), nil
	}
	return json.Marshal(e.hours)
}

// UnmarshalJSON decodes a number or null into the estimate.
func (e *Estimate) UnmarshalJSON(data []byte) error {
	var hours *float64
	if err := json.Unmarshal(data, &hours); err != nil {
		return err
	}

	if hours == nil {
		*e = NoEstimate()
		return nil
	}

	est, err := NewEstimate(*hours)
	if err != nil {
		return err
	}

	*e = est
	return nil
}
