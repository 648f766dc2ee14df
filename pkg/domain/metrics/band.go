package metrics

import (
	"fmt"
)

// Band is the three-level severity classification renderers use for visual
// emphasis. It is computed here so every renderer agrees on the colour.
type Band string

const (
	BandGood Band = "good"
	BandWarn Band = "warn"
	BandBad  Band = "bad"
)

// Direction states whether a higher metric value is desirable.
type Direction string

const (
	HigherIsBetter Direction = "higher_better"
	LowerIsBetter  Direction = "lower_better"
)

// Policy is a named threshold pair plus a direction. The classifier holds no
// metric-specific knowledge; the policy is passed explicitly per metric, so
// new metrics can be colour-coded without touching this file.
type Policy struct {
	Good      float64   `json:"good" yaml:"good"`
	Bad       float64   `json:"bad" yaml:"bad"`
	Direction Direction `json:"direction" yaml:"direction"`
}

// Validate checks that the thresholds are ordered consistently with the
// direction. Equal thresholds are allowed and eliminate the warn band.
func (p Policy) Validate() error {
	switch p.Direction {
	case HigherIsBetter:
		if p.Good < p.Bad {
			return fmt.Errorf("higher-is-better policy needs good >= bad, got good=%v bad=%v", p.Good, p.Bad)
		}
	case LowerIsBetter:
		if p.Good > p.Bad {
			return fmt.Errorf("lower-is-better policy needs good <= bad, got good=%v bad=%v", p.Good, p.Bad)
		}
	default:
		return fmt.Errorf("invalid policy direction: %q", p.Direction)
	}
	return nil
}

// Classify maps a metric value to a severity band under the given policy.
// The good threshold wins where the bands touch, which is what lets a policy
// with Good == Bad express a two-band scale with no warn range.
func Classify(value float64, policy Policy) Band {
	switch policy.Direction {
	case HigherIsBetter:
		if value >= policy.Good {
			return BandGood
		}
		if value <= policy.Bad {
			return BandBad
		}
	default:
		if value <= policy.Good {
			return BandGood
		}
		if value >= policy.Bad {
			return BandBad
		}
	}
	return BandWarn
}

// Policies is the set of threshold policies one report run classifies with.
// It is passed in explicitly so concurrent runs for different projects
// cannot interfere.
type Policies struct {
	Completion             Policy `json:"completion" yaml:"completion"`
	Unplanned              Policy `json:"unplanned" yaml:"unplanned"`
	UnplannedDone          Policy `json:"unplanned_done" yaml:"unplanned_done"`
	AssigneeLoad           Policy `json:"assignee_load" yaml:"assignee_load"`
	HighPriorityNotStarted Policy `json:"high_priority_not_started" yaml:"high_priority_not_started"`
}

// DefaultPolicies returns the system default threshold policies.
func DefaultPolicies() Policies {
	return Policies{
		Completion:             Policy{Good: 70, Bad: 30, Direction: HigherIsBetter},
		Unplanned:              Policy{Good: 10, Bad: 20, Direction: LowerIsBetter},
		UnplannedDone:          Policy{Good: 20, Bad: 40, Direction: LowerIsBetter},
		AssigneeLoad:           Policy{Good: 10, Bad: 10, Direction: LowerIsBetter},
		HighPriorityNotStarted: Policy{Good: 0, Bad: 5, Direction: LowerIsBetter},
	}
}

// Validate checks every policy in the set.
func (p Policies) Validate() error {
	checks := map[string]Policy{
		"completion":                p.Completion,
		"unplanned":                 p.Unplanned,
		"unplanned_done":            p.UnplannedDone,
		"assignee_load":             p.AssigneeLoad,
		"high_priority_not_started": p.HighPriorityNotStarted,
	}
	for name, policy := range checks {
		if err := policy.Validate(); err != nil {
			return fmt.Errorf("policy %s: %w", name, err)
		}
	}
	return nil
}
