package estimate

import (
	"fmt"
	"time"

	"battery-params/internal/model"
)

// Policy controls how the differencer treats adjacent state pairs whose
// lifetime counters went backwards (counter reset, meter rollback). Exactly
// one policy applies per run; the two are never mixed.
type Policy string

const (
	// PolicyDrop silently skips any pair with a decreasing counter. Skipped
	// pairs are counted for observability but never abort the run.
	PolicyDrop Policy = "drop"

	// PolicyCorrect admits a pair whose import counter decreased by clamping
	// the imported delta to zero and reinterpreting the magnitude as
	// additional export. Pairs with non-increasing timestamps or a
	// decreasing export counter are still skipped.
	PolicyCorrect Policy = "correct"
)

func (p Policy) Validate() error {
	switch p {
	case PolicyDrop, PolicyCorrect:
		return nil
	default:
		return fmt.Errorf("unsupported differencing policy: %q", p)
	}
}

// Span is the time window an admitted delta covers.
type Span struct {
	Start time.Time
	End   time.Time
}

// Differencer turns an ordered state sequence into deltas over adjacent
// pairs, applying its validity policy. The zero value uses PolicyDrop.
type Differencer struct {
	Policy Policy

	// Skipped is the number of adjacent pairs rejected during the last
	// Deltas call.
	Skipped int

	// Spans holds the time window of each admitted delta, parallel to the
	// last Deltas result.
	Spans []Span
}

// Deltas performs a single forward pass over states. Every admitted delta
// satisfies Duration > 0, Imported >= 0 and Exported >= 0.
func (df *Differencer) Deltas(states []model.State) []model.Delta {
	df.Skipped = 0
	df.Spans = nil
	if len(states) < 2 {
		return nil
	}

	policy := df.Policy
	if policy == "" {
		policy = PolicyDrop
	}

	deltas := make([]model.Delta, 0, len(states)-1)
	for i := 1; i < len(states); i++ {
		prev, next := states[i-1], states[i]
		if !next.Timestamp.After(prev.Timestamp) {
			df.Skipped++
			continue
		}

		d := next.Sub(prev)
		if d.Exported < 0 {
			df.Skipped++
			continue
		}
		if d.Imported < 0 {
			if policy != PolicyCorrect {
				df.Skipped++
				continue
			}
			d.Exported += -d.Imported
			d.Imported = 0
		}
		deltas = append(deltas, d)
		df.Spans = append(df.Spans, Span{Start: prev.Timestamp, End: next.Timestamp})
	}
	return deltas
}
