package model

import "time"

// Delta is the change between two adjacent states.
// Units:
// - Charge: kWh net change in residual energy (positive = gained)
// - Imported: kWh drawn from the grid over the span (>= 0 once admitted)
// - Exported: kWh delivered to the grid over the span (>= 0 once admitted)
type Delta struct {
	Duration time.Duration `json:"duration"`
	Charge   float64       `json:"charge"`
	Imported float64       `json:"imported"`
	Exported float64       `json:"exported"`
}

// Add returns the component-wise sum of two deltas. Deltas form a
// commutative monoid under Add with the zero Delta as identity, which is
// what makes per-mode aggregation order-independent.
func (d Delta) Add(other Delta) Delta {
	return Delta{
		Duration: d.Duration + other.Duration,
		Charge:   d.Charge + other.Charge,
		Imported: d.Imported + other.Imported,
		Exported: d.Exported + other.Exported,
	}
}

// Hours returns the span length in hours.
func (d Delta) Hours() float64 {
	return d.Duration.Hours()
}
