package estimate

import "battery-params/internal/model"

// Epsilon is the sensor noise floor in kWh. Flows below it are treated as
// zero, both for classification and for denominators derived from flows.
const Epsilon = 0.001

// Classify assigns a delta to exactly one working mode. The branches are
// ordered by precedence and must stay that way: the mixed check has to run
// before the single-flow checks, and the charge sign only matters once both
// flows are below the noise floor.
//
// A delta with no recorded flow but a positive charge is attributed to
// Charging. An unexplained-gain bucket was considered and rejected; see the
// classifier notes in DESIGN.md.
func Classify(d model.Delta) model.WorkingMode {
	importing := d.Imported >= Epsilon
	exporting := d.Exported >= Epsilon

	switch {
	case importing && exporting:
		return model.ModeMixed
	case importing:
		return model.ModeCharging
	case exporting:
		return model.ModeDischarging
	case d.Charge <= 0:
		return model.ModeIdling
	default:
		return model.ModeCharging
	}
}

// ClassifyAll classifies a delta sequence, preserving order.
func ClassifyAll(deltas []model.Delta) []model.WorkingMode {
	modes := make([]model.WorkingMode, len(deltas))
	for i, d := range deltas {
		modes[i] = Classify(d)
	}
	return modes
}
