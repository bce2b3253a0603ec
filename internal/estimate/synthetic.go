package estimate

import (
	"time"

	"battery-params/internal/model"
)

// SimulateStates builds a noiseless state sequence from known ground-truth
// parameters, alternating charging, idling and discharging intervals. The
// generative model per interval of h hours is
//
//	charge = −P·h + Ce·imported − exported/De
//
// which all three estimator strategies agree on exactly, so the truth is
// recoverable to floating precision. Used by the demo and the recovery
// tests.
func SimulateStates(truth model.Parameters, cycles int, interval time.Duration) []model.State {
	const (
		importKW = 1.2
		exportKW = 0.8
	)

	hours := interval.Hours()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	state := model.State{
		Timestamp:      now,
		ResidualEnergy: 5.0,
	}
	states := []model.State{state}

	step := func(importedKWh, exportedKWh float64) {
		state.Timestamp = state.Timestamp.Add(interval)
		state.ResidualEnergy += -truth.ParasiticLoadKW*hours +
			truth.ChargingEfficiency*importedKWh -
			exportedKWh/truth.DischargingEfficiency
		state.TotalImport += importedKWh
		state.TotalExport += exportedKWh
		states = append(states, state)
	}

	for i := 0; i < cycles; i++ {
		step(importKW*hours, 0) // charging
		step(0, 0)              // idling
		step(0, exportKW*hours) // discharging
		step(0, 0)              // idling
	}
	return states
}
