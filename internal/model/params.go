package model

import (
	"errors"
	"math"
)

// Parameters are the estimated physical performance parameters of the
// battery. Units:
// - ParasiticLoadKW: kW, power continuously lost regardless of activity
// - Efficiencies: fractions in (0, 1]
//
// Round-trip efficiency is always derived via RoundTrip and never stored.
type Parameters struct {
	ParasiticLoadKW       float64 `json:"parasitic_load_kw"`
	ChargingEfficiency    float64 `json:"charging_efficiency"`
	DischargingEfficiency float64 `json:"discharging_efficiency"`
}

// RoundTrip returns the overall energy retained through one full
// charge/discharge cycle.
func (p Parameters) RoundTrip() float64 {
	return p.ChargingEfficiency * p.DischargingEfficiency
}

// Validate rejects parameters that are not physically plausible. Estimators
// run it on their output so that a degenerate fit surfaces as an error
// instead of a garbage report.
func (p Parameters) Validate() error {
	if math.IsNaN(p.ParasiticLoadKW) || math.IsInf(p.ParasiticLoadKW, 0) {
		return errors.New("parasitic load is not finite")
	}
	if p.ParasiticLoadKW < 0 {
		return errors.New("parasitic load must be >= 0")
	}
	if math.IsNaN(p.ChargingEfficiency) || math.IsInf(p.ChargingEfficiency, 0) {
		return errors.New("charging efficiency is not finite")
	}
	if p.ChargingEfficiency <= 0 || p.ChargingEfficiency > 1 {
		return errors.New("charging efficiency must be in (0, 1]")
	}
	if math.IsNaN(p.DischargingEfficiency) || math.IsInf(p.DischargingEfficiency, 0) {
		return errors.New("discharging efficiency is not finite")
	}
	if p.DischargingEfficiency <= 0 || p.DischargingEfficiency > 1 {
		return errors.New("discharging efficiency must be in (0, 1]")
	}
	return nil
}
