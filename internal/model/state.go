package model

import "time"

// State is a single meter reading from the battery's telemetry history.
// All energies are kWh. TotalImport and TotalExport are lifetime counters
// and are expected to be monotonically non-decreasing; the differencer
// handles readings that violate that.
type State struct {
	Timestamp      time.Time `json:"timestamp"`
	ResidualEnergy float64   `json:"residual_energy"`
	TotalImport    float64   `json:"total_import"`
	TotalExport    float64   `json:"total_export"`
}

// Sub returns the delta from prev to s.
func (s State) Sub(prev State) Delta {
	return Delta{
		Duration: s.Timestamp.Sub(prev.Timestamp),
		Charge:   s.ResidualEnergy - prev.ResidualEnergy,
		Imported: s.TotalImport - prev.TotalImport,
		Exported: s.TotalExport - prev.TotalExport,
	}
}
