package estimate

import (
	"time"

	"battery-params/internal/model"
)

// LedgerRow is one delta of per-interval output. This is the primary
// artifact for "what went into the estimate".
type LedgerRow struct {
	Index int `json:"index"`

	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	Hours    float64 `json:"hours"`
	Charge   float64 `json:"charge_kwh"`
	Imported float64 `json:"imported_kwh"`
	Exported float64 `json:"exported_kwh"`

	Mode model.WorkingMode `json:"mode"`

	// Efficiency is the parasitic-corrected per-delta efficiency ratio for
	// charging and discharging deltas, 0 otherwise.
	Efficiency float64 `json:"efficiency,omitempty"`
}

// BuildLedger assembles per-delta rows from parallel spans, deltas and
// modes. parasiticKW feeds the per-delta efficiency column.
func BuildLedger(spans []Span, deltas []model.Delta, modes []model.WorkingMode, parasiticKW float64) []LedgerRow {
	rows := make([]LedgerRow, 0, len(deltas))
	for i, d := range deltas {
		row := LedgerRow{
			Index:    i,
			Hours:    d.Hours(),
			Charge:   d.Charge,
			Imported: d.Imported,
			Exported: d.Exported,
			Mode:     modes[i],
		}
		if i < len(spans) {
			row.Start = spans[i].Start
			row.End = spans[i].End
		}
		if eff, ok := perDeltaEfficiency(d, modes[i], parasiticKW); ok {
			row.Efficiency = eff
		}
		rows = append(rows, row)
	}
	return rows
}
