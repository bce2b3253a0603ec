package analysis

import (
	"math"
	"sort"

	"battery-params/internal/estimate"
	"battery-params/internal/model"
)

// ModeSummary is a per-mode view of the ledger: how much data backs each
// bucket and how spread out its per-delta efficiency ratios are. The
// percentile spread is the quickest way to spot a bucket whose median
// estimate hides wild individual intervals.
type ModeSummary struct {
	Mode model.WorkingMode `json:"mode"`

	Count int     `json:"count"`
	Hours float64 `json:"hours"`

	Charge   float64 `json:"charge_kwh"`
	Imported float64 `json:"imported_kwh"`
	Exported float64 `json:"exported_kwh"`

	// Efficiency percentiles over per-delta ratios; zero for modes that
	// have none (idling, mixed).
	P05Efficiency    float64 `json:"p05_efficiency,omitempty"`
	MedianEfficiency float64 `json:"median_efficiency,omitempty"`
	P95Efficiency    float64 `json:"p95_efficiency,omitempty"`
}

// Summarize folds a ledger into one summary per working mode, in stable
// mode order.
func Summarize(ledger []estimate.LedgerRow) []ModeSummary {
	byMode := map[model.WorkingMode]*ModeSummary{}
	ratios := map[model.WorkingMode][]float64{}
	for _, mode := range model.Modes() {
		byMode[mode] = &ModeSummary{Mode: mode}
	}

	for _, row := range ledger {
		s := byMode[row.Mode]
		s.Count++
		s.Hours += row.Hours
		s.Charge += row.Charge
		s.Imported += row.Imported
		s.Exported += row.Exported
		if row.Efficiency != 0 {
			ratios[row.Mode] = append(ratios[row.Mode], row.Efficiency)
		}
	}

	out := make([]ModeSummary, 0, len(byMode))
	for _, mode := range model.Modes() {
		s := byMode[mode]
		if vals := ratios[mode]; len(vals) > 0 {
			sort.Float64s(vals)
			s.P05Efficiency = percentileSorted(vals, 0.05)
			s.MedianEfficiency = percentileSorted(vals, 0.50)
			s.P95Efficiency = percentileSorted(vals, 0.95)
		}
		out = append(out, *s)
	}
	return out
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
