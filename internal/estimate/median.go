package estimate

import (
	"math"
	"sort"

	"battery-params/internal/model"
)

// MedianEstimator computes a per-delta efficiency ratio for every charging
// and discharging delta and takes the median of each set. Robust to outlier
// intervals, unlike the single aggregate ratio of RatioEstimator.
//
// The parasitic load itself is still the cumulative idling ratio: idling
// deltas carry no flow, so there is no per-delta ratio to be robust about.
type MedianEstimator struct{}

func (e *MedianEstimator) Name() string { return StrategyMedian }

func (e *MedianEstimator) Estimate(deltas []model.Delta, modes []model.WorkingMode) (model.Parameters, error) {
	buckets := Aggregate(deltas, modes)

	parasitic, err := parasiticLoadKW(buckets[model.ModeIdling])
	if err != nil {
		return model.Parameters{}, err
	}

	var chargingSamples, dischargingSamples []float64
	for i, d := range deltas {
		ratio, ok := perDeltaEfficiency(d, modes[i], parasitic)
		if !ok {
			continue
		}
		switch modes[i] {
		case model.ModeCharging:
			chargingSamples = append(chargingSamples, ratio)
		case model.ModeDischarging:
			dischargingSamples = append(dischargingSamples, ratio)
		}
	}

	if len(chargingSamples) == 0 {
		return model.Parameters{}, &InsufficientDataError{Mode: model.ModeCharging}
	}
	if len(dischargingSamples) == 0 {
		return model.Parameters{}, &InsufficientDataError{Mode: model.ModeDischarging}
	}

	params := model.Parameters{
		ParasiticLoadKW:       parasitic,
		ChargingEfficiency:    median(chargingSamples),
		DischargingEfficiency: median(dischargingSamples),
	}
	if err := params.Validate(); err != nil {
		return model.Parameters{}, err
	}
	return params, nil
}

// perDeltaEfficiency corrects one delta's charge for the parasitic drain
// over its span and forms the mode's efficiency ratio. Deltas whose
// denominator falls within the noise floor contribute nothing.
func perDeltaEfficiency(d model.Delta, mode model.WorkingMode, parasiticKW float64) (float64, bool) {
	corrected := d.Charge + parasiticKW*d.Hours()
	net := d.Imported - d.Exported
	switch mode {
	case model.ModeCharging:
		if math.Abs(net) < Epsilon {
			return 0, false
		}
		return corrected / net, true
	case model.ModeDischarging:
		if math.Abs(corrected) < Epsilon {
			return 0, false
		}
		return net / corrected, true
	default:
		return 0, false
	}
}

// median returns the middle value, averaging the central pair for even
// sample counts. The input slice is sorted in place.
func median(samples []float64) float64 {
	sort.Float64s(samples)
	mid := len(samples) / 2
	if len(samples)%2 == 1 {
		return samples[mid]
	}
	return (samples[mid-1] + samples[mid]) / 2
}
