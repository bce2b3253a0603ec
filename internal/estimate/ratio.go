package estimate

import (
	"math"

	"battery-params/internal/model"
)

// RatioEstimator derives each parameter from a single cumulative ratio over
// its bucket. Closed-form and cheap, but one long anomalous interval can
// dominate a bucket's ratio.
type RatioEstimator struct{}

func (e *RatioEstimator) Name() string { return StrategyRatio }

func (e *RatioEstimator) Estimate(deltas []model.Delta, modes []model.WorkingMode) (model.Parameters, error) {
	buckets := Aggregate(deltas, modes)

	parasitic, err := parasiticLoadKW(buckets[model.ModeIdling])
	if err != nil {
		return model.Parameters{}, err
	}

	charging, err := cumulativeChargingEfficiency(buckets[model.ModeCharging], parasitic)
	if err != nil {
		return model.Parameters{}, err
	}

	discharging, err := cumulativeDischargingEfficiency(buckets[model.ModeDischarging], parasitic)
	if err != nil {
		return model.Parameters{}, err
	}

	params := model.Parameters{
		ParasiticLoadKW:       parasitic,
		ChargingEfficiency:    charging,
		DischargingEfficiency: discharging,
	}
	if err := params.Validate(); err != nil {
		return model.Parameters{}, err
	}
	return params, nil
}

// cumulativeChargingEfficiency removes the parasitic drain from the
// cumulative charge and relates what remains to the net imported energy.
func cumulativeChargingEfficiency(charging Bucket, parasiticKW float64) (float64, error) {
	if charging.Count == 0 {
		return 0, &InsufficientDataError{Mode: model.ModeCharging}
	}
	net := charging.Sum.Imported - charging.Sum.Exported
	if math.Abs(net) < Epsilon {
		return 0, &DegenerateRatioError{Mode: model.ModeCharging}
	}
	corrected := charging.Sum.Charge + parasiticKW*charging.Sum.Hours()
	return corrected / net, nil
}

// cumulativeDischargingEfficiency is the symmetric ratio: net delivered
// energy over the parasitic-corrected charge spent.
func cumulativeDischargingEfficiency(discharging Bucket, parasiticKW float64) (float64, error) {
	if discharging.Count == 0 {
		return 0, &InsufficientDataError{Mode: model.ModeDischarging}
	}
	corrected := discharging.Sum.Charge + parasiticKW*discharging.Sum.Hours()
	if math.Abs(corrected) < Epsilon {
		return 0, &DegenerateRatioError{Mode: model.ModeDischarging}
	}
	return (discharging.Sum.Imported - discharging.Sum.Exported) / corrected, nil
}
