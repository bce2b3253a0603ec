package estimate

import (
	"fmt"

	"battery-params/internal/model"
)

// Estimator is one strategy for turning classified deltas into battery
// parameters. Implementations are stateless pure functions over their
// input: running one twice on the same input yields identical output.
//
// deltas and modes are parallel slices as produced by a Differencer and
// ClassifyAll.
type Estimator interface {
	Name() string
	Estimate(deltas []model.Delta, modes []model.WorkingMode) (model.Parameters, error)
}

// Strategy names accepted by NewEstimator.
const (
	StrategyRatio      = "ratio"
	StrategyMedian     = "median"
	StrategyRegression = "regression"
)

// StrategyNames lists the supported strategies in a stable order.
func StrategyNames() []string {
	return []string{StrategyRatio, StrategyMedian, StrategyRegression}
}

func NewEstimator(name string) (Estimator, error) {
	switch name {
	case StrategyRatio:
		return &RatioEstimator{}, nil
	case StrategyMedian:
		return &MedianEstimator{}, nil
	case StrategyRegression:
		return &RegressionEstimator{}, nil
	default:
		return nil, fmt.Errorf("unsupported strategy: %q", name)
	}
}

// AllEstimators returns one instance of every strategy, in StrategyNames
// order.
func AllEstimators() []Estimator {
	return []Estimator{
		&RatioEstimator{},
		&MedianEstimator{},
		&RegressionEstimator{},
	}
}

// parasiticLoadKW derives the continuous loss from the cumulative idling
// bucket: with no flows, whatever charge went missing while idling is the
// parasitic drain.
func parasiticLoadKW(idle Bucket) (float64, error) {
	if idle.Count == 0 {
		return 0, &InsufficientDataError{Mode: model.ModeIdling}
	}
	hours := idle.Sum.Hours()
	if hours <= 0 {
		return 0, &DegenerateRatioError{Mode: model.ModeIdling}
	}
	return (idle.Sum.Exported - idle.Sum.Imported - idle.Sum.Charge) / hours, nil
}
