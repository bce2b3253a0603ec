package estimate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"battery-params/internal/model"
)

func TestRegressionRecoversTruth(t *testing.T) {
	truth := groundTruth()
	deltas, modes := cleanDeltas(truth, 10)

	params, err := (&RegressionEstimator{}).Estimate(deltas, modes)
	require.NoError(t, err)
	requireRecovered(t, truth, params, 1e-6)
}

// The regression uses every delta, so mixed intervals that the ratio
// strategies must discard still inform the fit.
func TestRegressionUsesMixedDeltas(t *testing.T) {
	truth := groundTruth()
	deltas, modes := cleanDeltas(truth, 5)

	mixed := model.Delta{
		Duration: time.Hour,
		Imported: 0.6,
		Exported: 0.4,
		Charge:   truth.ChargingEfficiency*0.6 - 0.4/truth.DischargingEfficiency - truth.ParasiticLoadKW,
	}
	deltas = append(deltas, mixed)
	modes = append(modes, Classify(mixed))
	require.Equal(t, model.ModeMixed, modes[len(modes)-1])

	params, err := (&RegressionEstimator{}).Estimate(deltas, modes)
	require.NoError(t, err)
	requireRecovered(t, truth, params, 1e-6)
}

func TestRegressionUnderdeterminedWithoutExports(t *testing.T) {
	truth := groundTruth()
	var deltas []model.Delta
	for i := 0; i < 10; i++ {
		deltas = append(deltas,
			model.Delta{Duration: time.Hour, Imported: 1.2, Charge: truth.ChargingEfficiency*1.2 - truth.ParasiticLoadKW},
			model.Delta{Duration: time.Hour, Charge: -truth.ParasiticLoadKW},
		)
	}

	_, err := (&RegressionEstimator{}).Estimate(deltas, ClassifyAll(deltas))
	assert.ErrorIs(t, err, ErrUnderdetermined)
}

func TestRegressionUnderdeterminedWithTooFewSamples(t *testing.T) {
	deltas := []model.Delta{
		{Duration: time.Hour, Imported: 1.2, Charge: 1.0},
		{Duration: time.Hour, Exported: 0.8, Charge: -0.9},
	}
	_, err := (&RegressionEstimator{}).Estimate(deltas, ClassifyAll(deltas))
	assert.ErrorIs(t, err, ErrUnderdetermined)
}

func TestRegressionIgnoresZeroDurationRows(t *testing.T) {
	truth := groundTruth()
	deltas, modes := cleanDeltas(truth, 10)
	deltas = append(deltas, model.Delta{Charge: 99})
	modes = append(modes, model.ModeCharging)

	params, err := (&RegressionEstimator{}).Estimate(deltas, modes)
	require.NoError(t, err)
	requireRecovered(t, truth, params, 1e-6)
}
