package estimate

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"battery-params/internal/model"
)

// regressionRcond is the reciprocal condition number below which the
// design matrix is treated as rank-deficient. Near-collinear import and
// export columns land here, not just structurally missing modes.
const regressionRcond = 1e-12

// RegressionEstimator fits charge rate against import and export rates
// over all deltas, weighting each sample by its duration: longer intervals
// represent more accumulated physical behavior. The model is
//
//	charge/h ≈ β₀ + β₁·imported/h + β₂·exported/h
//
// so the intercept is a power: parasitic load = −β₀ kW, charging
// efficiency = β₁, discharging efficiency = −1/β₂. Uses every delta jointly
// (mixed ones included) and estimates all three parameters from one fit,
// but offers no outlier robustness.
type RegressionEstimator struct{}

func (e *RegressionEstimator) Name() string { return StrategyRegression }

func (e *RegressionEstimator) Estimate(deltas []model.Delta, modes []model.WorkingMode) (model.Parameters, error) {
	_ = modes // the fit uses all deltas, classified or not

	rows := make([]model.Delta, 0, len(deltas))
	for _, d := range deltas {
		if d.Hours() > 0 {
			rows = append(rows, d)
		}
	}
	if len(rows) < 3 {
		return model.Parameters{}, ErrUnderdetermined
	}

	// Weighted least squares via row scaling: each row of the design matrix
	// and target is multiplied by sqrt of its weight.
	design := mat.NewDense(len(rows), 3, nil)
	target := mat.NewVecDense(len(rows), nil)
	for i, d := range rows {
		hours := d.Hours()
		scale := math.Sqrt(hours)
		design.SetRow(i, []float64{
			scale,
			scale * d.Imported / hours,
			scale * d.Exported / hours,
		})
		target.SetVec(i, scale*d.Charge/hours)
	}

	var svd mat.SVD
	if !svd.Factorize(design, mat.SVDThin) {
		return model.Parameters{}, ErrUnderdetermined
	}
	rank := svd.Rank(regressionRcond)
	if rank < 3 {
		return model.Parameters{}, ErrUnderdetermined
	}

	var coef mat.Dense
	svd.SolveTo(&coef, target, rank)

	beta2 := coef.At(2, 0)
	if math.Abs(beta2) < Epsilon {
		return model.Parameters{}, &DegenerateRatioError{Mode: model.ModeDischarging}
	}

	params := model.Parameters{
		ParasiticLoadKW:       -coef.At(0, 0),
		ChargingEfficiency:    coef.At(1, 0),
		DischargingEfficiency: -1 / beta2,
	}
	if err := params.Validate(); err != nil {
		return model.Parameters{}, err
	}
	return params, nil
}
