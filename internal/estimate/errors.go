package estimate

import (
	"errors"
	"fmt"

	"battery-params/internal/model"
)

// InsufficientDataError reports that a classification bucket required by an
// estimator has no usable deltas.
type InsufficientDataError struct {
	Mode model.WorkingMode
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for mode %s", e.Mode)
}

// DegenerateRatioError reports a denominator within the noise floor, for
// which a ratio estimate would be meaningless.
type DegenerateRatioError struct {
	Mode model.WorkingMode
}

func (e *DegenerateRatioError) Error() string {
	return fmt.Sprintf("degenerate %s denominator (within noise floor)", e.Mode)
}

// ErrUnderdetermined reports a rank-deficient regression design matrix,
// e.g. when every sample is purely charging.
var ErrUnderdetermined = errors.New("regression underdetermined")
