package analysis

import (
	"battery-params/internal/estimate"
	"battery-params/internal/model"
)

// StrategyOutcome is the result of one estimator strategy over the same
// state window: either a report or the failure reason.
type StrategyOutcome struct {
	Strategy string           `json:"strategy"`
	Report   *estimate.Report `json:"report,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// Compare runs every estimator strategy over the same states so callers
// can cross-check or fall back. A strategy failing (e.g. an empty bucket
// for the ratio estimators) does not prevent the others from reporting.
func Compare(states []model.State, policy estimate.Policy) []StrategyOutcome {
	outcomes := make([]StrategyOutcome, 0, len(estimate.StrategyNames()))
	for _, est := range estimate.AllEstimators() {
		engine := estimate.New(policy, est)
		report, err := engine.Run(states)
		outcome := StrategyOutcome{Strategy: est.Name()}
		if err != nil {
			outcome.Error = err.Error()
		} else {
			outcome.Report = report
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}
