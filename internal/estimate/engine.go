package estimate

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"battery-params/internal/model"
)

// Diagnostics are provenance counts for one estimation run.
type Diagnostics struct {
	TotalStates    int              `json:"total_states"`
	TotalDeltas    int              `json:"total_deltas"`
	SkippedPairs   int              `json:"skipped_pairs"`
	SamplesPerMode model.ModeCounts `json:"samples_per_mode"`
}

// Report is the terminal output of the pipeline: the estimated parameters
// plus provenance and the per-delta ledger.
type Report struct {
	Strategy    string           `json:"strategy"`
	Parameters  model.Parameters `json:"parameters"`
	RoundTrip   float64          `json:"round_trip_efficiency"`
	Diagnostics Diagnostics      `json:"diagnostics"`
	Ledger      []LedgerRow      `json:"ledger,omitempty"`
}

// Engine wires the differencer, classifier and one estimator strategy into
// a single-pass batch pipeline over an ordered state sequence.
type Engine struct {
	Policy    Policy
	Estimator Estimator

	Logger *logrus.Logger
}

func New(policy Policy, estimator Estimator) *Engine {
	return &Engine{Policy: policy, Estimator: estimator}
}

// Run estimates battery parameters over states. Estimation failures come
// back as errors with the reason; invalid adjacent pairs are never fatal
// and only show up in the diagnostics.
func (e *Engine) Run(states []model.State) (*Report, error) {
	if e.Estimator == nil {
		return nil, fmt.Errorf("estimator is nil")
	}
	if len(states) < 2 {
		return nil, fmt.Errorf("need at least 2 states, got %d", len(states))
	}

	differ := Differencer{Policy: e.Policy}
	deltas := differ.Deltas(states)
	modes := ClassifyAll(deltas)

	diag := Diagnostics{
		TotalStates:  len(states),
		TotalDeltas:  len(deltas),
		SkippedPairs: differ.Skipped,
	}
	for _, mode := range modes {
		diag.SamplesPerMode.Inc(mode)
	}

	if e.Logger != nil {
		e.Logger.WithFields(logrus.Fields{
			"strategy":      e.Estimator.Name(),
			"states":        diag.TotalStates,
			"deltas":        diag.TotalDeltas,
			"skipped_pairs": diag.SkippedPairs,
		}).Info("estimating battery parameters")
	}

	params, err := e.Estimator.Estimate(deltas, modes)
	if err != nil {
		return nil, fmt.Errorf("strategy %s: %w", e.Estimator.Name(), err)
	}

	if e.Logger != nil {
		e.Logger.WithFields(logrus.Fields{
			"parasitic_load_kw": params.ParasiticLoadKW,
			"charging":          params.ChargingEfficiency,
			"discharging":       params.DischargingEfficiency,
			"round_trip":        params.RoundTrip(),
		}).Info("estimation complete")
	}

	return &Report{
		Strategy:    e.Estimator.Name(),
		Parameters:  params,
		RoundTrip:   params.RoundTrip(),
		Diagnostics: diag,
		Ledger:      BuildLedger(differ.Spans, deltas, modes, params.ParasiticLoadKW),
	}, nil
}
