package models

import (
	"battery-params/internal/analysis"
	"battery-params/internal/estimate"
	"battery-params/internal/model"
)

// EstimateResponse represents the response from an estimation run.
type EstimateResponse struct {
	Status      string                 `json:"status"`
	Strategy    string                 `json:"strategy"`
	Parameters  model.Parameters       `json:"parameters"`
	RoundTrip   float64                `json:"round_trip_efficiency"`
	Diagnostics estimate.Diagnostics   `json:"diagnostics"`
	Summaries   []analysis.ModeSummary `json:"mode_summaries"`
	Ledger      []estimate.LedgerRow   `json:"ledger,omitempty"`
}

// CompareResponse represents the response from a strategy comparison.
type CompareResponse struct {
	Outcomes []analysis.StrategyOutcome `json:"outcomes"`
}

// StrategyInfo represents information about an estimator strategy.
type StrategyInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
