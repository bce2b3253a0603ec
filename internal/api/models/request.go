package models

import "battery-params/internal/model"

// EstimateRequest represents the request body for running an estimation.
// Exactly one data source must be provided: an inline state sequence or a
// Home Assistant history window.
type EstimateRequest struct {
	DataSource DataSourceConfig `json:"data_source" binding:"required"`
	Strategy   string           `json:"strategy,omitempty"` // default: "median"
	Policy     string           `json:"policy,omitempty"`   // default: "drop"
	Options    EstimateOptions  `json:"options,omitempty"`
}

// DataSourceConfig defines where the state history comes from.
type DataSourceConfig struct {
	Type string `json:"type" binding:"required"` // "inline" or "home_assistant"

	// Inline states, ordered by timestamp. Required for type "inline".
	States []model.State `json:"states,omitempty"`

	// Home Assistant parameters. Required for type "home_assistant".
	URL      string `json:"url,omitempty"`
	Token    string `json:"token,omitempty"`
	EntityID string `json:"entity_id,omitempty"`
	Start    string `json:"start,omitempty"` // RFC3339
	End      string `json:"end,omitempty"`   // RFC3339
}

// EstimateOptions contains optional estimation parameters.
type EstimateOptions struct {
	IncludeLedger bool `json:"include_ledger,omitempty"` // default: false
}

// CompareRequest runs all estimator strategies over one data source.
type CompareRequest struct {
	DataSource DataSourceConfig `json:"data_source" binding:"required"`
	Policy     string           `json:"policy,omitempty"`
}
