package data

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"battery-params/internal/model"
)

// Entity attribute names carrying the meter readings.
const (
	attrResidualEnergy = "custom_battery_residual_energy"
	attrTotalImport    = "custom_battery_energy_import"
	attrTotalExport    = "custom_battery_energy_export"
)

// HomeAssistantClient fetches battery state history from the Home
// Assistant REST API.
type HomeAssistantClient struct {
	BaseURL string
	Token   string
	Client  *http.Client
	Logger  *logrus.Logger
}

// NewHomeAssistantClient creates a client. If baseURL is empty, defaults
// to "http://localhost:8123".
func NewHomeAssistantClient(baseURL, token string) *HomeAssistantClient {
	if baseURL == "" {
		baseURL = "http://localhost:8123"
	}
	return &HomeAssistantClient{
		BaseURL: baseURL,
		Token:   token,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
		Logger: logrus.StandardLogger(),
	}
}

// HistoryParams defines the history window to fetch.
type HistoryParams struct {
	EntityID  string
	StartTime time.Time
	EndTime   time.Time
}

// HomeAssistantError represents an error response from the Home Assistant
// API.
type HomeAssistantError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *HomeAssistantError) Error() string {
	return e.Message
}

// haState mirrors one record of the history API response.
type haState struct {
	LastChanged time.Time                  `json:"last_changed"`
	Attributes  map[string]json.RawMessage `json:"attributes"`
}

// FetchStates retrieves the entity's state history and converts it into
// ordered meter readings. Records without a numeric residual-energy
// attribute are excluded here: the pipeline assumes every input state is
// complete.
func (c *HomeAssistantClient) FetchStates(params HistoryParams) ([]model.State, error) {
	if c.Token == "" {
		return nil, &HomeAssistantError{Code: "MISSING_TOKEN", Message: "authorization token is required"}
	}
	if params.EntityID == "" {
		return nil, fmt.Errorf("entity_id is required")
	}
	if params.StartTime.IsZero() || params.EndTime.IsZero() {
		return nil, fmt.Errorf("start_time and end_time are required")
	}
	if params.StartTime.After(params.EndTime) {
		return nil, fmt.Errorf("start_time must be before end_time")
	}

	if cache := GetCache(); cache != nil {
		key := GenerateCacheKey(params)
		if states, found := cache.Get(key); found {
			c.Logger.WithFields(logrus.Fields{
				"entity_id": params.EntityID,
				"states":    len(states),
			}).Info("history cache hit")
			return states, nil
		}
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	u.Path = "/api/history/period/" + params.StartTime.UTC().Format(time.RFC3339)
	q := u.Query()
	q.Set("filter_entity_id", params.EntityID)
	q.Set("end_time", params.EndTime.UTC().Format(time.RFC3339))
	u.RawQuery = q.Encode()

	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Accept", "application/json")

	c.Logger.WithFields(logrus.Fields{
		"entity_id": params.EntityID,
		"start":     params.StartTime.Format(time.RFC3339),
		"end":       params.EndTime.Format(time.RFC3339),
	}).Info("fetching state history")

	start := time.Now()
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	c.Logger.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("history response")

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, &HomeAssistantError{
			StatusCode: resp.StatusCode,
			Code:       "UNAUTHORIZED",
			Message:    "unauthorized: invalid or expired token",
		}
	case http.StatusTooManyRequests:
		return nil, &HomeAssistantError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("rate limit exceeded, retry after: %s", resp.Header.Get("Retry-After")),
		}
	default:
		return nil, &HomeAssistantError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("API returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	// The history endpoint groups records per entity; with a single entity
	// filter the outer array has at most one element.
	var payload [][]haState
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	var states []model.State
	for _, group := range payload {
		for _, record := range group {
			state, ok := record.toState()
			if !ok {
				continue
			}
			states = append(states, state)
		}
	}
	sort.Slice(states, func(i, j int) bool {
		return states[i].Timestamp.Before(states[j].Timestamp)
	})

	c.Logger.WithFields(logrus.Fields{
		"entity_id": params.EntityID,
		"states":    len(states),
	}).Info("state history fetched")

	if cache := GetCache(); cache != nil {
		cache.Set(GenerateCacheKey(params), states)
	}
	return states, nil
}

func (s haState) toState() (model.State, bool) {
	residual, ok := floatAttr(s.Attributes, attrResidualEnergy)
	if !ok {
		return model.State{}, false
	}
	imported, ok := floatAttr(s.Attributes, attrTotalImport)
	if !ok {
		return model.State{}, false
	}
	exported, ok := floatAttr(s.Attributes, attrTotalExport)
	if !ok {
		return model.State{}, false
	}
	return model.State{
		Timestamp:      s.LastChanged,
		ResidualEnergy: residual,
		TotalImport:    imported,
		TotalExport:    exported,
	}, true
}

func floatAttr(attrs map[string]json.RawMessage, name string) (float64, bool) {
	raw, ok := attrs[name]
	if !ok {
		return 0, false
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	return v, true
}
