package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"battery-params/internal/analysis"
	"battery-params/internal/api/models"
	"battery-params/internal/data"
	"battery-params/internal/estimate"
	"battery-params/internal/model"
)

// EstimateHandler handles estimation requests.
type EstimateHandler struct {
	Logger *logrus.Logger
}

func NewEstimateHandler(logger *logrus.Logger) *EstimateHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &EstimateHandler{Logger: logger}
}

// RunEstimate handles POST /api/v1/estimate.
func (h *EstimateHandler) RunEstimate(c *gin.Context) {
	var req models.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	strategy := req.Strategy
	if strategy == "" {
		strategy = estimate.StrategyMedian
	}
	estimator, err := estimate.NewEstimator(strategy)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_STRATEGY", err.Error())
		return
	}

	policy, ok := h.resolvePolicy(c, req.Policy)
	if !ok {
		return
	}

	states, ok := h.fetchStates(c, req.DataSource)
	if !ok {
		return
	}

	engine := estimate.New(policy, estimator)
	engine.Logger = h.Logger
	report, err := engine.Run(states)
	if err != nil {
		writeEstimationError(c, err)
		return
	}

	resp := models.EstimateResponse{
		Status:      "completed",
		Strategy:    report.Strategy,
		Parameters:  report.Parameters,
		RoundTrip:   report.RoundTrip,
		Diagnostics: report.Diagnostics,
		Summaries:   analysis.Summarize(report.Ledger),
	}
	if req.Options.IncludeLedger {
		resp.Ledger = report.Ledger
	}
	c.JSON(http.StatusOK, resp)
}

// CompareStrategies handles POST /api/v1/estimate/compare.
func (h *EstimateHandler) CompareStrategies(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	policy, ok := h.resolvePolicy(c, req.Policy)
	if !ok {
		return
	}

	states, ok := h.fetchStates(c, req.DataSource)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, models.CompareResponse{
		Outcomes: analysis.Compare(states, policy),
	})
}

func (h *EstimateHandler) resolvePolicy(c *gin.Context, raw string) (estimate.Policy, bool) {
	if raw == "" {
		return estimate.PolicyDrop, true
	}
	policy := estimate.Policy(raw)
	if err := policy.Validate(); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_POLICY", err.Error())
		return "", false
	}
	return policy, true
}

func (h *EstimateHandler) fetchStates(c *gin.Context, src models.DataSourceConfig) ([]model.State, bool) {
	switch src.Type {
	case "inline":
		if len(src.States) < 2 {
			writeError(c, http.StatusBadRequest, "INVALID_DATA_SOURCE", "inline source needs at least 2 states")
			return nil, false
		}
		return src.States, true

	case "home_assistant":
		params, err := historyParams(src)
		if err != nil {
			writeError(c, http.StatusBadRequest, "INVALID_DATA_SOURCE", err.Error())
			return nil, false
		}
		client := data.NewHomeAssistantClient(src.URL, src.Token)
		client.Logger = h.Logger
		states, err := client.FetchStates(params)
		if err != nil {
			var haErr *data.HomeAssistantError
			if errors.As(err, &haErr) {
				status := http.StatusBadGateway
				switch haErr.StatusCode {
				case http.StatusUnauthorized, http.StatusForbidden:
					status = http.StatusUnauthorized
				case http.StatusTooManyRequests:
					status = http.StatusTooManyRequests
				}
				writeErrorDetails(c, status, haErr.Code, haErr.Message, map[string]interface{}{
					"status_code": haErr.StatusCode,
				})
				return nil, false
			}
			writeError(c, http.StatusBadRequest, "DATA_FETCH_ERROR", err.Error())
			return nil, false
		}
		return states, true

	default:
		writeError(c, http.StatusBadRequest, "INVALID_DATA_SOURCE", fmt.Sprintf("unsupported data source type: %q", src.Type))
		return nil, false
	}
}

func historyParams(src models.DataSourceConfig) (data.HistoryParams, error) {
	start, err := time.Parse(time.RFC3339, src.Start)
	if err != nil {
		return data.HistoryParams{}, fmt.Errorf("invalid start (expected RFC3339): %w", err)
	}
	end, err := time.Parse(time.RFC3339, src.End)
	if err != nil {
		return data.HistoryParams{}, fmt.Errorf("invalid end (expected RFC3339): %w", err)
	}
	return data.HistoryParams{
		EntityID:  src.EntityID,
		StartTime: start,
		EndTime:   end,
	}, nil
}

// writeEstimationError maps pipeline failures to structured error JSON.
// Estimation failures are client-visible conditions of the data, not
// server faults, so they come back as 422.
func writeEstimationError(c *gin.Context, err error) {
	var insufficient *estimate.InsufficientDataError
	var degenerate *estimate.DegenerateRatioError
	switch {
	case errors.As(err, &insufficient):
		writeErrorDetails(c, http.StatusUnprocessableEntity, "INSUFFICIENT_DATA", err.Error(), map[string]interface{}{
			"mode": string(insufficient.Mode),
		})
	case errors.As(err, &degenerate):
		writeError(c, http.StatusUnprocessableEntity, "DEGENERATE_RATIO", err.Error())
	case errors.Is(err, estimate.ErrUnderdetermined):
		writeError(c, http.StatusUnprocessableEntity, "REGRESSION_UNDERDETERMINED", err.Error())
	default:
		writeError(c, http.StatusUnprocessableEntity, "ESTIMATION_FAILED", err.Error())
	}
}

func writeError(c *gin.Context, status int, code, message string) {
	writeErrorDetails(c, status, code, message, nil)
}

func writeErrorDetails(c *gin.Context, status int, code, message string, details map[string]interface{}) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}
