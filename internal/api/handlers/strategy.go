package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"battery-params/internal/api/models"
	"battery-params/internal/estimate"
)

// StrategyHandler handles strategy-related requests.
type StrategyHandler struct{}

func NewStrategyHandler() *StrategyHandler {
	return &StrategyHandler{}
}

// ListStrategies handles GET /api/v1/strategies.
func (h *StrategyHandler) ListStrategies(c *gin.Context) {
	descriptions := map[string]string{
		estimate.StrategyRatio:      "Cumulative ratio per mode bucket. Closed-form and cheap, but one long anomalous interval can dominate a bucket.",
		estimate.StrategyMedian:     "Median of per-delta efficiency ratios. Robust to outlier intervals.",
		estimate.StrategyRegression: "Duration-weighted linear regression over all deltas. Uses every sample jointly; sensitive to collinearity.",
	}

	strategies := make([]models.StrategyInfo, 0, len(estimate.StrategyNames()))
	for _, name := range estimate.StrategyNames() {
		strategies = append(strategies, models.StrategyInfo{
			Name:        name,
			Description: descriptions[name],
		})
	}
	c.JSON(http.StatusOK, gin.H{"strategies": strategies})
}
