package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"battery-params/internal/estimate"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
home_assistant:
  url: http://hass.local:8123
  token: secret-token
  entity_id: sensor.battery
  window_days: 90
estimator:
  strategy: regression
  policy: correct
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://hass.local:8123", cfg.HomeAssistant.URL)
	assert.Equal(t, "sensor.battery", cfg.HomeAssistant.EntityID)
	assert.Equal(t, 90, cfg.HomeAssistant.WindowDays)
	assert.Equal(t, estimate.StrategyRegression, cfg.Estimator.Strategy)
	assert.Equal(t, string(estimate.PolicyCorrect), cfg.Estimator.Policy)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
home_assistant:
  token: secret-token
  entity_id: sensor.battery
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8123", cfg.HomeAssistant.URL)
	assert.Equal(t, 365, cfg.HomeAssistant.WindowDays)
	assert.Equal(t, estimate.StrategyMedian, cfg.Estimator.Strategy)
	assert.Equal(t, string(estimate.PolicyDrop), cfg.Estimator.Policy)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"missing entity", "home_assistant:\n  token: tok\n"},
		{"missing token", "home_assistant:\n  entity_id: sensor.battery\n"},
		{"bad strategy", "home_assistant:\n  token: tok\n  entity_id: sensor.battery\nestimator:\n  strategy: kalman\n"},
		{"bad policy", "home_assistant:\n  token: tok\n  entity_id: sensor.battery\nestimator:\n  policy: merge\n"},
		{"negative window", "home_assistant:\n  token: tok\n  entity_id: sensor.battery\n  window_days: -7\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.contents))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
