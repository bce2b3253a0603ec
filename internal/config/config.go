package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"battery-params/internal/estimate"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	HomeAssistant HomeAssistantConfig `yaml:"home_assistant"`
	Estimator     EstimatorConfig     `yaml:"estimator"`
}

type HomeAssistantConfig struct {
	URL      string `yaml:"url"`
	Token    string `yaml:"token"`
	EntityID string `yaml:"entity_id"`

	// WindowDays is how far back the history fetch reaches. Defaults to a
	// full year so seasonal behavior averages out.
	WindowDays int `yaml:"window_days"`
}

type EstimatorConfig struct {
	// Strategy is one of "ratio", "median" or "regression".
	Strategy string `yaml:"strategy"`

	// Policy is one of "drop" or "correct" (see the differencer docs).
	Policy string `yaml:"policy"`
}

func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) ApplyDefaults() {
	if c.HomeAssistant.URL == "" {
		c.HomeAssistant.URL = "http://localhost:8123"
	}
	if c.HomeAssistant.WindowDays == 0 {
		c.HomeAssistant.WindowDays = 365
	}
	if c.Estimator.Strategy == "" {
		c.Estimator.Strategy = estimate.StrategyMedian
	}
	if c.Estimator.Policy == "" {
		c.Estimator.Policy = string(estimate.PolicyDrop)
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.HomeAssistant.EntityID == "" {
		return errors.New("home_assistant.entity_id is required")
	}
	if c.HomeAssistant.Token == "" {
		return errors.New("home_assistant.token is required")
	}
	if c.HomeAssistant.WindowDays < 1 {
		return errors.New("home_assistant.window_days must be >= 1")
	}
	if _, err := estimate.NewEstimator(c.Estimator.Strategy); err != nil {
		return fmt.Errorf("estimator config invalid: %w", err)
	}
	if err := estimate.Policy(c.Estimator.Policy).Validate(); err != nil {
		return fmt.Errorf("estimator config invalid: %w", err)
	}
	return nil
}
