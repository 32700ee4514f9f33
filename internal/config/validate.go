package config

import (
	"errors"
	"fmt"
)

// Validate checks the configuration for values the tool cannot run with.
func (c *Config) Validate() error {
	if c.Chart.Input == "" {
		return errors.New("chart.input must not be empty")
	}
	if c.Chart.Output == "" {
		return errors.New("chart.output must not be empty")
	}
	if c.Chart.DPI < 0 {
		return fmt.Errorf("chart.dpi must be positive, got %d", c.Chart.DPI)
	}
	if c.Chart.WidthInches < 0 || c.Chart.HeightInches < 0 {
		return errors.New("chart dimensions must be positive")
	}
	if c.Storage.RunID != "" && c.Storage.PostgresDSN == "" && c.Storage.ClickHouseDSN == "" {
		return errors.New("storage.run_id set but no DSN configured")
	}
	return nil
}
