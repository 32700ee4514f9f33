// Package config loads chart tool configuration from YAML with environment
// variable expansion, defaults, and validation.
package config

// Config is the root configuration for the chart tool.
type Config struct {
	Chart   ChartConfig   `yaml:"chart"`
	Summary SummaryConfig `yaml:"summary"`
	Storage StorageConfig `yaml:"storage"`
}

// ChartConfig holds input/output paths and figure geometry.
type ChartConfig struct {
	Input        string  `yaml:"input"`  // price history CSV path
	Output       string  `yaml:"output"` // PNG path
	DPI          int     `yaml:"dpi"`
	WidthInches  float64 `yaml:"width_inches"`
	HeightInches float64 `yaml:"height_inches"`
}

// SummaryConfig controls the markdown/CSV summary emitted next to the chart.
type SummaryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// StorageConfig holds optional database sources for recorded history.
type StorageConfig struct {
	PostgresDSN   string `yaml:"postgres_dsn"`
	ClickHouseDSN string `yaml:"clickhouse_dsn"`
	RunID         string `yaml:"run_id"`
}

// applyDefaults fills unset fields with the reference values.
func (c *Config) applyDefaults() {
	if c.Chart.Input == "" {
		c.Chart.Input = "price_history.csv"
	}
	if c.Chart.Output == "" {
		c.Chart.Output = "price_chart.png"
	}
	if c.Chart.DPI == 0 {
		c.Chart.DPI = 150
	}
	if c.Chart.WidthInches == 0 {
		c.Chart.WidthInches = 10
	}
	if c.Chart.HeightInches == 0 {
		c.Chart.HeightInches = 8
	}
	if c.Summary.Dir == "" {
		c.Summary.Dir = "."
	}
}
