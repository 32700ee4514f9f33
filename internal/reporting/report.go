package reporting

import (
	"time"

	"orderbook-pricechart/internal/stats"
)

// Report is the summary emitted next to the chart.
type Report struct {
	// Metadata
	GeneratedAt time.Time
	Source      string // CSV path or "<store>:<run-id>"
	ChartPath   string

	Summary stats.Summary
}
