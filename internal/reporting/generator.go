// Package reporting renders price history summaries as Markdown and CSV.
package reporting

import (
	"time"

	"orderbook-pricechart/internal/domain"
	"orderbook-pricechart/internal/stats"
)

// Generator produces summary reports from raw observations.
type Generator struct {
	now func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator() *Generator {
	return &Generator{
		now: func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate builds a Report for the given observations.
func (g *Generator) Generate(points []*domain.PricePoint, source, chartPath string) *Report {
	return &Report{
		GeneratedAt: g.now(),
		Source:      source,
		ChartPath:   chartPath,
		Summary:     *stats.Compute(points),
	}
}
