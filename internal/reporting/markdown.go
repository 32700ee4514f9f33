package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders the report as a Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Price History Summary\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Source: %s\n\n", r.Source))
	if r.ChartPath != "" {
		sb.WriteString(fmt.Sprintf("Chart: %s\n\n", r.ChartPath))
	}

	s := r.Summary

	// Observations
	sb.WriteString("## Observations\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Snapshots | %d |\n", s.Observations))
	sb.WriteString(fmt.Sprintf("| Trade Prints | %d |\n", s.TradeCount))
	sb.WriteString(fmt.Sprintf("| Time Span (ms) | %.3f |\n", s.TimeSpanMs))
	sb.WriteString("\n")

	// Spread
	sb.WriteString("## Bid-Ask Spread ($)\n\n")
	sb.WriteString("| Mean | Median | Min | Max |\n")
	sb.WriteString("|------|--------|-----|-----|\n")
	sb.WriteString(fmt.Sprintf("| %.4f | %.4f | %.4f | %.4f |\n",
		s.SpreadMean, s.SpreadMedian, s.SpreadMin, s.SpreadMax))
	sb.WriteString("\n")

	// Prices
	sb.WriteString("## Prices ($)\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Mid Min | %.4f |\n", s.MidMin))
	sb.WriteString(fmt.Sprintf("| Mid Max | %.4f |\n", s.MidMax))
	sb.WriteString("\n")

	// Trades
	sb.WriteString("## Trades\n\n")
	if s.TradeCount > 0 {
		sb.WriteString("| Metric | Value |\n")
		sb.WriteString("|--------|-------|\n")
		sb.WriteString(fmt.Sprintf("| VWAP ($) | %.4f |\n", s.VWAP))
		sb.WriteString(fmt.Sprintf("| Total Quantity | %.4f |\n", s.TotalTradedQty))
		sb.WriteString(fmt.Sprintf("| Last Trade Price ($) | %.4f |\n", s.LastTradePrice))
	} else {
		sb.WriteString("No trade prints recorded.\n")
	}
	sb.WriteString("\n")

	return sb.String()
}
