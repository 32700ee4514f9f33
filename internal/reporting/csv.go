package reporting

import (
	"fmt"
	"strings"
)

// RenderCSV renders the summary as a single-row CSV string.
func RenderCSV(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("observations,trade_count,time_span_ms,")
	sb.WriteString("spread_mean,spread_median,spread_min,spread_max,")
	sb.WriteString("mid_min,mid_max,vwap,total_traded_qty,last_trade_price\n")

	s := r.Summary
	sb.WriteString(fmt.Sprintf("%d,%d,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f\n",
		s.Observations,
		s.TradeCount,
		s.TimeSpanMs,
		s.SpreadMean,
		s.SpreadMedian,
		s.SpreadMin,
		s.SpreadMax,
		s.MidMin,
		s.MidMax,
		s.VWAP,
		s.TotalTradedQty,
		s.LastTradePrice,
	))

	return sb.String()
}
