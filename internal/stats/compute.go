// Package stats derives summary statistics from price history for the
// summary report emitted next to the chart.
package stats

import (
	"math"
	"sort"

	"orderbook-pricechart/internal/domain"
)

// Summary aggregates one recorded price history run. Monetary values are in
// dollars, durations in milliseconds.
type Summary struct {
	Observations int
	TradeCount   int
	TimeSpanMs   float64

	SpreadMean   float64
	SpreadMedian float64
	SpreadMin    float64
	SpreadMax    float64

	MidMin float64
	MidMax float64

	VWAP           float64 // quantity-weighted trade price; 0 if no trades
	TotalTradedQty float64
	LastTradePrice float64 // 0 if no trades
}

// Compute builds a Summary from raw observations.
// Returns a zero-valued Summary for empty input.
func Compute(points []*domain.PricePoint) *Summary {
	n := len(points)
	if n == 0 {
		return &Summary{}
	}

	s := &Summary{
		Observations: n,
		TimeSpanMs:   domain.Millis(points[n-1].TimestampNs - points[0].TimestampNs),
	}

	spreads := make([]float64, n)
	s.MidMin = math.Inf(1)
	s.MidMax = math.Inf(-1)

	var notional float64
	for i, p := range points {
		spreads[i] = domain.Dollars(p.Spread)

		mid := domain.Dollars(p.Mid)
		if mid < s.MidMin {
			s.MidMin = mid
		}
		if mid > s.MidMax {
			s.MidMax = mid
		}

		if p.HasTrade() {
			s.TradeCount++
			price := domain.Dollars(p.LastPrice)
			notional += price * p.LastQty
			s.TotalTradedQty += p.LastQty
			s.LastTradePrice = price
		}
	}

	s.SpreadMean = mean(spreads)
	s.SpreadMin, s.SpreadMax = spreads[0], spreads[0]
	for _, v := range spreads {
		if v < s.SpreadMin {
			s.SpreadMin = v
		}
		if v > s.SpreadMax {
			s.SpreadMax = v
		}
	}

	sorted := make([]float64, n)
	copy(sorted, spreads)
	sort.Float64s(sorted)
	s.SpreadMedian = percentile(sorted, 0.50)

	if s.TotalTradedQty > 0 {
		s.VWAP = notional / s.TotalTradedQty
	}

	return s
}

// mean computes the arithmetic mean of values.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// percentile computes the p-th percentile (0..1) of pre-sorted values using
// linear interpolation between closest ranks.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}

	rank := p * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
