// Package normalization rescales raw price history into the units the chart
// and reports use: dollars for prices, milliseconds for time.
package normalization

import (
	"errors"

	"orderbook-pricechart/internal/domain"
)

// ErrNoData is returned when there are no observations to normalize.
var ErrNoData = errors.New("no observations to normalize")

// Series holds rescaled, plot-ready columns. All slices except the trade
// sub-series share the same length and ordering as the input.
type Series struct {
	TimeMs    []float64 // timestamp_ns / 1e6
	Bid       []float64 // dollars
	Ask       []float64 // dollars
	Mid       []float64 // dollars
	Spread    []float64 // dollars
	LastPrice []float64 // dollars

	// Trades is the masked sub-series of rows carrying a trade print
	// (last_price > 0), in input order.
	Trades []TradePoint
}

// TradePoint is one executed trade for the bubble scatter.
type TradePoint struct {
	TimeMs  float64
	PriceUS float64 // dollars
	Qty     float64
}

// BuildSeries rescales observations into a chart-ready Series.
// Input order is preserved; rows are never dropped from the price columns,
// only the trade sub-series is masked.
func BuildSeries(points []*domain.PricePoint) (*Series, error) {
	if len(points) == 0 {
		return nil, ErrNoData
	}

	s := &Series{
		TimeMs:    make([]float64, len(points)),
		Bid:       make([]float64, len(points)),
		Ask:       make([]float64, len(points)),
		Mid:       make([]float64, len(points)),
		Spread:    make([]float64, len(points)),
		LastPrice: make([]float64, len(points)),
	}

	for i, p := range points {
		s.TimeMs[i] = domain.Millis(p.TimestampNs)
		s.Bid[i] = domain.Dollars(p.Bid)
		s.Ask[i] = domain.Dollars(p.Ask)
		s.Mid[i] = domain.Dollars(p.Mid)
		s.Spread[i] = domain.Dollars(p.Spread)
		s.LastPrice[i] = domain.Dollars(p.LastPrice)

		if p.HasTrade() {
			s.Trades = append(s.Trades, TradePoint{
				TimeMs:  s.TimeMs[i],
				PriceUS: s.LastPrice[i],
				Qty:     p.LastQty,
			})
		}
	}

	return s, nil
}

// Len returns the number of observations in the series.
func (s *Series) Len() int {
	return len(s.TimeMs)
}

// TimeRange returns the first and last timestamps of the series in ms.
func (s *Series) TimeRange() (start, end float64) {
	return s.TimeMs[0], s.TimeMs[len(s.TimeMs)-1]
}
