package domain

// PricePoint is one order-book observation: top-of-book state plus the most
// recent trade print at the time of the snapshot.
// Corresponds to one row of price_history.csv.
type PricePoint struct {
	TimestampNs int64   // nanoseconds since the start of the recording
	Bid         int64   // best bid in integer cents (0 if the bid side is empty)
	Ask         int64   // best ask in integer cents (0 if the ask side is empty)
	Mid         int64   // (bid + ask) / 2, integer cents
	Spread      int64   // ask - bid, integer cents
	LastPrice   int64   // last trade price in integer cents (0 if no trade yet)
	LastQty     float64 // last trade quantity
}

// HasTrade reports whether this observation carries a trade print.
// Snapshots taken before the first execution record last_price = 0.
func (p *PricePoint) HasTrade() bool {
	return p.LastPrice > 0
}

// Unit conversion factors for rendering and reporting.
const (
	CentsPerDollar = 100.0
	NsPerMs        = 1_000_000.0
)

// Dollars converts an integer cent amount to dollars.
func Dollars(cents int64) float64 {
	return float64(cents) / CentsPerDollar
}

// Millis converts a nanosecond timestamp to milliseconds.
func Millis(ns int64) float64 {
	return float64(ns) / NsPerMs
}
