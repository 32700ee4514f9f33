package domain

// CSV column names used by the engine's price history export.
// Shared by the CSV codec and the database stores so schemas stay aligned.
const (
	ColTimestampNs = "timestamp_ns"
	ColBid         = "bid"
	ColAsk         = "ask"
	ColMid         = "mid"
	ColSpread      = "spread"
	ColLastPrice   = "last_price"
	ColLastQty     = "last_qty"
)

// Columns lists the expected CSV columns in canonical export order.
func Columns() []string {
	return []string{
		ColTimestampNs, ColBid, ColAsk, ColMid, ColSpread, ColLastPrice, ColLastQty,
	}
}
