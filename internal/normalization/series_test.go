package normalization

import (
	"errors"
	"testing"

	"orderbook-pricechart/internal/domain"
)

func TestBuildSeries_Rescaling(t *testing.T) {
	points := []*domain.PricePoint{
		{TimestampNs: 2_000_000, Bid: 10000, Ask: 10010, Mid: 10005, Spread: 10, LastPrice: 0, LastQty: 0},
		{TimestampNs: 4_000_000, Bid: 10002, Ask: 10012, Mid: 10007, Spread: 10, LastPrice: 10005, LastQty: 3},
	}

	s, err := BuildSeries(points)
	if err != nil {
		t.Fatalf("BuildSeries failed: %v", err)
	}

	if s.Len() != 2 {
		t.Fatalf("Expected 2 observations, got %d", s.Len())
	}

	// cents / 100 -> dollars
	if s.Bid[0] != 100.00 || s.Ask[0] != 100.10 || s.Mid[0] != 100.05 {
		t.Errorf("Prices not rescaled to dollars: bid=%v ask=%v mid=%v", s.Bid[0], s.Ask[0], s.Mid[0])
	}
	if s.Spread[1] != 0.10 {
		t.Errorf("Spread not rescaled: %v", s.Spread[1])
	}

	// ns / 1e6 -> ms
	if s.TimeMs[0] != 2.0 || s.TimeMs[1] != 4.0 {
		t.Errorf("Timestamps not rescaled to ms: %v", s.TimeMs)
	}
}

func TestBuildSeries_TradeMask(t *testing.T) {
	points := []*domain.PricePoint{
		{TimestampNs: 0, LastPrice: 0, LastQty: 0},       // no trade yet
		{TimestampNs: 1_000_000, LastPrice: 10005, LastQty: 2}, // trade
		{TimestampNs: 2_000_000, LastPrice: -1, LastQty: 5},    // non-positive, masked out
		{TimestampNs: 3_000_000, LastPrice: 10010, LastQty: 4}, // trade
	}

	s, err := BuildSeries(points)
	if err != nil {
		t.Fatalf("BuildSeries failed: %v", err)
	}

	if len(s.Trades) != 2 {
		t.Fatalf("Expected 2 trade points, got %d", len(s.Trades))
	}
	if s.Trades[0].TimeMs != 1.0 || s.Trades[0].PriceUS != 100.05 || s.Trades[0].Qty != 2 {
		t.Errorf("Unexpected first trade point: %+v", s.Trades[0])
	}
	if s.Trades[1].TimeMs != 3.0 {
		t.Errorf("Unexpected second trade point: %+v", s.Trades[1])
	}

	// Price columns keep every row
	if s.Len() != 4 {
		t.Errorf("Price columns must not drop rows, got %d", s.Len())
	}
}

func TestBuildSeries_Empty(t *testing.T) {
	_, err := BuildSeries(nil)
	if !errors.Is(err, ErrNoData) {
		t.Errorf("Expected ErrNoData, got %v", err)
	}
}

func TestTimeRange(t *testing.T) {
	points := []*domain.PricePoint{
		{TimestampNs: 1_000_000},
		{TimestampNs: 9_000_000},
	}
	s, err := BuildSeries(points)
	if err != nil {
		t.Fatalf("BuildSeries failed: %v", err)
	}

	start, end := s.TimeRange()
	if start != 1.0 || end != 9.0 {
		t.Errorf("Expected range [1, 9], got [%v, %v]", start, end)
	}
}
