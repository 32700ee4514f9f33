package history

import (
	"bytes"
	"strings"
	"testing"

	"orderbook-pricechart/internal/domain"
)

func TestRecorder_RollingWindow(t *testing.T) {
	r := NewRecorder(3)

	for i := int64(0); i < 5; i++ {
		r.Record(&domain.PricePoint{TimestampNs: i * 1000, Bid: 100 + i})
	}

	if r.Len() != 3 {
		t.Fatalf("Expected window of 3, got %d", r.Len())
	}

	points := r.Points()
	// Oldest two (ts 0, 1000) evicted
	if points[0].TimestampNs != 2000 {
		t.Errorf("Expected oldest retained ts 2000, got %d", points[0].TimestampNs)
	}
	if r.Latest().TimestampNs != 4000 {
		t.Errorf("Expected latest ts 4000, got %d", r.Latest().TimestampNs)
	}
}

func TestRecorder_LatestEmpty(t *testing.T) {
	r := NewRecorder(0)
	if r.Latest() != nil {
		t.Error("Expected nil latest for empty recorder")
	}
	if r.Len() != 0 {
		t.Errorf("Expected empty recorder, got %d", r.Len())
	}
}

func TestRecorder_ExportCSV(t *testing.T) {
	r := NewRecorder(10)
	r.Record(&domain.PricePoint{TimestampNs: 0, Bid: 10000, Ask: 10010, Mid: 10005, Spread: 10})
	r.Record(&domain.PricePoint{TimestampNs: 1000, Bid: 10001, Ask: 10011, Mid: 10006, Spread: 10, LastPrice: 10005, LastQty: 1.5})

	var buf bytes.Buffer
	if err := r.ExportCSV(&buf); err != nil {
		t.Fatalf("ExportCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "timestamp_ns,bid,ask,mid,spread,last_price,last_qty" {
		t.Errorf("Unexpected header: %q", lines[0])
	}
	if lines[2] != "1000,10001,10011,10006,10,10005,1.5" {
		t.Errorf("Unexpected row: %q", lines[2])
	}
}

func TestRecorder_CopiesInput(t *testing.T) {
	r := NewRecorder(10)
	p := &domain.PricePoint{TimestampNs: 1, Bid: 100}
	r.Record(p)
	p.Bid = 999

	if r.Latest().Bid != 100 {
		t.Error("Recorder should copy observations, not alias caller memory")
	}
}
