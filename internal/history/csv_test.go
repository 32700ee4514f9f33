package history

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCSV = `timestamp_ns,bid,ask,mid,spread,last_price,last_qty
0,10000,10010,10005,10,0,0
1000000,10001,10011,10006,10,10005,2.5
2000000,10002,10012,10007,10,10006,1
`

func TestRead_Basic(t *testing.T) {
	points, err := Read(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if len(points) != 3 {
		t.Fatalf("Expected 3 points, got %d", len(points))
	}

	p := points[1]
	if p.TimestampNs != 1000000 {
		t.Errorf("Expected timestamp 1000000, got %d", p.TimestampNs)
	}
	if p.Bid != 10001 || p.Ask != 10011 || p.Mid != 10006 || p.Spread != 10 {
		t.Errorf("Unexpected book values: %+v", p)
	}
	if p.LastPrice != 10005 || p.LastQty != 2.5 {
		t.Errorf("Unexpected trade values: %+v", p)
	}
}

func TestRead_ReorderedHeader(t *testing.T) {
	csv := `last_qty,timestamp_ns,ask,bid,spread,mid,last_price
3.5,500,10010,10000,10,10005,10002
`
	points, err := Read(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	p := points[0]
	if p.TimestampNs != 500 || p.Bid != 10000 || p.Ask != 10010 || p.LastQty != 3.5 {
		t.Errorf("Columns not mapped by header name: %+v", p)
	}
}

func TestRead_MissingColumn(t *testing.T) {
	csv := `timestamp_ns,bid,ask,mid,spread,last_price
0,1,2,1,1,0
`
	_, err := Read(strings.NewReader(csv))
	if err == nil {
		t.Fatal("Expected error for missing last_qty column")
	}
	if !strings.Contains(err.Error(), "last_qty") {
		t.Errorf("Error should name the missing column, got: %v", err)
	}
}

func TestRead_NonNumericCell(t *testing.T) {
	csv := `timestamp_ns,bid,ask,mid,spread,last_price,last_qty
0,abc,10010,10005,10,0,0
`
	_, err := Read(strings.NewReader(csv))
	if err == nil {
		t.Fatal("Expected error for non-numeric bid")
	}
	if !strings.Contains(err.Error(), "line 2") || !strings.Contains(err.Error(), "bid") {
		t.Errorf("Error should carry row and column context, got: %v", err)
	}
}

func TestRead_EmptyHistory(t *testing.T) {
	csv := "timestamp_ns,bid,ask,mid,spread,last_price,last_qty\n"
	_, err := Read(strings.NewReader(csv))
	if !errors.Is(err, ErrEmptyHistory) {
		t.Errorf("Expected ErrEmptyHistory, got %v", err)
	}
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "no_such.csv"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestWriteRead_RoundTrip(t *testing.T) {
	points, err := Read(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, points); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	again, err := Read(&buf)
	if err != nil {
		t.Fatalf("Re-read failed: %v", err)
	}

	if len(again) != len(points) {
		t.Fatalf("Expected %d points, got %d", len(points), len(again))
	}
	for i := range points {
		if *again[i] != *points[i] {
			t.Errorf("Point %d changed across round trip: %+v vs %+v", i, points[i], again[i])
		}
	}
}

func TestWriteFile(t *testing.T) {
	points, err := Read(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteFile(path, points); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.HasPrefix(string(data), "timestamp_ns,bid,ask,mid,spread,last_price,last_qty\n") {
		t.Errorf("Exported file missing canonical header: %q", string(data)[:50])
	}
}
