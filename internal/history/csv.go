// Package history reads and writes the engine's price_history.csv format
// and provides the bounded recorder that produces it.
package history

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"orderbook-pricechart/internal/domain"
)

// ErrEmptyHistory is returned when a CSV contains a header but no rows.
var ErrEmptyHistory = errors.New("price history contains no rows")

// ReadFile loads price history from a CSV file on disk.
func ReadFile(path string) ([]*domain.PricePoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open price history: %w", err)
	}
	defer f.Close()

	points, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return points, nil
}

// Read decodes price history rows from r. The header row is required and may
// list the columns in any order; all seven columns must be present.
func Read(r io.Reader) ([]*domain.PricePoint, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var points []*domain.PricePoint
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		p, err := parseRow(record, idx)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		points = append(points, p)
	}

	if len(points) == 0 {
		return nil, ErrEmptyHistory
	}
	return points, nil
}

// WriteFile writes price history to a CSV file in canonical column order.
func WriteFile(path string, points []*domain.PricePoint) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := Write(f, points); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// Write encodes price history rows to w, header first.
func Write(w io.Writer, points []*domain.PricePoint) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(domain.Columns()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, p := range points {
		record := []string{
			strconv.FormatInt(p.TimestampNs, 10),
			strconv.FormatInt(p.Bid, 10),
			strconv.FormatInt(p.Ask, 10),
			strconv.FormatInt(p.Mid, 10),
			strconv.FormatInt(p.Spread, 10),
			strconv.FormatInt(p.LastPrice, 10),
			strconv.FormatFloat(p.LastQty, 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// columnIndex maps each expected column name to its position in the header.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}

	for _, col := range domain.Columns() {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing column %q in header", col)
		}
	}
	return idx, nil
}

func parseRow(record []string, idx map[string]int) (*domain.PricePoint, error) {
	intField := func(col string) (int64, error) {
		pos := idx[col]
		if pos >= len(record) {
			return 0, fmt.Errorf("short row: no value for column %q", col)
		}
		v, err := strconv.ParseInt(record[pos], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("column %q: parse %q: %w", col, record[pos], err)
		}
		return v, nil
	}

	var p domain.PricePoint
	var err error
	if p.TimestampNs, err = intField(domain.ColTimestampNs); err != nil {
		return nil, err
	}
	if p.Bid, err = intField(domain.ColBid); err != nil {
		return nil, err
	}
	if p.Ask, err = intField(domain.ColAsk); err != nil {
		return nil, err
	}
	if p.Mid, err = intField(domain.ColMid); err != nil {
		return nil, err
	}
	if p.Spread, err = intField(domain.ColSpread); err != nil {
		return nil, err
	}
	if p.LastPrice, err = intField(domain.ColLastPrice); err != nil {
		return nil, err
	}

	qtyPos := idx[domain.ColLastQty]
	if qtyPos >= len(record) {
		return nil, fmt.Errorf("short row: no value for column %q", domain.ColLastQty)
	}
	p.LastQty, err = strconv.ParseFloat(record[qtyPos], 64)
	if err != nil {
		return nil, fmt.Errorf("column %q: parse %q: %w", domain.ColLastQty, record[qtyPos], err)
	}

	return &p, nil
}
