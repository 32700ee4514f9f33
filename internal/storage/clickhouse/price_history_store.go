package clickhouse

import (
	"context"
	"fmt"

	"orderbook-pricechart/internal/domain"
	"orderbook-pricechart/internal/storage"
)

// PriceHistoryStore implements storage.PriceHistoryStore using ClickHouse.
type PriceHistoryStore struct {
	conn *Conn
}

// NewPriceHistoryStore creates a new PriceHistoryStore.
func NewPriceHistoryStore(conn *Conn) *PriceHistoryStore {
	return &PriceHistoryStore{conn: conn}
}

// Compile-time interface check.
var _ storage.PriceHistoryStore = (*PriceHistoryStore)(nil)

// InsertBulk adds a run's observations. Fails the entire batch with
// ErrDuplicateKey on any duplicate (run_id, timestamp_ns).
// ClickHouse MergeTree does not enforce uniqueness, so duplicates are
// checked explicitly before the batch is sent.
func (s *PriceHistoryStore) InsertBulk(ctx context.Context, runID string, points []*domain.PricePoint) error {
	if runID == "" {
		return storage.ErrInvalidInput
	}
	if len(points) == 0 {
		return nil
	}

	// Check for intra-batch duplicates
	seen := make(map[int64]struct{}, len(points))
	for _, p := range points {
		if _, exists := seen[p.TimestampNs]; exists {
			return storage.ErrDuplicateKey
		}
		seen[p.TimestampNs] = struct{}{}
	}

	// Check for duplicates against existing rows
	existing, err := s.countInRun(ctx, runID)
	if err != nil {
		return fmt.Errorf("check existing run: %w", err)
	}
	if existing > 0 {
		for _, p := range points {
			exists, err := s.exists(ctx, runID, p.TimestampNs)
			if err != nil {
				return fmt.Errorf("check exists: %w", err)
			}
			if exists {
				return storage.ErrDuplicateKey
			}
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO price_history (
			run_id, timestamp_ns, bid, ask, mid, spread, last_price, last_qty
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, p := range points {
		err = batch.Append(
			runID, p.TimestampNs, p.Bid, p.Ask, p.Mid, p.Spread, p.LastPrice, p.LastQty,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByRunID retrieves all observations for a run, ordered by timestamp ASC.
func (s *PriceHistoryStore) GetByRunID(ctx context.Context, runID string) ([]*domain.PricePoint, error) {
	query := `
		SELECT timestamp_ns, bid, ask, mid, spread, last_price, last_qty
		FROM price_history
		WHERE run_id = ?
		ORDER BY timestamp_ns ASC
	`

	rows, err := s.conn.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("query by run id: %w", err)
	}
	defer rows.Close()

	points, err := scanPricePoints(rows)
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, storage.ErrNotFound
	}
	return points, nil
}

// GetByTimeRange retrieves a run's observations within [startNs, endNs] (inclusive).
func (s *PriceHistoryStore) GetByTimeRange(ctx context.Context, runID string, startNs, endNs int64) ([]*domain.PricePoint, error) {
	query := `
		SELECT timestamp_ns, bid, ask, mid, spread, last_price, last_qty
		FROM price_history
		WHERE run_id = ? AND timestamp_ns >= ? AND timestamp_ns <= ?
		ORDER BY timestamp_ns ASC
	`

	rows, err := s.conn.Query(ctx, query, runID, startNs, endNs)
	if err != nil {
		return nil, fmt.Errorf("query by time range: %w", err)
	}
	defer rows.Close()

	return scanPricePoints(rows)
}

// Runs lists the known run identifiers, sorted ascending.
func (s *PriceHistoryStore) Runs(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT run_id FROM price_history ORDER BY run_id ASC`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan run id: %w", err)
		}
		runs = append(runs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// countInRun returns the number of stored observations for a run.
func (s *PriceHistoryStore) countInRun(ctx context.Context, runID string) (uint64, error) {
	var count uint64
	err := s.conn.QueryRow(ctx,
		`SELECT count(*) FROM price_history WHERE run_id = ?`, runID,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// exists checks if an observation with the given key exists.
func (s *PriceHistoryStore) exists(ctx context.Context, runID string, timestampNs int64) (bool, error) {
	var count uint64
	err := s.conn.QueryRow(ctx,
		`SELECT count(*) FROM price_history WHERE run_id = ? AND timestamp_ns = ?`,
		runID, timestampNs,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// chRows is the subset of driver.Rows used by scanPricePoints.
type chRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// scanPricePoints scans multiple rows.
func scanPricePoints(rows chRows) ([]*domain.PricePoint, error) {
	var points []*domain.PricePoint

	for rows.Next() {
		var p domain.PricePoint
		err := rows.Scan(
			&p.TimestampNs, &p.Bid, &p.Ask, &p.Mid, &p.Spread, &p.LastPrice, &p.LastQty,
		)
		if err != nil {
			return nil, fmt.Errorf("scan price point: %w", err)
		}
		points = append(points, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate price points: %w", err)
	}

	return points, nil
}
