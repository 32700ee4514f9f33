package postgres

import (
	"context"
	"fmt"

	"orderbook-pricechart/internal/domain"
	"orderbook-pricechart/internal/storage"
)

// PriceHistoryStore implements storage.PriceHistoryStore using PostgreSQL.
type PriceHistoryStore struct {
	pool *Pool
}

// NewPriceHistoryStore creates a new PriceHistoryStore.
func NewPriceHistoryStore(pool *Pool) *PriceHistoryStore {
	return &PriceHistoryStore{pool: pool}
}

// Compile-time interface check.
var _ storage.PriceHistoryStore = (*PriceHistoryStore)(nil)

// InsertBulk adds a run's observations atomically. Fails the entire batch
// with ErrDuplicateKey on any duplicate (run_id, timestamp_ns).
func (s *PriceHistoryStore) InsertBulk(ctx context.Context, runID string, points []*domain.PricePoint) error {
	if runID == "" {
		return storage.ErrInvalidInput
	}
	if len(points) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO price_history (
			run_id, timestamp_ns, bid, ask, mid, spread, last_price, last_qty
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for _, p := range points {
		_, err := tx.Exec(ctx, query,
			runID, p.TimestampNs, p.Bid, p.Ask, p.Mid, p.Spread, p.LastPrice, p.LastQty,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert price point: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetByRunID retrieves all observations for a run, ordered by timestamp ASC.
func (s *PriceHistoryStore) GetByRunID(ctx context.Context, runID string) ([]*domain.PricePoint, error) {
	query := `
		SELECT timestamp_ns, bid, ask, mid, spread, last_price, last_qty
		FROM price_history
		WHERE run_id = $1
		ORDER BY timestamp_ns ASC
	`

	rows, err := s.pool.Query(ctx, query, runID)
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
		WHERE run_id = $1 AND timestamp_ns >= $2 AND timestamp_ns <= $3
		ORDER BY timestamp_ns ASC
	`

	rows, err := s.pool.Query(ctx, query, runID, startNs, endNs)
	if err != nil {
		return nil, fmt.Errorf("query by time range: %w", err)
	}
	defer rows.Close()

	return scanPricePoints(rows)
}

// Runs lists the known run identifiers, sorted ascending.
func (s *PriceHistoryStore) Runs(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT run_id FROM price_history ORDER BY run_id ASC`

	rows, err := s.pool.Query(ctx, query)
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

// rowScanner is the subset of pgx.Rows used by scanPricePoints.
type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// scanPricePoints scans multiple rows.
func scanPricePoints(rows rowScanner) ([]*domain.PricePoint, error) {
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
