package storage

import (
	"context"

	"orderbook-pricechart/internal/domain"
)

// PriceHistoryStore provides access to recorded price history, keyed by a
// caller-supplied run identifier (one run per engine recording).
type PriceHistoryStore interface {
	// InsertBulk adds a run's observations atomically. Fails the entire
	// batch with ErrDuplicateKey on any duplicate (run_id, timestamp_ns).
	InsertBulk(ctx context.Context, runID string, points []*domain.PricePoint) error

	// GetByRunID retrieves all observations for a run, ordered by
	// timestamp ASC. Returns ErrNotFound if the run has no data.
	GetByRunID(ctx context.Context, runID string) ([]*domain.PricePoint, error)

	// GetByTimeRange retrieves a run's observations within [startNs, endNs]
	// (inclusive), ordered by timestamp ASC.
	GetByTimeRange(ctx context.Context, runID string, startNs, endNs int64) ([]*domain.PricePoint, error)

	// Runs lists the known run identifiers, sorted ascending.
	Runs(ctx context.Context) ([]string, error)
}
