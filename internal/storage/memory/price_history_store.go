// Package memory provides in-memory store implementations for tests and
// fixture-driven runs.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"orderbook-pricechart/internal/domain"
	"orderbook-pricechart/internal/storage"
)

// PriceHistoryStore is an in-memory implementation of storage.PriceHistoryStore.
type PriceHistoryStore struct {
	mu   sync.RWMutex
	data map[string]*domain.PricePoint // keyed by (run_id, timestamp_ns)
	runs map[string]int                // observation count per run
}

// NewPriceHistoryStore creates a new in-memory price history store.
func NewPriceHistoryStore() *PriceHistoryStore {
	return &PriceHistoryStore{
		data: make(map[string]*domain.PricePoint),
		runs: make(map[string]int),
	}
}

// Compile-time interface check.
var _ storage.PriceHistoryStore = (*PriceHistoryStore)(nil)

// pointKey generates a unique key for an observation.
func pointKey(runID string, timestampNs int64) string {
	return fmt.Sprintf("%s|%d", runID, timestampNs)
}

// InsertBulk adds a run's observations. Fails the entire batch on duplicate.
func (s *PriceHistoryStore) InsertBulk(_ context.Context, runID string, points []*domain.PricePoint) error {
	if runID == "" {
		return storage.ErrInvalidInput
	}
	if len(points) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Track keys in this batch to detect intra-batch duplicates
	batchKeys := make(map[string]struct{}, len(points))

	// First pass: check for duplicates (existing + intra-batch)
	for _, p := range points {
		if p == nil {
			return storage.ErrInvalidInput
		}
		key := pointKey(runID, p.TimestampNs)

		if _, exists := s.data[key]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[key]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[key] = struct{}{}
	}

	// Second pass: insert all
	for _, p := range points {
		pointCopy := *p
		s.data[pointKey(runID, p.TimestampNs)] = &pointCopy
	}
	s.runs[runID] += len(points)

	return nil
}

// GetByRunID retrieves all observations for a run, ordered by timestamp ASC.
func (s *PriceHistoryStore) GetByRunID(_ context.Context, runID string) ([]*domain.PricePoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.runs[runID]; !ok {
		return nil, storage.ErrNotFound
	}

	prefix := runID + "|"
	var result []*domain.PricePoint
	for key, p := range s.data {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			pointCopy := *p
			result = append(result, &pointCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].TimestampNs < result[j].TimestampNs
	})

	return result, nil
}

// GetByTimeRange retrieves a run's observations within [startNs, endNs].
// An unknown run yields an empty result, matching the database stores.
func (s *PriceHistoryStore) GetByTimeRange(ctx context.Context, runID string, startNs, endNs int64) ([]*domain.PricePoint, error) {
	all, err := s.GetByRunID(ctx, runID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var result []*domain.PricePoint
	for _, p := range all {
		if p.TimestampNs >= startNs && p.TimestampNs <= endNs {
			result = append(result, p)
		}
	}
	return result, nil
}

// Runs lists the known run identifiers, sorted ascending.
func (s *PriceHistoryStore) Runs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]string, 0, len(s.runs))
	for id := range s.runs {
		runs = append(runs, id)
	}
	sort.Strings(runs)
	return runs, nil
}
