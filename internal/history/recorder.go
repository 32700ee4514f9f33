package history

import (
	"io"

	"orderbook-pricechart/internal/domain"
)

// DefaultMaxSize is the rolling window cap used by the engine.
const DefaultMaxSize = 10000

// Recorder keeps a bounded rolling window of price observations.
// Once the window is full the oldest observation is evicted on each Record.
type Recorder struct {
	points  []*domain.PricePoint
	maxSize int
}

// NewRecorder creates a recorder with the given window cap.
// A cap <= 0 falls back to DefaultMaxSize.
func NewRecorder(maxSize int) *Recorder {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Recorder{maxSize: maxSize}
}

// Record appends an observation, evicting the oldest past the cap.
func (r *Recorder) Record(p *domain.PricePoint) {
	cp := *p
	r.points = append(r.points, &cp)
	if len(r.points) > r.maxSize {
		r.points = r.points[1:]
	}
}

// Len returns the number of retained observations.
func (r *Recorder) Len() int {
	return len(r.points)
}

// Latest returns the most recent observation, or nil if empty.
func (r *Recorder) Latest() *domain.PricePoint {
	if len(r.points) == 0 {
		return nil
	}
	cp := *r.points[len(r.points)-1]
	return &cp
}

// Points returns the retained observations in recording order.
func (r *Recorder) Points() []*domain.PricePoint {
	out := make([]*domain.PricePoint, len(r.points))
	for i, p := range r.points {
		cp := *p
		out[i] = &cp
	}
	return out
}

// ExportCSV writes the retained window to w in the canonical CSV format.
func (r *Recorder) ExportCSV(w io.Writer) error {
	return Write(w, r.points)
}

// ExportFile writes the retained window to a CSV file.
func (r *Recorder) ExportFile(path string) error {
	return WriteFile(path, r.points)
}
