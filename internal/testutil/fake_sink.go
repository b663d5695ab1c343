package testutil

import (
	"sync"

	"github.com/frudas24/sketchslice/internal/sketch"
)

// FakeSink implements sketch.Sink and records committed segments for tests.
type FakeSink struct {
	mu       sync.Mutex
	Segments []sketch.Segment
}

// Ensure FakeSink implements the interface.
var _ sketch.Sink = (*FakeSink)(nil)

// SegmentCommitted records a segment.
func (f *FakeSink) SegmentCommitted(s sketch.Segment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Segments = append(f.Segments, s)
}

// Flat returns the recorded segments as [x1, y1, x2, y2] rows.
func (f *FakeSink) Flat() [][4]float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][4]float64, 0, len(f.Segments))
	for _, s := range f.Segments {
		out = append(out, s.Flat())
	}
	return out
}
