package sketch

import "github.com/frudas24/sketchslice/internal/geom"

// Segment is one committed straight piece of a drawn path, in
// surface-local coordinates.
type Segment struct {
	Start geom.Point
	End   geom.Point
}

// Flat returns the segment as [x1, y1, x2, y2].
func (s Segment) Flat() [4]float64 {
	return [4]float64{s.Start.X, s.Start.Y, s.End.X, s.End.Y}
}

// Seg is shorthand for a segment from (x1,y1) to (x2,y2).
func Seg(x1, y1, x2, y2 float64) Segment {
	return Segment{Start: geom.Pt(x1, y1), End: geom.Pt(x2, y2)}
}

// SegmentLog is an append-only, ordered record of committed segments.
type SegmentLog struct {
	segments []Segment
}

// Append records a segment at the end of the log.
func (l *SegmentLog) Append(s Segment) {
	l.segments = append(l.segments, s)
}

// All returns a copy of the log in drawing order.
func (l *SegmentLog) All() []Segment {
	out := make([]Segment, len(l.segments))
	copy(out, l.segments)
	return out
}

// Len returns the number of committed segments.
func (l *SegmentLog) Len() int {
	return len(l.segments)
}

// Reset clears the log.
func (l *SegmentLog) Reset() {
	l.segments = nil
}
