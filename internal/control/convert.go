package control

import (
	"errors"
	"fmt"

	"github.com/frudas24/sketchslice/internal/geom"
	"github.com/frudas24/sketchslice/internal/sketch"
)

// ErrNotPrimary marks a press or release of a button other than the primary one.
var ErrNotPrimary = errors.New("not the primary button")

// ToEvent converts an input message into a tracker event.
func ToEvent(msg Message) (*sketch.Event, error) {
	kind, ok := sketch.ParseKind(msg.T)
	if !ok {
		return nil, fmt.Errorf("unknown event %q", msg.T)
	}
	if (kind == sketch.KindDown || kind == sketch.KindUp) && msg.Button != 0 {
		return nil, ErrNotPrimary
	}
	origin, err := geom.ParseSpace(msg.Origin)
	if err != nil {
		return nil, err
	}

	switch {
	case kind.IsTouch():
		points := make([]sketch.Pointer, 0, len(msg.Touches))
		for _, t := range msg.Touches {
			points = append(points, sketch.Pointer{ID: t.ID, Pos: geom.Pt(t.X, t.Y)})
		}
		return sketch.TouchEvent(kind, origin, points...), nil
	case kind == sketch.KindSelectStart:
		return sketch.BareEvent(kind, origin), nil
	default:
		ev := sketch.MouseEvent(kind, origin, msg.X, msg.Y)
		ev.PrimaryHeld = msg.Held
		return ev, nil
	}
}

// segmentMessage wraps a committed segment for the wire.
func segmentMessage(s sketch.Segment) Message {
	flat := s.Flat()
	return Message{T: TypeSegment, Seg: &flat}
}

// linesMessage wraps a log snapshot for the wire.
func linesMessage(surface string, lines []sketch.Segment) Message {
	out := Message{T: TypeLines, Surface: surface}
	if len(lines) > 0 {
		out.Segments = make([][4]float64, 0, len(lines))
		for _, s := range lines {
			out.Segments = append(out.Segments, s.Flat())
		}
	}
	return out
}
