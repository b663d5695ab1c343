// Package sketch turns raw pointer and touch input into committed line segments.
package sketch

import (
	"fmt"
	"strings"

	"github.com/frudas24/sketchslice/internal/geom"
)

// Kind identifies the type of an input event.
type Kind uint8

const (
	// KindDown is a primary button press.
	KindDown Kind = iota + 1
	// KindMove is a pointer move.
	KindMove
	// KindUp is a primary button release.
	KindUp
	// KindLeave reports the pointer leaving the element that sent it.
	KindLeave
	// KindSelectStart is the legacy select-start notification.
	KindSelectStart
	// KindTouchStart reports one or more touches beginning.
	KindTouchStart
	// KindTouchMove reports touches moving.
	KindTouchMove
	// KindTouchEnd reports touches lifting.
	KindTouchEnd
	// KindTouchCancel reports the platform cancelling the touch sequence.
	KindTouchCancel
)

var kindNames = map[Kind]string{
	KindDown:        "down",
	KindMove:        "move",
	KindUp:          "up",
	KindLeave:       "leave",
	KindSelectStart: "selectstart",
	KindTouchStart:  "touchstart",
	KindTouchMove:   "touchmove",
	KindTouchEnd:    "touchend",
	KindTouchCancel: "touchcancel",
}

// String returns the wire name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsTouch reports whether the kind belongs to the touch family.
func (k Kind) IsTouch() bool {
	return k >= KindTouchStart && k <= KindTouchCancel
}

// ParseKind maps a wire name onto a Kind.
func ParseKind(name string) (Kind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Pointer is one raw position carried by an event. ID is the touch
// identifier for touch events and zero for the mouse.
type Pointer struct {
	ID  int
	Pos geom.Point
}

// Event is one raw input event as reported by the page.
type Event struct {
	Kind   Kind
	Origin geom.Space
	// Points is empty for events without coordinates (window leave/up).
	Points []Pointer
	// PrimaryHeld is set on leave events when the primary button is still down.
	PrimaryHeld bool

	prevented bool
}

// MouseEvent builds a single-pointer mouse event.
func MouseEvent(kind Kind, origin geom.Space, x, y float64) *Event {
	return &Event{Kind: kind, Origin: origin, Points: []Pointer{{Pos: geom.Pt(x, y)}}}
}

// BareEvent builds an event that carries no coordinates.
func BareEvent(kind Kind, origin geom.Space) *Event {
	return &Event{Kind: kind, Origin: origin}
}

// TouchEvent builds a touch event with the given touches.
func TouchEvent(kind Kind, origin geom.Space, touches ...Pointer) *Event {
	return &Event{Kind: kind, Origin: origin, Points: touches}
}

// PreventDefault marks the platform default action as suppressed.
func (e *Event) PreventDefault() {
	e.prevented = true
}

// DefaultPrevented reports whether the default action was suppressed.
func (e Event) DefaultPrevented() bool {
	return e.prevented
}

// primary returns the first point of the event.
func (e Event) primary() (Pointer, bool) {
	if len(e.Points) == 0 {
		return Pointer{}, false
	}
	return e.Points[0], true
}

// find returns the point with the given identifier.
func (e Event) find(id int) (Pointer, bool) {
	for _, p := range e.Points {
		if p.ID == id {
			return p, true
		}
	}
	return Pointer{}, false
}

// clone returns a copy that shares nothing with e.
func (e Event) clone() Event {
	e.Points = append([]Pointer(nil), e.Points...)
	return e
}
