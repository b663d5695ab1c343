package sketch

import (
	"fmt"

	"github.com/frudas24/sketchslice/internal/geom"
)

// Geometry reports the current placement of the drawing surface.
type Geometry interface {
	Layout() (geom.Layout, error)
}

// GeometryFunc adapts a function to Geometry.
type GeometryFunc func() (geom.Layout, error)

// Layout calls f.
func (f GeometryFunc) Layout() (geom.Layout, error) {
	return f()
}

// StaticGeometry is a Geometry that never changes.
type StaticGeometry geom.Layout

// Layout returns the fixed layout.
func (g StaticGeometry) Layout() (geom.Layout, error) {
	return geom.Layout(g), nil
}

// Sink is notified of every committed segment, in order.
type Sink interface {
	SegmentCommitted(Segment)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Segment)

// SegmentCommitted calls f.
func (f SinkFunc) SegmentCommitted(s Segment) {
	f(s)
}

// Hooks observe the tracker. They receive copies of the processed event.
type Hooks struct {
	// DragStartAttempt runs after every down or touch-start.
	DragStartAttempt func(Event)
	// DefaultPrevented runs after an event had its default action suppressed.
	DefaultPrevented func(Event)
}

// Tracker is the drag state machine of one drawing surface. It is not safe
// for concurrent use.
type Tracker struct {
	geometry Geometry
	sinks    []Sink
	hooks    Hooks

	log    SegmentLog
	state  DragState
	last   geom.Point
	layout geom.Layout

	byTouch bool
	touchID int
}

// NewTracker returns an idle tracker. A nil geometry is treated as a surface
// sitting at the window origin.
func NewTracker(geometry Geometry, sinks ...Sink) *Tracker {
	if geometry == nil {
		geometry = StaticGeometry{}
	}
	return &Tracker{geometry: geometry, sinks: sinks}
}

// AddSink registers another sink for future segments.
func (t *Tracker) AddSink(s Sink) {
	if s != nil {
		t.sinks = append(t.sinks, s)
	}
}

// SetHooks replaces the observer hooks.
func (t *Tracker) SetHooks(h Hooks) {
	t.hooks = h
}

// State returns the current drag state.
func (t *Tracker) State() DragState {
	return t.state
}

// Lines returns a snapshot of every segment committed since the last reset.
func (t *Tracker) Lines() []Segment {
	return t.log.All()
}

// Relayout rereads the surface geometry for a drag in progress, so that
// scrolling mid-drag keeps container and window moves mapped correctly.
func (t *Tracker) Relayout() error {
	if !t.state.Dragging() {
		return nil
	}
	layout, err := t.geometry.Layout()
	if err != nil {
		return fmt.Errorf("sketch: surface layout: %w", err)
	}
	t.layout = layout
	return nil
}

// Reset abandons any drag and clears the segment log.
func (t *Tracker) Reset() {
	t.idle()
	t.log.Reset()
}

// Handle processes one event to completion. The only error is a failure of
// the geometry provider when a drag starts; the tracker stays idle then.
func (t *Tracker) Handle(ev *Event) error {
	if ev == nil {
		return nil
	}
	wasDragging := t.state.Dragging()

	var err error
	switch ev.Kind {
	case KindDown:
		err = t.handleDown(ev)
	case KindMove:
		t.handleMove(ev)
	case KindUp:
		t.handleUp()
	case KindLeave:
		t.handleLeave(ev)
	case KindTouchStart:
		err = t.handleTouchStart(ev)
	case KindTouchMove:
		t.handleTouchMove(ev)
	case KindTouchEnd:
		t.handleTouchEnd(ev)
	case KindTouchCancel:
		t.idle()
	}

	if suppressDefault(ev, wasDragging, t.state.Dragging()) {
		ev.PreventDefault()
		if t.hooks.DefaultPrevented != nil {
			t.hooks.DefaultPrevented(ev.clone())
		}
	}
	if (ev.Kind == KindDown || ev.Kind == KindTouchStart) && t.hooks.DragStartAttempt != nil {
		t.hooks.DragStartAttempt(ev.clone())
	}
	return err
}

// suppressDefault decides whether the platform default action must be
// prevented. Events from outside the surface are never touched.
func suppressDefault(ev *Event, wasDragging, dragging bool) bool {
	if ev.Origin != geom.SpaceSurface {
		return false
	}
	if ev.Kind == KindSelectStart {
		return true
	}
	return wasDragging || dragging
}

// handleDown starts a mouse drag when the press lands on the surface.
func (t *Tracker) handleDown(ev *Event) error {
	if ev.Origin != geom.SpaceSurface {
		return nil
	}
	p, ok := ev.primary()
	if !ok {
		return nil
	}
	return t.begin(p.Pos, false, 0)
}

// handleMove extends a mouse drag.
func (t *Tracker) handleMove(ev *Event) {
	if !t.state.Dragging() || t.byTouch {
		return
	}
	p, ok := ev.primary()
	if !ok {
		return
	}
	if ev.Origin == geom.SpaceSurface {
		t.extend(p.Pos)
		t.state = DraggingInside
		return
	}
	local := geom.ToSurface(p.Pos, ev.Origin, t.layout)
	if t.state == DraggingInside && t.onSurface(local) {
		// The surface already reported this move; the container sees it
		// bubbling up.
		return
	}
	t.extend(local)
	if t.onSurface(local) {
		t.state = DraggingInside
	} else {
		t.state = DraggingOutside
	}
}

// handleUp ends a mouse drag wherever the release happens.
func (t *Tracker) handleUp() {
	if t.state.Dragging() && !t.byTouch {
		t.idle()
	}
}

// handleLeave tracks the pointer leaving the surface or the window.
func (t *Tracker) handleLeave(ev *Event) {
	if !t.state.Dragging() || t.byTouch {
		return
	}
	switch ev.Origin {
	case geom.SpaceSurface:
		if t.state == DraggingInside {
			t.state = DraggingOutside
		}
	case geom.SpaceWindow:
		if !ev.PrimaryHeld {
			t.idle()
		}
	}
}

// handleTouchStart starts a touch drag or aborts on a second touch.
func (t *Tracker) handleTouchStart(ev *Event) error {
	if len(ev.Points) == 0 {
		return nil
	}
	if t.state.Dragging() {
		if t.byTouch && len(ev.Points) == 1 && ev.Points[0].ID == t.touchID {
			return nil
		}
		t.idle()
		return nil
	}
	if len(ev.Points) > 1 || ev.Origin != geom.SpaceSurface {
		return nil
	}
	p := ev.Points[0]
	return t.begin(p.Pos, true, p.ID)
}

// handleTouchMove extends a touch drag with the tracked touch only.
func (t *Tracker) handleTouchMove(ev *Event) {
	if !t.state.Dragging() || !t.byTouch {
		return
	}
	p, ok := ev.find(t.touchID)
	if !ok {
		return
	}
	if len(ev.Points) > 1 {
		t.idle()
		return
	}
	local := geom.ToSurface(p.Pos, ev.Origin, t.layout)
	t.extend(local)
	t.state = t.stateAt(local)
}

// handleTouchEnd ends a touch drag when the tracked touch lifts.
func (t *Tracker) handleTouchEnd(ev *Event) {
	if !t.state.Dragging() || !t.byTouch {
		return
	}
	if len(ev.Points) == 0 {
		t.idle()
		return
	}
	if _, ok := ev.find(t.touchID); ok {
		t.idle()
	}
}

// begin refreshes the layout and enters DraggingInside at pos.
func (t *Tracker) begin(pos geom.Point, byTouch bool, touchID int) error {
	layout, err := t.geometry.Layout()
	if err != nil {
		t.idle()
		return fmt.Errorf("sketch: surface layout: %w", err)
	}
	t.layout = layout
	t.last = pos
	t.state = DraggingInside
	t.byTouch = byTouch
	t.touchID = touchID
	return nil
}

// extend commits the segment from the last point to p.
func (t *Tracker) extend(p geom.Point) {
	seg := Segment{Start: t.last, End: p}
	t.log.Append(seg)
	t.last = p
	for _, s := range t.sinks {
		s.SegmentCommitted(seg)
	}
}

// stateAt returns the dragging state for a surface-local point.
func (t *Tracker) stateAt(p geom.Point) DragState {
	if geom.InsideSurface(p, t.layout) {
		return DraggingInside
	}
	return DraggingOutside
}

// onSurface reports whether a surface-local point is one the surface itself
// would report. The right and bottom edges belong to the outside.
func (t *Tracker) onSurface(p geom.Point) bool {
	b := t.layout.Bounds()
	return p.X >= b.X && p.Y >= b.Y && p.X < b.X+b.W && p.Y < b.Y+b.H
}

// idle drops any drag in progress.
func (t *Tracker) idle() {
	t.state = Idle
	t.byTouch = false
	t.touchID = 0
}
