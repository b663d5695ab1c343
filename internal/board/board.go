// Package board serialises access to the drawing surfaces served by the app.
package board

import (
	"sync"

	"github.com/frudas24/sketchslice/internal/geom"
	"github.com/frudas24/sketchslice/internal/sketch"
)

// Board pairs one surface's tracker with the geometry the page last reported.
type Board struct {
	mu       sync.Mutex
	id       string
	layout   geom.Layout
	tracker  *sketch.Tracker
	onLayout []func(geom.Layout, []sketch.Segment)
	onReset  []func()
	onEnd    []func()
	pending  []sketch.Segment
}

// Outcome describes what one event did to the board.
type Outcome struct {
	State     sketch.DragState
	Segments  []sketch.Segment
	Prevented bool
}

// New returns a board with an idle tracker and an empty log.
func New(id string, layout geom.Layout, sinks ...sketch.Sink) *Board {
	b := &Board{id: id, layout: layout}
	// The tracker only asks for geometry from inside Handle, with mu held.
	b.tracker = sketch.NewTracker(sketch.GeometryFunc(func() (geom.Layout, error) {
		return b.layout, nil
	}), append([]sketch.Sink{sketch.SinkFunc(b.collect)}, sinks...)...)
	return b
}

// ID returns the surface identifier.
func (b *Board) ID() string {
	return b.id
}

// AddSink registers a sink for future segments.
func (b *Board) AddSink(s sketch.Sink) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tracker.AddSink(s)
}

// SetHooks installs tracker observer hooks.
func (b *Board) SetHooks(h sketch.Hooks) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tracker.SetHooks(h)
}

// OnLayout registers a callback run after every layout change.
func (b *Board) OnLayout(fn func(geom.Layout, []sketch.Segment)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onLayout = append(b.onLayout, fn)
}

// OnReset registers a callback run after the log is cleared.
func (b *Board) OnReset(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onReset = append(b.onReset, fn)
}

// OnDragEnd registers a callback run when a drag finishes or is aborted.
func (b *Board) OnDragEnd(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onEnd = append(b.onEnd, fn)
}

// Handle feeds one event to the tracker and returns the resulting state.
func (b *Board) Handle(ev *sketch.Event) (sketch.DragState, error) {
	out, err := b.Apply(ev)
	return out.State, err
}

// Apply feeds one event to the tracker and reports the segments it
// committed and whether its default action was suppressed.
func (b *Board) Apply(ev *sketch.Event) (Outcome, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = nil
	wasDragging := b.tracker.State().Dragging()
	err := b.tracker.Handle(ev)
	out := Outcome{State: b.tracker.State(), Segments: b.pending}
	if ev != nil {
		out.Prevented = ev.DefaultPrevented()
	}
	b.pending = nil
	if wasDragging && !out.State.Dragging() {
		for _, fn := range b.onEnd {
			fn()
		}
	}
	return out, err
}

// collect records segments committed during the current Apply.
func (b *Board) collect(s sketch.Segment) {
	b.pending = append(b.pending, s)
}

// SetLayout records new geometry. A drag in progress switches to it at once
// so scrolling mid-drag keeps outside moves aligned.
func (b *Board) SetLayout(l geom.Layout) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.layout == l {
		return
	}
	b.layout = l
	// The board's geometry never fails.
	_ = b.tracker.Relayout()
	lines := b.tracker.Lines()
	for _, fn := range b.onLayout {
		fn(l, lines)
	}
}

// Layout returns the last reported geometry.
func (b *Board) Layout() geom.Layout {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.layout
}

// Lines returns a snapshot of the committed segments.
func (b *Board) Lines() []sketch.Segment {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tracker.Lines()
}

// State returns the tracker's drag state.
func (b *Board) State() sketch.DragState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tracker.State()
}

// Reset clears the drag and the segment log.
func (b *Board) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tracker.Reset()
	for _, fn := range b.onReset {
		fn()
	}
}
