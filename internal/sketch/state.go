package sketch

// DragState is the tracker's position in a drag.
type DragState uint8

const (
	// Idle means no drag is in progress.
	Idle DragState = iota
	// DraggingInside means a drag is in progress with the pointer on the surface.
	DraggingInside
	// DraggingOutside means a drag continues while the pointer is off the surface.
	DraggingOutside
)

// Dragging reports whether a drag is in progress.
func (s DragState) Dragging() bool {
	return s != Idle
}

// String returns a readable state name.
func (s DragState) String() string {
	switch s {
	case Idle:
		return "idle"
	case DraggingInside:
		return "dragging_inside"
	case DraggingOutside:
		return "dragging_outside"
	default:
		return "unknown"
	}
}
