// Package geom describes drawing surface geometry and its coordinate spaces.
package geom

import (
	"fmt"
	"strings"
)

// Point is an (x, y) position in some coordinate space.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect describes a rectangle using top-left origin and size.
type Rect struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	W float64 `json:"w" yaml:"w"`
	H float64 `json:"h" yaml:"h"`
}

// Origin returns the top-left corner of the rectangle.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	r = Normalize(r)
	return r.W <= 0 || r.H <= 0
}

// Normalize returns a rectangle with non-negative width/height.
func Normalize(r Rect) Rect {
	if r.W < 0 {
		r.X += r.W
		r.W = -r.W
	}
	if r.H < 0 {
		r.Y += r.H
		r.H = -r.H
	}
	return r
}

// Contains reports whether a point is inside the rectangle (edges inclusive).
func Contains(r Rect, p Point) bool {
	if r.W <= 0 || r.H <= 0 {
		return false
	}
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Space names the coordinate space a raw point is expressed in.
type Space uint8

const (
	// SpaceSurface is relative to the drawing surface's own origin.
	SpaceSurface Space = iota
	// SpaceContainer is relative to the element enclosing the surface.
	SpaceContainer
	// SpaceWindow is relative to the top-left corner of the window.
	SpaceWindow
)

// String returns the wire name of the space.
func (s Space) String() string {
	switch s {
	case SpaceSurface:
		return "widget"
	case SpaceContainer:
		return "container"
	case SpaceWindow:
		return "window"
	default:
		return fmt.Sprintf("Space(%d)", uint8(s))
	}
}

// ParseSpace maps a wire name onto a Space. Empty input means the surface.
func ParseSpace(name string) (Space, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "widget", "surface":
		return SpaceSurface, nil
	case "container", "body":
		return SpaceContainer, nil
	case "window":
		return SpaceWindow, nil
	default:
		return 0, fmt.Errorf("unknown coordinate space %q", name)
	}
}

// Layout places the surface and its container inside the window.
// Both rectangles are in window coordinates.
type Layout struct {
	Surface   Rect `json:"surface" yaml:"surface"`
	Container Rect `json:"container" yaml:"container"`
}

// Bounds returns the surface extent in surface-local coordinates.
func (l Layout) Bounds() Rect {
	s := Normalize(l.Surface)
	return Rect{W: s.W, H: s.H}
}
