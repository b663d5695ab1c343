// Package testutil holds fakes shared by package tests.
package testutil

import "github.com/frudas24/sketchslice/internal/geom"

// SurfaceLayout is a 600x300 surface at (108,58) inside a body at (8,8),
// the arrangement the page tests use.
func SurfaceLayout() geom.Layout {
	return geom.Layout{
		Surface:   geom.Rect{X: 108, Y: 58, W: 600, H: 300},
		Container: geom.Rect{X: 8, Y: 8, W: 1000, H: 800},
	}
}
