package geom

import "testing"

// testLayout puts a 600x300 surface at (108,58) inside a body at (8,8).
func testLayout() Layout {
	return Layout{
		Surface:   Rect{X: 108, Y: 58, W: 600, H: 300},
		Container: Rect{X: 8, Y: 8, W: 1000, H: 800},
	}
}

// TestToSurface_FromSurfaceIsIdentity verifies surface points pass through.
func TestToSurface_FromSurfaceIsIdentity(t *testing.T) {
	p := ToSurface(Pt(20, 30), SpaceSurface, testLayout())
	if p != Pt(20, 30) {
		t.Fatalf("expected (20,30), got %+v", p)
	}
}

// TestToSurface_FromContainer verifies container-relative points shift by both origins.
func TestToSurface_FromContainer(t *testing.T) {
	// (800,120) in the body is (808,128) in the window, (700,70) on the surface.
	p := ToSurface(Pt(800, 120), SpaceContainer, testLayout())
	if p != Pt(700, 70) {
		t.Fatalf("expected (700,70), got %+v", p)
	}
}

// TestToSurface_FromWindow verifies window points shift by the surface origin.
func TestToSurface_FromWindow(t *testing.T) {
	p := ToSurface(Pt(100, 50), SpaceWindow, testLayout())
	if p != Pt(-8, -8) {
		t.Fatalf("expected (-8,-8), got %+v", p)
	}
}

// TestToWindow_RoundTrip verifies ToWindow undoes ToSurface.
func TestToWindow_RoundTrip(t *testing.T) {
	l := testLayout()
	in := Pt(13.5, 250)
	local := ToSurface(in, SpaceContainer, l)
	back := ToWindow(local, SpaceSurface, l)
	if want := ToWindow(in, SpaceContainer, l); back != want {
		t.Fatalf("expected %+v, got %+v", want, back)
	}
}

// TestInsideSurface verifies containment uses surface-local bounds.
func TestInsideSurface(t *testing.T) {
	l := testLayout()
	if !InsideSurface(Pt(0, 0), l) || !InsideSurface(Pt(600, 300), l) {
		t.Fatalf("expected surface corners to be inside")
	}
	if InsideSurface(Pt(700, 70), l) || InsideSurface(Pt(-1, 10), l) {
		t.Fatalf("expected points past the edge to be outside")
	}
}
