package geom

// ToWindow converts a point from the given space into window coordinates.
func ToWindow(p Point, from Space, l Layout) Point {
	switch from {
	case SpaceSurface:
		return p.Add(Normalize(l.Surface).Origin())
	case SpaceContainer:
		return p.Add(Normalize(l.Container).Origin())
	default:
		return p
	}
}

// ToSurface converts a point from the given space into surface-local
// coordinates. Points outside the surface map to negative or out-of-extent
// values; they are valid results.
func ToSurface(p Point, from Space, l Layout) Point {
	if from == SpaceSurface {
		return p
	}
	return ToWindow(p, from, l).Sub(Normalize(l.Surface).Origin())
}

// InsideSurface reports whether a surface-local point lies on the surface.
func InsideSurface(p Point, l Layout) bool {
	return Contains(l.Bounds(), p)
}
