package raster

// ComputeWinding classifies a screen-space triangle by the sign of the 2D
// cross product of its post-divide, post-viewport edges:
//
//	(v1.x - v0.x)*(v2.y - v0.y) - (v1.y - v0.y)*(v2.x - v0.x)
//
// positive -> CCW, negative -> CW, zero -> Degenerate.
func ComputeWinding[V Vertex[V]](v0, v1, v2 V) Winding {
	area := signedArea2D(v0, v1, v2)
	switch {
	case area > 0:
		return CCW
	case area < 0:
		return CW
	default:
		return Degenerate
	}
}

func signedArea2D[V Vertex[V]](v0, v1, v2 V) float32 {
	p0 := v0.Position()
	p1 := v1.Position()
	p2 := v2.Position()

	e1x := p1[0] - p0[0]
	e1y := p1[1] - p0[1]
	e2x := p2[0] - p0[0]
	e2y := p2[1] - p0[1]

	return e1x*e2y - e1y*e2x
}

// ShouldCullBackFace reports whether a triangle with the given winding
// should be dropped under frontFace. A Degenerate triangle is always
// culled, independent of frontFace, per spec.md's pipeline-state
// invariant.
func ShouldCullBackFace(w Winding, frontFace FrontFace) bool {
	switch w {
	case Degenerate:
		return true
	case CCW:
		return frontFace == FrontFaceCW
	case CW:
		return frontFace == FrontFaceCCW
	default:
		return true
	}
}
