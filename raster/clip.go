package raster

// Outcode is a 6-bit mask classifying a homogeneous clip-space point
// against the view frustum's half-spaces. One bit per plane; a zero
// outcode means the point is inside all six.
type Outcode uint8

const (
	OutcodeRight Outcode = 1 << iota
	OutcodeLeft
	OutcodeTop
	OutcodeBottom
	OutcodeBack
	OutcodeFront
)

// ComputeOutcode classifies a clip-space position against the frustum
// |x|,|y|,|z| <= w. The bit order (RIGHT, LEFT, TOP, BOTTOM, BACK, FRONT)
// is the fixed plane-selection order ClipLine iterates in; it affects only
// which plane is cut first when several are violated, never whether a
// point is inside.
func ComputeOutcode(pos [4]float32) Outcode {
	x, y, z, w := pos[0], pos[1], pos[2], pos[3]
	var oc Outcode
	if x > w {
		oc |= OutcodeRight
	}
	if x < -w {
		oc |= OutcodeLeft
	}
	if y > w {
		oc |= OutcodeTop
	}
	if y < -w {
		oc |= OutcodeBottom
	}
	if z > w {
		oc |= OutcodeBack
	}
	if z < -w {
		oc |= OutcodeFront
	}
	return oc
}

// ClipLine clips a line segment against the homogeneous view frustum using
// Cohen-Sutherland. It returns the clipped endpoints and true, or the zero
// value and false when the segment lies entirely outside a single
// half-space.
//
// Each iteration replaces whichever endpoint carries a non-zero outcode
// with the point where its first violated plane (fixed order: RIGHT, LEFT,
// TOP, BOTTOM, BACK, FRONT) crosses the segment, blending the full vertex
// record so attributes stay consistent with the cut. The replaced
// coordinate is snapped back onto the plane exactly to counter
// floating-point drift before outcodes are recomputed. The loop terminates
// in at most six iterations, since each pass clears at least one violated
// bit.
func ClipLine[V Vertex[V]](a, b V) (V, V, bool) {
	for i := 0; i < 6; i++ {
		ocA := ComputeOutcode(a.Position())
		ocB := ComputeOutcode(b.Position())

		if ocA == 0 && ocB == 0 {
			return a, b, true
		}
		if ocA&ocB != 0 {
			var zero V
			return zero, zero, false
		}

		outside := ocA
		replaceA := true
		if outside == 0 {
			outside = ocB
			replaceA = false
		}

		var e0, e1 V
		if replaceA {
			e0, e1 = a, b
		} else {
			e0, e1 = b, a
		}
		p0, p1 := e0.Position(), e1.Position()
		x0, y0, z0, w0 := p0[0], p0[1], p0[2], p0[3]
		x1, y1, z1, w1 := p1[0], p1[1], p1[2], p1[3]

		var alpha float32
		var plane Outcode
		switch {
		case outside&OutcodeRight != 0:
			plane = OutcodeRight
			alpha = (w0 - x0) / ((x1 - x0) - (w1 - w0))
		case outside&OutcodeLeft != 0:
			plane = OutcodeLeft
			alpha = (-w0 - x0) / ((x1 - x0) + (w1 - w0))
		case outside&OutcodeTop != 0:
			plane = OutcodeTop
			alpha = (w0 - y0) / ((y1 - y0) - (w1 - w0))
		case outside&OutcodeBottom != 0:
			plane = OutcodeBottom
			alpha = (-w0 - y0) / ((y1 - y0) + (w1 - w0))
		case outside&OutcodeBack != 0:
			plane = OutcodeBack
			alpha = (w0 - z0) / ((z1 - z0) - (w1 - w0))
		default: // OutcodeFront
			plane = OutcodeFront
			alpha = (-w0 - z0) / ((z1 - z0) + (w1 - w0))
		}

		blended := Lerp(e0, e1, alpha)
		blended = snapToPlane(blended, plane)

		if replaceA {
			a = blended
		} else {
			b = blended
		}
	}
	if ComputeOutcode(a.Position()) == 0 && ComputeOutcode(b.Position()) == 0 {
		return a, b, true
	}
	var zero V
	return zero, zero, false
}

// snapToPlane forces the coordinate the named plane constrains onto that
// plane exactly, countering the drift a blended alpha can introduce.
func snapToPlane[V Vertex[V]](v V, plane Outcode) V {
	pos := v.Position()
	switch plane {
	case OutcodeRight:
		pos[0] = pos[3]
	case OutcodeLeft:
		pos[0] = -pos[3]
	case OutcodeTop:
		pos[1] = pos[3]
	case OutcodeBottom:
		pos[1] = -pos[3]
	case OutcodeBack:
		pos[2] = pos[3]
	case OutcodeFront:
		pos[2] = -pos[3]
	default:
		return v
	}
	return ReplacePosition(v, pos)
}

// positionOnlyDelta builds a V carrying only the given position delta with
// every attribute zeroed, so snapToPlane's correction never perturbs
// attributes. Concrete vertex types opt into an exact version by
// implementing positionDeltaBuilder; Basic does.
func positionOnlyDelta[V Vertex[V]](v V, delta [4]float32) V {
	if pb, ok := any(v).(positionDeltaBuilder[V]); ok {
		return pb.positionDelta(delta)
	}
	return v.Sub(v) // zero value with matching attribute shape
}

// positionDeltaBuilder is an optional capability letting snapToPlane adjust
// only the position component, leaving attributes untouched.
type positionDeltaBuilder[V any] interface {
	positionDelta(delta [4]float32) V
}

func (v Basic) positionDelta(delta [4]float32) Basic {
	out := Basic{Pos: [4]float32{delta[0], delta[1], delta[2], delta[3]}}
	if len(v.Attrs) > 0 {
		out.Attrs = make([]float32, len(v.Attrs))
	}
	return out
}

// ClipTriangleNearPlane clips a triangle against the near plane only. It
// runs after the perspective divide and viewport map (the driver's fixed
// "divide -> viewport -> winding test -> clip" stage order), so every
// vertex's z is already NDC z (its position's w slot now holds 1/w) and
// the near-plane test reduces to z < -1.
//
// Returns the 0, 1, or 2 surviving triangles: zero offenders pass through
// unchanged, one offender splits into two triangles, two offenders
// collapse into one, three reject entirely.
func ClipTriangleNearPlane[V Vertex[V]](a, b, c V) []Triangle[V] {
	const nearZ = -1

	offA := a.Position()[2] < nearZ
	offB := b.Position()[2] < nearZ
	offC := c.Position()[2] < nearZ

	count := 0
	for _, off := range [3]bool{offA, offB, offC} {
		if off {
			count++
		}
	}

	switch count {
	case 0:
		return []Triangle[V]{{A: a, B: b, C: c}}
	case 3:
		return nil
	case 1:
		var v0, v1, v2 V
		switch {
		case offA:
			v0, v1, v2 = a, b, c
		case offB:
			v0, v1, v2 = b, c, a
		default:
			v0, v1, v2 = c, a, b
		}
		v0a := clipToNear(v0, v1)
		v0b := clipToNear(v0, v2)
		return []Triangle[V]{
			{A: v0a, B: v1, C: v2},
			{A: v0b, B: v0a, C: v2},
		}
	default: // count == 2
		var keep, o0, o1 V
		switch {
		case !offA:
			keep, o0, o1 = a, b, c
		case !offB:
			keep, o0, o1 = b, c, a
		default:
			keep, o0, o1 = c, a, b
		}
		o0p := clipToNear(o0, keep)
		o1p := clipToNear(o1, keep)
		switch {
		case !offA:
			return []Triangle[V]{{A: keep, B: o0p, C: o1p}}
		case !offB:
			return []Triangle[V]{{A: o1p, B: keep, C: o0p}}
		default:
			return []Triangle[V]{{A: o0p, B: o1p, C: keep}}
		}
	}
}

// clipToNear returns the point where the edge from offending vertex v0 to
// surviving vertex v1 crosses the near plane z = -1. By this point
// divideAndViewport has already run, so position w no longer holds the
// clip-space w (it has been overwritten with 1/w); the crossing is computed
// directly from NDC z instead of the homogeneous w-relative form:
//
//	alpha = -(1 + z0) / (z1 - z0)
func clipToNear[V Vertex[V]](v0, v1 V) V {
	p0 := v0.Position()
	p1 := v1.Position()
	alpha := -(1 + p0[2]) / (p1[2] - p0[2])
	return Lerp(v0, v1, alpha)
}
