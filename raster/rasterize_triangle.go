package raster

// TriangleFragmentFunc receives one rasterized pixel position and the
// vertex record interpolated to that position.
type TriangleFragmentFunc[V Vertex[V]] func(x, y int, v V)

// RasterizeTriangle fills a triangle already in post-viewport screen-pixel
// space (y growing downward) via flat-top/flat-bottom decomposition,
// calling emit once per covered pixel under the top-left fill rule.
//
// Vertices are first stably sorted by y (ties broken by x) using explicit
// swaps rather than a general sort, so degenerate/shared-coordinate inputs
// produce deterministic output. The triangle is then split at the vertex
// with the middle y into a flat-bottom half and a flat-top half, each
// rasterized by the same scanline routine.
func RasterizeTriangle[V Vertex[V]](v0, v1, v2 V, width, height int, emit TriangleFragmentFunc[V]) {
	v0, v1, v2 = sortByYThenX(v0, v1, v2)

	p0, p1, p2 := v0.Position(), v1.Position(), v2.Position()

	switch {
	case p0[1] == p1[1]:
		// Flat top: v0, v1 share the top edge; v2 is the bottom apex.
		left, right := v0, v1
		if left.Position()[0] > right.Position()[0] {
			left, right = right, left
		}
		rasterizeHalf(left, v2, right, v2, width, height, emit)
	case p1[1] == p2[1]:
		// Flat bottom: v1, v2 share the bottom edge; v0 is the top apex.
		left, right := v1, v2
		if left.Position()[0] > right.Position()[0] {
			left, right = right, left
		}
		rasterizeHalf(v0, left, v0, right, width, height, emit)
	default:
		alpha := (p1[1] - p0[1]) / (p2[1] - p0[1])
		vi := Lerp(v0, v2, alpha)
		pi := vi.Position()
		if p1[0] < pi[0] {
			rasterizeHalf(v0, v1, v0, vi, width, height, emit)
			rasterizeHalf(v1, v2, vi, v2, width, height, emit)
		} else {
			rasterizeHalf(v0, vi, v0, v1, width, height, emit)
			rasterizeHalf(vi, v2, v1, v2, width, height, emit)
		}
	}
}

// sortByYThenX returns v0, v1, v2 reordered so that position y is
// non-decreasing, ties broken by x, using explicit pairwise swaps.
func sortByYThenX[V Vertex[V]](v0, v1, v2 V) (V, V, V) {
	less := func(a, b V) bool {
		pa, pb := a.Position(), b.Position()
		if pa[1] != pb[1] {
			return pa[1] < pb[1]
		}
		return pa[0] < pb[0]
	}
	if less(v1, v0) {
		v0, v1 = v1, v0
	}
	if less(v2, v1) {
		v1, v2 = v2, v1
	}
	if less(v1, v0) {
		v0, v1 = v1, v0
	}
	return v0, v1, v2
}

// rasterizeHalf scanline-fills one flat-top or flat-bottom half triangle.
// The left rail runs from la to lb, the right rail from ra to rb; la.y must
// equal ra.y (the half's top) and lb.y must equal rb.y (the half's
// bottom).
func rasterizeHalf[V Vertex[V]](la, lb, ra, rb V, width, height int, emit TriangleFragmentFunc[V]) {
	yTop := la.Position()[1]
	yBottom := lb.Position()[1]
	rowSpan := yBottom - yTop
	if rowSpan == 0 {
		return
	}

	leftStep := lb.Sub(la).Scale(1 / rowSpan)
	rightStep := rb.Sub(ra).Scale(1 / rowSpan)

	yStart := ceilHalf(yTop)
	yEnd := ceilHalf(yBottom)
	if yStart < 0 {
		yStart = 0
	}
	if yEnd > height {
		yEnd = height
	}
	if yStart >= yEnd {
		return
	}

	preStepY := float32(yStart) + 0.5 - yTop
	left := la.Add(leftStep.Scale(preStepY))
	right := ra.Add(rightStep.Scale(preStepY))

	for y := yStart; y < yEnd; y++ {
		px0 := left.Position()[0]
		px1 := right.Position()[0]
		colSpan := px1 - px0

		xStart := ceilHalf(px0)
		xEnd := ceilHalf(px1)
		clippedXStart := xStart
		if clippedXStart < 0 {
			clippedXStart = 0
		}
		clippedXEnd := xEnd
		if clippedXEnd > width {
			clippedXEnd = width
		}

		if clippedXStart < clippedXEnd && colSpan != 0 {
			rowStep := right.Sub(left).Scale(1 / colSpan)
			preStepX := float32(clippedXStart) + 0.5 - px0
			cur := left.Add(rowStep.Scale(preStepX))
			for x := clippedXStart; x < clippedXEnd; x++ {
				emit(x, y, cur)
				cur = cur.Add(rowStep)
			}
		}

		left = left.Add(leftStep)
		right = right.Add(rightStep)
	}
}

// ceilHalf computes ceil(v - 0.5), the top-left fill rule's pixel-center
// rounding: a coordinate exactly on a pixel center belongs to that pixel,
// one that falls between centers rounds up to the next.
func ceilHalf(v float32) int {
	shifted := v - 0.5
	i := int(shifted)
	if float32(i) < shifted {
		i++
	}
	return i
}
