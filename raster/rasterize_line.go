package raster

// LineFragmentFunc receives one rasterized pixel position and the vertex
// record interpolated to that position.
type LineFragmentFunc[V Vertex[V]] func(x, y int, v V)

// RasterizeLine walks a line segment already in post-viewport screen-pixel
// space (y growing downward) using a DDA stepper and calls emit once per
// pixel.
//
// The step count is max(|dx|, |dy|); each step advances the full vertex
// record (position and attributes alike) by delta/steps, so attribute
// interpolation along the line is exact DDA, not recomputed per pixel. The
// walk is inclusive of the first sample and exclusive of the last, so two
// lines sharing an endpoint never both write that pixel.
func RasterizeLine[V Vertex[V]](a, b V, emit LineFragmentFunc[V]) {
	pa := a.Position()
	pb := b.Position()

	dx := pb[0] - pa[0]
	dy := pb[1] - pa[1]

	adx, ady := dx, dy
	if adx < 0 {
		adx = -adx
	}
	if ady < 0 {
		ady = -ady
	}
	steps := adx
	if ady > steps {
		steps = ady
	}

	n := int(steps)
	if n < 1 {
		n = 1
	}

	delta := b.Sub(a).Scale(1 / float32(n))
	cur := a
	for i := 0; i < n; i++ {
		p := cur.Position()
		emit(int(p[0]), int(p[1]), cur)
		cur = cur.Add(delta)
	}
}
