package raster

import (
	"github.com/gogpu/rasterpipe/raster/target"
)

// Effect is the capability a Pipeline needs from a shader pair: a pure
// per-vertex transform and a pure per-fragment color function. The
// raster/shader package's Effect[V] type satisfies this through its Vertex
// and Fragment methods, without raster importing that package — this
// keeps the dependency one-directional (shader depends on raster, not the
// other way around) while still letting SPEC_FULL's shader machinery live
// in its own package.
type Effect[V Vertex[V]] interface {
	Vertex(v V) V
	Fragment(v V) [4]float32
}

// Pipeline orchestrates the full stage sequence — vertex transform,
// primitive assembly, culling, clipping, perspective divide, viewport map,
// rasterization, depth test, fragment shading, pixel write — for lines and
// triangles, indexed or assembled. It is generic over the vertex type V,
// which must satisfy Vertex[V] (§4.A).
//
// A Pipeline takes no locks and spawns no goroutines on its default draw
// path: spec.md §5 fixes the scheduling model as single-threaded and
// synchronous, unlike the teacher's Pipeline, which wraps every accessor
// in a mutex because it sits behind a HAL shared by several concurrently
// driven GPU backends. Workers, when set above 1, opts into the parallel
// path described on DrawTrianglesParallel; it is additive and does not
// change the semantics of the default methods.
type Pipeline[V Vertex[V]] struct {
	FillMode  FillMode
	FrontFace FrontFace
	Effect    Effect[V]

	// Workers, when > 1, makes DrawTrianglesParallel/
	// DrawIndexedTrianglesParallel shard triangles (one task per
	// triangle) across a worker pool of that size instead of running
	// single-threaded. It has no effect
	// on DrawTriangles/DrawLines.
	Workers int
}

// NewPipeline returns a Pipeline with front_face = CounterClockwise and
// fill_mode = Solid, matching spec.md §3's pipeline-state defaults.
func NewPipeline[V Vertex[V]](effect Effect[V]) *Pipeline[V] {
	return &Pipeline[V]{
		FillMode:  FillSolid,
		FrontFace: FrontFaceCCW,
		Effect:    effect,
	}
}

// DrawLines draws each assembled line primitive.
func (p *Pipeline[V]) DrawLines(prims []Line[V], t target.Target) {
	scratch := make([]Line[V], len(prims))
	copy(scratch, prims)
	for _, ln := range scratch {
		p.drawLine(p.Effect.Vertex(ln.A), p.Effect.Vertex(ln.B), t)
	}
}

// DrawIndexedLines dereferences indices against vertices and draws each
// resulting line primitive.
func (p *Pipeline[V]) DrawIndexedLines(vertices []V, indices []Line[uint32], t target.Target) {
	verts := make([]V, len(vertices))
	copy(verts, vertices)
	idx := make([]Line[uint32], len(indices))
	copy(idx, indices)

	shaded := p.shadeVertices(verts)
	for _, ln := range idx {
		p.drawLine(shaded[ln.A], shaded[ln.B], t)
	}
}

// DrawTriangles draws each assembled triangle primitive.
func (p *Pipeline[V]) DrawTriangles(prims []Triangle[V], t target.Target) {
	scratch := make([]Triangle[V], len(prims))
	copy(scratch, prims)
	width, height := t.Size()
	for _, tri := range scratch {
		p.drawTriangle(p.Effect.Vertex(tri.A), p.Effect.Vertex(tri.B), p.Effect.Vertex(tri.C), width, height, t)
	}
}

// DrawIndexedTriangles dereferences indices against vertices and draws
// each resulting triangle primitive.
func (p *Pipeline[V]) DrawIndexedTriangles(vertices []V, indices []Triangle[uint32], t target.Target) {
	verts := make([]V, len(vertices))
	copy(verts, vertices)
	idx := make([]Triangle[uint32], len(indices))
	copy(idx, indices)

	shaded := p.shadeVertices(verts)
	width, height := t.Size()
	for _, tri := range idx {
		p.drawTriangle(shaded[tri.A], shaded[tri.B], shaded[tri.C], width, height, t)
	}
}

// shadeVertices applies the effect's vertex stage once per unique input
// vertex — the indexed-draw case of §4.G step 2.
func (p *Pipeline[V]) shadeVertices(vertices []V) []V {
	out := make([]V, len(vertices))
	for i, v := range vertices {
		out[i] = p.Effect.Vertex(v)
	}
	return out
}

// drawLine applies the remainder of §4.G's line path — full-frustum
// clipping, divide/viewport, rasterize — to two already vertex-shaded
// endpoints.
func (p *Pipeline[V]) drawLine(a, b V, t target.Target) {
	width, height := t.Size()

	ca, cb, ok := ClipLine(a, b)
	if !ok {
		return
	}

	sa := divideAndViewport(ca, width, height)
	sb := divideAndViewport(cb, width, height)

	RasterizeLine(sa, sb, func(x, y int, v V) {
		p.shadeFragment(t, x, y, v, width, height)
	})
}

// drawTriangle applies §4.G's triangle path in the fixed order divide ->
// viewport -> winding test -> clip (§9's Open Question resolution: winding
// is meaningful only once vertices are in screen space).
func (p *Pipeline[V]) drawTriangle(a, b, c V, width, height int, t target.Target) {
	sa := divideAndViewport(a, width, height)
	sb := divideAndViewport(b, width, height)
	sc := divideAndViewport(c, width, height)

	winding := ComputeWinding(sa, sb, sc)
	if ShouldCullBackFace(winding, p.FrontFace) {
		return
	}

	for _, tri := range ClipTriangleNearPlane(sa, sb, sc) {
		p.rasterizeClippedTriangle(tri.A, tri.B, tri.C, width, height, t)
	}
}

func (p *Pipeline[V]) rasterizeClippedTriangle(a, b, c V, width, height int, t target.Target) {
	emit := func(x, y int, v V) {
		p.shadeFragment(t, x, y, v, width, height)
	}

	if p.FillMode == FillWireframe {
		RasterizeLine(a, b, emit)
		RasterizeLine(b, c, emit)
		RasterizeLine(c, a, emit)
		return
	}

	RasterizeTriangle(a, b, c, width, height, emit)
}

// DrawTrianglesParallel is the opt-in parallel path §5 describes: the
// natural shard for an implementation that elects to parallelize is
// per-primitive. This submits one WorkerPool task per triangle; each
// worker only ever touches the target through shadeFragment's
// WriteFragment call, which a Target implementation must make safe for
// concurrent calls even at the *same* pixel (ImageTarget locks per pixel,
// so overlapping primitives drawn by different workers still linearize
// correctly instead of racing between the depth test and the color
// write). If Workers <= 1 this behaves exactly like DrawTriangles.
func (p *Pipeline[V]) DrawTrianglesParallel(prims []Triangle[V], t target.Target) {
	if p.Workers <= 1 {
		p.DrawTriangles(prims, t)
		return
	}

	scratch := make([]Triangle[V], len(prims))
	copy(scratch, prims)
	width, height := t.Size()

	pool := NewWorkerPool(p.Workers)
	pool.Start()
	defer pool.Close()

	for _, tri := range scratch {
		a := p.Effect.Vertex(tri.A)
		b := p.Effect.Vertex(tri.B)
		c := p.Effect.Vertex(tri.C)
		pool.Submit(func() {
			p.drawTriangle(a, b, c, width, height, t)
		})
	}
	pool.Wait()
}

// DrawIndexedTrianglesParallel is DrawTrianglesParallel's indexed-input
// counterpart.
func (p *Pipeline[V]) DrawIndexedTrianglesParallel(vertices []V, indices []Triangle[uint32], t target.Target) {
	if p.Workers <= 1 {
		p.DrawIndexedTriangles(vertices, indices, t)
		return
	}

	verts := make([]V, len(vertices))
	copy(verts, vertices)
	idx := make([]Triangle[uint32], len(indices))
	copy(idx, indices)

	shaded := p.shadeVertices(verts)
	width, height := t.Size()

	pool := NewWorkerPool(p.Workers)
	pool.Start()
	defer pool.Close()

	for _, tri := range idx {
		a, b, c := shaded[tri.A], shaded[tri.B], shaded[tri.C]
		pool.Submit(func() {
			p.drawTriangle(a, b, c, width, height, t)
		})
	}
	pool.Wait()
}

// shadeFragment is §4.E.3's fragment step: perspective-correct recovery and
// fragment shade, then the depth test and the write as one call, which
// discards the color when the test fails. it carries a screen-space position
// [x, y, z_ndc, invW] with attributes premultiplied by invW, the
// representation divideAndViewport produces.
//
// The depth test and the color write happen through target.Target's
// combined WriteFragment rather than a separate TestAndSetDepth/PutPixel
// pair: DrawTrianglesParallel may call shadeFragment for overlapping
// pixels from different goroutines, and the two calls left unguarded as a
// pair would let another goroutine's write land between this one's
// passed depth test and its pixel write.
func (p *Pipeline[V]) shadeFragment(t target.Target, x, y int, it V, width, height int) {
	if x < 0 || x >= width || y < 0 || y >= height {
		return
	}
	pos := it.Position()
	zNDC := pos[2]
	invW := pos[3]
	v := it
	if invW != 0 {
		v = it.Scale(1 / invW)
	}
	color := p.Effect.Fragment(v)
	t.WriteFragment(x, y, zNDC, color)
}

// divideAndViewport performs the perspective divide and viewport map in
// one pass: scaling the whole vertex record by 1/w both divides position
// and premultiplies every attribute by 1/w (§4.A, §4.G), the representation
// the rasterizer interpolates linearly and the fragment step later
// reverses. The position's x, y are then mapped from NDC to pixel space and
// its w slot is overwritten with 1/w for the fragment step to recover.
func divideAndViewport[V Vertex[V]](v V, width, height int) V {
	clipPos := v.Position()
	invW := 1 / clipPos[3]

	ndc := v.Scale(invW)
	ndcPos := ndc.Position()

	xScreen := (ndcPos[0] + 1) * float32(width) / 2
	yScreen := (1 - ndcPos[1]) * float32(height) / 2

	return ReplacePosition(ndc, [4]float32{xScreen, yScreen, ndcPos[2], invW})
}
