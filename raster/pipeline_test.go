package raster_test

import (
	"testing"

	"github.com/gogpu/rasterpipe/raster"
	"github.com/gogpu/rasterpipe/raster/shader"
	"github.com/gogpu/rasterpipe/raster/target"
)

// solidTriangle returns a triangle ordered so that, after the y-flip the
// viewport map applies, it is front-facing (CCW) under the pipeline's
// default FrontFaceCCW and so actually rasterizes rather than being culled.
func solidTriangle(z float32, color [4]float32) raster.Triangle[raster.Basic] {
	return raster.Triangle[raster.Basic]{
		A: raster.NewBasic([4]float32{-0.5, -0.5, z, 1}, color[:]),
		B: raster.NewBasic([4]float32{-0.5, 0.5, z, 1}, color[:]),
		C: raster.NewBasic([4]float32{0.5, -0.5, z, 1}, color[:]),
	}
}

func TestDrawTrianglesDepthOrderingIndependence(t *testing.T) {
	red := [4]float32{1, 0, 0, 1}
	blue := [4]float32{0, 0, 1, 1}

	near := solidTriangle(-0.5, red) // closer to the viewer
	far := solidTriangle(0.5, blue)

	runOrder := func(first, second raster.Triangle[raster.Basic]) [4]float32 {
		tgt, err := target.NewImageTarget(16, 16)
		if err != nil {
			t.Fatalf("NewImageTarget: %v", err)
		}
		tgt.Clear([4]float32{0, 0, 0, 1})

		effect := shader.NewVertexColorEffect(shader.Mat4Identity())
		p := raster.NewPipeline[raster.Basic](effect)
		p.DrawTriangles([]raster.Triangle[raster.Basic]{first, second}, tgt)

		img := tgt.Present()
		r, g, b, a := img.At(6, 10).RGBA()
		return [4]float32{float32(r), float32(g), float32(b), float32(a)}
	}

	frontFirst := runOrder(near, far)
	frontLast := runOrder(far, near)

	if frontFirst != frontLast {
		t.Errorf("depth test is order-dependent: drew-near-first=%v, drew-near-last=%v", frontFirst, frontLast)
	}
}

func TestDrawTrianglesBackFaceCulled(t *testing.T) {
	tgt, err := target.NewImageTarget(8, 8)
	if err != nil {
		t.Fatalf("NewImageTarget: %v", err)
	}
	tgt.Clear([4]float32{0, 0, 0, 1})

	effect := shader.IdentityEffect()
	p := raster.NewPipeline[raster.Basic](effect)
	p.FrontFace = raster.FrontFaceCCW

	// This vertex order yields a negative screen-space signed area (CW),
	// so under the default FrontFaceCCW it should be culled and leave
	// the target untouched.
	backFacing := raster.Triangle[raster.Basic]{
		A: raster.NewBasic([4]float32{-1, 1, 0, 1}, nil),
		B: raster.NewBasic([4]float32{-1, -1, 0, 1}, nil),
		C: raster.NewBasic([4]float32{1, 1, 0, 1}, nil),
	}

	p.DrawTriangles([]raster.Triangle[raster.Basic]{backFacing}, tgt)

	img := tgt.Present()
	cr, cg, cb, _ := img.At(2, 2).RGBA()
	if cr != 0 || cg != 0 || cb != 0 {
		t.Errorf("pixel (2, 2) changed by a back-facing triangle: (%d, %d, %d)", cr, cg, cb)
	}
}

func TestDrawTrianglesWireframeDoesNotFillInterior(t *testing.T) {
	tgt, err := target.NewImageTarget(16, 16)
	if err != nil {
		t.Fatalf("NewImageTarget: %v", err)
	}
	tgt.Clear([4]float32{0, 0, 0, 0})

	effect := shader.NewSolidColorEffect(shader.Mat4Identity(), [4]float32{1, 1, 1, 1})
	p := raster.NewPipeline[raster.Basic](effect)
	p.FillMode = raster.FillWireframe

	tri := solidTriangle(0, [4]float32{1, 1, 1, 1})
	p.DrawTriangles([]raster.Triangle[raster.Basic]{tri}, tgt)

	img := tgt.Present()
	_, _, _, centerA := img.At(6, 10).RGBA()
	if centerA != 0 {
		t.Errorf("wireframe mode filled the triangle interior: center alpha = %d", centerA)
	}
}

func TestPipelineDefaults(t *testing.T) {
	p := raster.NewPipeline[raster.Basic](shader.IdentityEffect())
	if p.FillMode != raster.FillSolid {
		t.Errorf("default FillMode = %v, want FillSolid", p.FillMode)
	}
	if p.FrontFace != raster.FrontFaceCCW {
		t.Errorf("default FrontFace = %v, want FrontFaceCCW", p.FrontFace)
	}
}

// quadrantTriangle returns a front-facing triangle confined to one quadrant
// of NDC space, so that triangles built from distinct (ox, oy) offsets never
// touch the same pixels and the final image does not depend on which
// worker draws which triangle first.
func quadrantTriangle(ox, oy float32, color [4]float32) raster.Triangle[raster.Basic] {
	return raster.Triangle[raster.Basic]{
		A: raster.NewBasic([4]float32{ox - 0.4, oy - 0.4, 0, 1}, color[:]),
		B: raster.NewBasic([4]float32{ox - 0.4, oy + 0.4, 0, 1}, color[:]),
		C: raster.NewBasic([4]float32{ox + 0.4, oy - 0.4, 0, 1}, color[:]),
	}
}

// TestDrawTrianglesParallelOverlappingPrimitivesSettle exercises concurrent
// WriteFragment calls to the *same* pixels from multiple workers (run with
// -race to confirm no data race, per target.ImageTarget's per-pixel
// locking): several overlapping triangles at distinct depths, all dispatched
// across a worker pool. The nearest triangle must win the depth test at the
// checked pixel, and the pixel must hold exactly that triangle's color, not
// a mix of two writers' color channels.
func TestDrawTrianglesParallelOverlappingPrimitivesSettle(t *testing.T) {
	colors := [][4]float32{
		{1, 0, 0, 1},
		{0, 1, 0, 1},
		{0, 0, 1, 1},
		{1, 1, 0, 1},
	}
	depths := []float32{0.8, 0.6, 0.4, 0.2} // {1,1,0,1} (index 3) is nearest
	prims := make([]raster.Triangle[raster.Basic], len(colors))
	for i, c := range colors {
		prims[i] = solidTriangle(depths[i], c)
	}

	tgt, err := target.NewImageTarget(16, 16)
	if err != nil {
		t.Fatalf("NewImageTarget: %v", err)
	}
	tgt.Clear([4]float32{0, 0, 0, 1})

	p := raster.NewPipeline[raster.Basic](shader.NewVertexColorEffect(shader.Mat4Identity()))
	p.Workers = 4
	p.DrawTrianglesParallel(prims, tgt)

	img := tgt.Present()
	r, g, b, _ := img.At(6, 10).RGBA()
	wantR, wantG, wantB, _ := colorToRGBA(colors[3])
	if r != wantR || g != wantG || b != wantB {
		t.Errorf("center pixel = (%d, %d, %d), want the nearest triangle's color (%d, %d, %d)",
			r, g, b, wantR, wantG, wantB)
	}
}

func colorToRGBA(c [4]float32) (r, g, b, a uint32) {
	scaled := [4]uint32{}
	for i, v := range c {
		if v >= 1 {
			scaled[i] = 0xffff
		} else if v <= 0 {
			scaled[i] = 0
		} else {
			scaled[i] = uint32(v*255) * 0x101
		}
	}
	return scaled[0], scaled[1], scaled[2], scaled[3]
}

func TestDrawTrianglesParallelMatchesSerial(t *testing.T) {
	offsets := [][2]float32{{-0.5, -0.5}, {0.5, -0.5}, {-0.5, 0.5}, {0.5, 0.5}}
	prims := make([]raster.Triangle[raster.Basic], 0, len(offsets))
	for _, o := range offsets {
		prims = append(prims, quadrantTriangle(o[0], o[1], [4]float32{1, 1, 0, 1}))
	}

	serial, err := target.NewImageTarget(16, 16)
	if err != nil {
		t.Fatalf("NewImageTarget: %v", err)
	}
	serial.Clear([4]float32{0, 0, 0, 1})
	serialPipeline := raster.NewPipeline[raster.Basic](shader.NewVertexColorEffect(shader.Mat4Identity()))
	serialPipeline.DrawTriangles(prims, serial)

	parallel, err := target.NewImageTarget(16, 16)
	if err != nil {
		t.Fatalf("NewImageTarget: %v", err)
	}
	parallel.Clear([4]float32{0, 0, 0, 1})
	parallelPipeline := raster.NewPipeline[raster.Basic](shader.NewVertexColorEffect(shader.Mat4Identity()))
	parallelPipeline.Workers = 4
	parallelPipeline.DrawTrianglesParallel(prims, parallel)

	serialImg, parallelImg := serial.Present(), parallel.Present()
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			sr, sg, sb, sa := serialImg.At(x, y).RGBA()
			pr, pg, pb, pa := parallelImg.At(x, y).RGBA()
			if sr != pr || sg != pg || sb != pb || sa != pa {
				t.Fatalf("parallel draw diverged from serial at (%d, %d): serial=(%d,%d,%d,%d) parallel=(%d,%d,%d,%d)",
					x, y, sr, sg, sb, sa, pr, pg, pb, pa)
			}
		}
	}
}
