package target

import (
	"image"
	"math"
	"sync"
)

// ImageTarget is the reference Target implementation: an RGBA8 color
// buffer backed directly by an *image.NRGBA, plus a float32 depth buffer
// initialized to +Inf. Depth compare is fixed to "less wins" (§4.C); this
// CORE has no use for the teacher's fuller CompareFunc generality
// (Never/Equal/Greater/...), which belongs to a GPU pipeline's depth-state
// object, not a single-threaded software rasterizer's fixed invariant.
//
// Each pixel has its own mutex so concurrent fragment writes from
// DrawTrianglesParallel (possibly to overlapping pixels, if the caller's
// primitives overlap) serialize per pixel rather than racing on the shared
// depth slice and color backing array.
type ImageTarget struct {
	width, height int
	img           *image.NRGBA
	depth         []float32
	locks         []sync.Mutex
}

// NewImageTarget allocates an ImageTarget of the given size. Returns
// ErrZeroArea if either dimension is zero or negative, checked before any
// allocation.
func NewImageTarget(width, height int) (*ImageTarget, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrZeroArea
	}
	t := &ImageTarget{
		width:  width,
		height: height,
		img:    image.NewNRGBA(image.Rect(0, 0, width, height)),
		depth:  make([]float32, width*height),
		locks:  make([]sync.Mutex, width*height),
	}
	t.resetDepth()
	return t, nil
}

func (t *ImageTarget) resetDepth() {
	inf := float32(math.Inf(1))
	for i := range t.depth {
		t.depth[i] = inf
	}
}

// Size implements Target.
func (t *ImageTarget) Size() (width, height int) {
	return t.width, t.height
}

// Clear implements Target.
func (t *ImageTarget) Clear(color [4]float32) {
	r, g, b, a := toRGBA8(color)
	for y := 0; y < t.height; y++ {
		for x := 0; x < t.width; x++ {
			o := t.img.PixOffset(x, y)
			px := t.img.Pix[o : o+4 : o+4]
			px[0], px[1], px[2], px[3] = r, g, b, a
		}
	}
	t.resetDepth()
}

// PutPixel implements Target.
func (t *ImageTarget) PutPixel(x, y int, color [4]float32) {
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		panic("target: PutPixel out of bounds")
	}
	idx := y*t.width + x
	t.locks[idx].Lock()
	t.putPixelLocked(idx, color)
	t.locks[idx].Unlock()
}

// TestAndSetDepth implements Target.
func (t *ImageTarget) TestAndSetDepth(x, y int, depth float32) bool {
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		return false
	}
	idx := y*t.width + x
	t.locks[idx].Lock()
	passed := t.testAndSetDepthLocked(idx, depth)
	t.locks[idx].Unlock()
	return passed
}

// WriteFragment implements Target.
func (t *ImageTarget) WriteFragment(x, y int, depth float32, color [4]float32) bool {
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		return false
	}
	idx := y*t.width + x
	t.locks[idx].Lock()
	defer t.locks[idx].Unlock()
	if !t.testAndSetDepthLocked(idx, depth) {
		return false
	}
	t.putPixelLocked(idx, color)
	return true
}

func (t *ImageTarget) testAndSetDepthLocked(idx int, depth float32) bool {
	if depth < t.depth[idx] {
		t.depth[idx] = depth
		return true
	}
	return false
}

func (t *ImageTarget) putPixelLocked(idx int, color [4]float32) {
	r, g, b, a := toRGBA8(color)
	o := idx * 4
	px := t.img.Pix[o : o+4 : o+4]
	px[0], px[1], px[2], px[3] = r, g, b, a
}

// Present implements Target. It returns the live image, matching the
// teacher's Surface.GetFramebuffer "copy out the accumulated frame"
// intent but without the defensive copy: a Target is exclusively held by
// the pipeline for the call's duration (§5), so there is no concurrent
// writer to copy away from.
func (t *ImageTarget) Present() *image.NRGBA {
	return t.img
}

func toRGBA8(c [4]float32) (r, g, b, a uint8) {
	return clampByte(c[0]), clampByte(c[1]), clampByte(c[2]), clampByte(c[3])
}

func clampByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255)
}
