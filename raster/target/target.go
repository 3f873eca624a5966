// Package target provides the render target the pipeline draws into: a
// fixed-size color buffer paired with a depth buffer, exposed through the
// small interface the pipeline actually needs (size, clear, pixel write,
// depth test-and-set, present).
package target

import "image"

// Target is the abstract pixel sink a Pipeline draws into. The pipeline
// exclusively holds a Target for the duration of one draw call (see
// raster.Pipeline); callers must not access it concurrently with a draw in
// progress.
type Target interface {
	// Size returns the target's width and height in pixels.
	Size() (width, height int)

	// Clear fills the color buffer with color and resets the depth buffer
	// to its initial (farthest) value.
	Clear(color [4]float32)

	// PutPixel writes color at (x, y). x and y must satisfy
	// 0 <= x < width, 0 <= y < height; an out-of-range call panics, since
	// the rasterizer is responsible for never emitting one (§8.1
	// containment).
	PutPixel(x, y int, color [4]float32)

	// TestAndSetDepth performs an atomic read-compare-write at (x, y):
	// if depth is less than the stored value, the stored value is
	// replaced and true is returned; otherwise the buffer is left
	// unchanged and false is returned. Out-of-range coordinates always
	// return false.
	TestAndSetDepth(x, y int, depth float32) bool

	// WriteFragment performs the depth test and, if it passes, the color
	// write as one atomic step at (x, y): equivalent to TestAndSetDepth
	// followed by PutPixel, but without the gap between them where a
	// concurrent writer to the same pixel could interleave. Callers that
	// may run concurrently against overlapping pixels (DrawTrianglesParallel
	// and its indexed counterpart) must use this instead of the two calls
	// separately. Out-of-range coordinates return false and write nothing.
	WriteFragment(x, y int, depth float32, color [4]float32) bool

	// Present publishes the accumulated frame as an image.
	Present() *image.NRGBA
}
