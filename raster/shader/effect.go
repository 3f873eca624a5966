package shader

import "github.com/gogpu/rasterpipe/raster"

// VertexFunc is the per-vertex stage of an Effect: pure, applies the
// model-view-projection transform (and whatever attribute bookkeeping the
// effect needs) to produce a clip-space vertex.
type VertexFunc[V raster.Vertex[V]] func(v V) V

// FragmentFunc is the per-fragment stage of an Effect: pure, consumes the
// interpolated (perspective-corrected) vertex record and yields an RGBA
// color in [0, 1].
type FragmentFunc[V raster.Vertex[V]] func(v V) [4]float32

// Effect is the pair of vertex and fragment functions a Pipeline installs.
// Unlike the typical GPU-uniform-buffer shape (a shader function plus an
// opaque `any` uniform blob recovered with a type assertion), an Effect's
// functions close over whatever configuration they need, so the concrete
// effect and the vertex type it was built for are both known at compile
// time.
type Effect[V raster.Vertex[V]] struct {
	VertexStage   VertexFunc[V]
	FragmentStage FragmentFunc[V]
}

// IsValid reports whether both stages are set.
func (e Effect[V]) IsValid() bool {
	return e.VertexStage != nil && e.FragmentStage != nil
}

// Vertex implements raster.Effect[V], so an Effect can be installed
// directly on a raster.Pipeline.
func (e Effect[V]) Vertex(v V) V {
	return e.VertexStage(v)
}

// Fragment implements raster.Effect[V].
func (e Effect[V]) Fragment(v V) [4]float32 {
	return e.FragmentStage(v)
}

// Sampler is the minimal capability a fragment function needs from a
// texture to sample it: nearest-neighbor lookup at normalized coordinates.
// Defined here rather than imported so this package has no dependency on
// how a texture is stored; raster/target.Texture satisfies it structurally.
type Sampler interface {
	Sample(u, v float32) [4]float32
}

// NewSolidColorEffect returns an Effect[Basic] that transforms position by
// mvp and shades every fragment with a single uniform color, carried as
// the vertex's sole attribute so it survives clipping and interpolation
// unchanged.
func NewSolidColorEffect(mvp [16]float32, color [4]float32) Effect[raster.Basic] {
	return Effect[raster.Basic]{
		VertexStage: func(v raster.Basic) raster.Basic {
			pos := Mat4MulVec4(mvp, v.Pos)
			return raster.NewBasic(pos, color[:])
		},
		FragmentStage: func(v raster.Basic) [4]float32 {
			if len(v.Attrs) >= 4 {
				return [4]float32{v.Attrs[0], v.Attrs[1], v.Attrs[2], v.Attrs[3]}
			}
			return [4]float32{1, 1, 1, 1}
		},
	}
}

// NewVertexColorEffect returns an Effect[Basic] that transforms position by
// mvp and passes each vertex's own RGBA color attribute (Attrs[0:4]) through
// to the fragment stage, perspective-correctly interpolated.
func NewVertexColorEffect(mvp [16]float32) Effect[raster.Basic] {
	return Effect[raster.Basic]{
		VertexStage: func(v raster.Basic) raster.Basic {
			pos := Mat4MulVec4(mvp, v.Pos)
			return raster.NewBasic(pos, v.Attrs)
		},
		FragmentStage: func(v raster.Basic) [4]float32 {
			if len(v.Attrs) >= 4 {
				return [4]float32{v.Attrs[0], v.Attrs[1], v.Attrs[2], v.Attrs[3]}
			}
			return [4]float32{1, 1, 1, 1}
		},
	}
}

// NewTexturedEffect returns an Effect[Basic] that transforms position by
// mvp, carries each vertex's UV attribute (Attrs[0:2]) through, and samples
// tex in the fragment stage. tex may be nil; missing-texture fragments are
// shaded magenta, matching the convention of flagging a missing resource
// loudly rather than silently drawing black.
func NewTexturedEffect(mvp [16]float32, tex Sampler) Effect[raster.Basic] {
	return Effect[raster.Basic]{
		VertexStage: func(v raster.Basic) raster.Basic {
			pos := Mat4MulVec4(mvp, v.Pos)
			var uv []float32
			if len(v.Attrs) >= 2 {
				uv = []float32{v.Attrs[0], v.Attrs[1]}
			}
			return raster.NewBasic(pos, uv)
		},
		FragmentStage: func(v raster.Basic) [4]float32 {
			if tex == nil || len(v.Attrs) < 2 {
				return [4]float32{1, 0, 1, 1}
			}
			return tex.Sample(v.Attrs[0], v.Attrs[1])
		},
	}
}

// IdentityEffect returns an Effect[Basic] whose vertex stage passes its
// input through unchanged and whose fragment stage always shades white.
// Useful for isolating the rasterizer's geometric behavior from shading.
func IdentityEffect() Effect[raster.Basic] {
	return Effect[raster.Basic]{
		VertexStage:   func(v raster.Basic) raster.Basic { return v },
		FragmentStage: func(raster.Basic) [4]float32 { return [4]float32{1, 1, 1, 1} },
	}
}
