package raster

// Vertex is the affine-algebra contract the pipeline requires of a vertex
// record. A vertex is an element of a vector space over its fields: the
// distinguished clip-space position plus zero or more user attributes
// (color, UV, normal, ...). The pipeline is polymorphic over V provided V
// satisfies this interface — parametric generics stand in for the
// "capability set" spec.md describes (position projection, affine ops,
// interpolation).
//
// Implementations must treat Add, Sub and Scale as pure: they return a new
// value and must not mutate the receiver, since the driver and clipper
// freely share vertex values across primitives.
type Vertex[V any] interface {
	// Position returns the clip-space (x, y, z, w) tuple.
	Position() [4]float32

	// Add returns the component-wise sum of the receiver and other,
	// across position and all user attributes.
	Add(other V) V

	// Sub returns the component-wise difference of the receiver and other.
	Sub(other V) V

	// Scale returns the receiver with every component (position and all
	// attributes) multiplied by t.
	Scale(t float32) V
}

// Lerp computes the affine combination (1-t)*a + t*b. This is the single
// definition of vertex interpolation the rest of the package uses: the
// clipper blends endpoints across a cut plane with it, and the rasterizer
// finds the split point on a triangle's major edge with it.
//
//	Lerp(a, b, 0) == a
//	Lerp(a, b, 1) == b
func Lerp[V Vertex[V]](a, b V, t float32) V {
	return a.Scale(1 - t).Add(b.Scale(t))
}

// Basic is a reference Vertex implementation: a clip-space position plus an
// open-ended slice of scalar attributes (color, UV, normal, ...). It plays
// the role the teacher pack's ClipSpaceVertex/ScreenVertex types play, but
// satisfies Vertex[Basic] so it works with the generic pipeline.
//
// All arithmetic is component-wise over Pos and Attrs. Operating on two
// Basic values whose Attrs have different lengths is a programming error;
// the shorter length is used (extra attributes are silently dropped), since
// the driver guarantees every vertex drawn together comes from the same
// vertex layout.
type Basic struct {
	Pos   [4]float32
	Attrs []float32
}

// NewBasic creates a Basic vertex from a clip-space position and a copy of
// the given attributes. The input slice is copied so the caller's storage
// is never aliased.
func NewBasic(pos [4]float32, attrs []float32) Basic {
	var cp []float32
	if len(attrs) > 0 {
		cp = make([]float32, len(attrs))
		copy(cp, attrs)
	}
	return Basic{Pos: pos, Attrs: cp}
}

// Position implements Vertex[Basic].
func (v Basic) Position() [4]float32 {
	return v.Pos
}

// Add implements Vertex[Basic].
func (v Basic) Add(o Basic) Basic {
	out := Basic{
		Pos: [4]float32{
			v.Pos[0] + o.Pos[0],
			v.Pos[1] + o.Pos[1],
			v.Pos[2] + o.Pos[2],
			v.Pos[3] + o.Pos[3],
		},
	}
	n := attrLen(v, o)
	if n > 0 {
		out.Attrs = make([]float32, n)
		for i := 0; i < n; i++ {
			out.Attrs[i] = v.Attrs[i] + o.Attrs[i]
		}
	}
	return out
}

// Sub implements Vertex[Basic].
func (v Basic) Sub(o Basic) Basic {
	out := Basic{
		Pos: [4]float32{
			v.Pos[0] - o.Pos[0],
			v.Pos[1] - o.Pos[1],
			v.Pos[2] - o.Pos[2],
			v.Pos[3] - o.Pos[3],
		},
	}
	n := attrLen(v, o)
	if n > 0 {
		out.Attrs = make([]float32, n)
		for i := 0; i < n; i++ {
			out.Attrs[i] = v.Attrs[i] - o.Attrs[i]
		}
	}
	return out
}

// Scale implements Vertex[Basic].
func (v Basic) Scale(t float32) Basic {
	out := Basic{
		Pos: [4]float32{v.Pos[0] * t, v.Pos[1] * t, v.Pos[2] * t, v.Pos[3] * t},
	}
	if len(v.Attrs) > 0 {
		out.Attrs = make([]float32, len(v.Attrs))
		for i, a := range v.Attrs {
			out.Attrs[i] = a * t
		}
	}
	return out
}

// Div returns the receiver with every component divided by s. Division is
// not part of the Vertex[V] contract (Scale(1/s) covers it), but the
// perspective-divide stage reads more naturally as Div.
func (v Basic) Div(s float32) Basic {
	return v.Scale(1 / s)
}

func attrLen(a, b Basic) int {
	n := len(a.Attrs)
	if len(b.Attrs) < n {
		n = len(b.Attrs)
	}
	return n
}

// ReplacePosition returns v with its position component replaced by pos,
// leaving every attribute untouched. This is position-only surgery on an
// otherwise-opaque Vertex[V]: the clipper uses it to snap a blended point
// exactly onto a cut plane, and the divide/viewport stage uses it to carry
// a vertex from NDC into screen space without perturbing its (already
// perspective-premultiplied) attributes.
func ReplacePosition[V Vertex[V]](v V, pos [4]float32) V {
	cur := v.Position()
	delta := [4]float32{
		pos[0] - cur[0],
		pos[1] - cur[1],
		pos[2] - cur[2],
		pos[3] - cur[3],
	}
	return v.Add(positionOnlyDelta(v, delta))
}
