package raster

// Line is an ordered pair over T, which is either a vertex value (an
// assembled primitive) or an index into a vertex table (an indexed
// primitive). The driver's four entry points are the Cartesian product of
// {Line, Triangle} x {assembled, indexed}, so the same tuple shape serves
// both forms by varying T.
type Line[T any] struct {
	A, B T
}

// Triangle is an ordered triple over T, with the same assembled/indexed
// duality as Line.
type Triangle[T any] struct {
	A, B, C T
}

// Winding classifies a screen-space triangle's vertex order.
type Winding uint8

const (
	// Degenerate marks a triangle whose screen-space area is zero (its
	// three vertices are collinear, or coincide).
	Degenerate Winding = iota

	// CCW marks a counter-clockwise triangle.
	CCW

	// CW marks a clockwise triangle.
	CW
)

func (w Winding) String() string {
	switch w {
	case CCW:
		return "CCW"
	case CW:
		return "CW"
	default:
		return "Degenerate"
	}
}
