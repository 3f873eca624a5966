package raster

// FillMode selects how a triangle primitive is rasterized.
type FillMode uint8

const (
	// FillSolid scanline-fills the triangle interior.
	FillSolid FillMode = iota

	// FillWireframe rasterizes only the triangle's three edges, as lines.
	FillWireframe
)

// FrontFace selects which winding order survives back-face culling.
type FrontFace uint8

const (
	// FrontFaceCCW treats counter-clockwise winding as front-facing.
	FrontFaceCCW FrontFace = iota

	// FrontFaceCW treats clockwise winding as front-facing.
	FrontFaceCW
)
