package raster

import "testing"

func TestRasterizeLineHorizontal(t *testing.T) {
	a := NewBasic([4]float32{0, 5, 0, 1}, nil)
	b := NewBasic([4]float32{4, 5, 0, 1}, nil)

	var xs []int
	RasterizeLine(a, b, func(x, y int, v Basic) {
		if y != 5 {
			t.Errorf("unexpected y = %d, want 5", y)
		}
		xs = append(xs, x)
	})

	want := []int{0, 1, 2, 3}
	if len(xs) != len(want) {
		t.Fatalf("got %v pixels, want %v", xs, want)
	}
	for i, x := range want {
		if xs[i] != x {
			t.Errorf("xs[%d] = %d, want %d", i, xs[i], x)
		}
	}
}

func TestRasterizeLineSharedEndpointNotDoubleWritten(t *testing.T) {
	a := NewBasic([4]float32{0, 0, 0, 1}, nil)
	mid := NewBasic([4]float32{4, 0, 0, 1}, nil)
	b := NewBasic([4]float32{8, 0, 0, 1}, nil)

	counts := map[int]int{}
	emit := func(x, y int, v Basic) { counts[x]++ }

	RasterizeLine(a, mid, emit)
	RasterizeLine(mid, b, emit)

	if counts[4] != 1 {
		t.Errorf("shared endpoint x=4 written %d times, want 1", counts[4])
	}
}

func TestRasterizeLineDegenerateSinglePixel(t *testing.T) {
	a := NewBasic([4]float32{3, 3, 0, 1}, nil)
	b := NewBasic([4]float32{3, 3, 0, 1}, nil)

	n := 0
	RasterizeLine(a, b, func(x, y int, v Basic) { n++ })
	if n != 1 {
		t.Errorf("degenerate line emitted %d pixels, want 1", n)
	}
}
