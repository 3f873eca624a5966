// Package shader provides pluggable per-vertex and per-fragment stages for
// the raster pipeline, plus the column-major 4x4 matrix helpers its builtin
// effects use to build a model-view-projection transform.
package shader

// Mat4MulVec4 multiplies a column-major 4x4 matrix by a vec4.
func Mat4MulVec4(m [16]float32, v [4]float32) [4]float32 {
	return [4]float32{
		m[0]*v[0] + m[4]*v[1] + m[8]*v[2] + m[12]*v[3],
		m[1]*v[0] + m[5]*v[1] + m[9]*v[2] + m[13]*v[3],
		m[2]*v[0] + m[6]*v[1] + m[10]*v[2] + m[14]*v[3],
		m[3]*v[0] + m[7]*v[1] + m[11]*v[2] + m[15]*v[3],
	}
}

// Mat4Identity returns a 4x4 identity matrix.
func Mat4Identity() [16]float32 {
	return [16]float32{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4Translate creates a translation matrix.
func Mat4Translate(x, y, z float32) [16]float32 {
	return [16]float32{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// Mat4Scale creates a scale matrix.
func Mat4Scale(x, y, z float32) [16]float32 {
	return [16]float32{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// Mat4Ortho creates an orthographic projection matrix from the view volume
// bounds left, right, bottom, top, near, far.
func Mat4Ortho(left, right, bottom, top, near, far float32) [16]float32 {
	rml := right - left
	tmb := top - bottom
	fmn := far - near

	return [16]float32{
		2 / rml, 0, 0, 0,
		0, 2 / tmb, 0, 0,
		0, 0, -2 / fmn, 0,
		-(right + left) / rml, -(top + bottom) / tmb, -(far + near) / fmn, 1,
	}
}

// Mat4Mul multiplies two column-major 4x4 matrices, returning a*b.
func Mat4Mul(a, b [16]float32) [16]float32 {
	var result [16]float32
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[k*4+row] * b[col*4+k]
			}
			result[col*4+row] = sum
		}
	}
	return result
}
