package imgcc

import "math"

// RowMatrix is a 3x3 transform expressed row-major. It is used both for
// homogeneous 2D affine placement (the last column carries the translation
// and the last row is [0 0 1]) and for color transforms
// (RGB<->XYZ, chromatic adaptation, Oklab/SrLab2 linearization), where all
// nine entries participate and there is no translation component.
//
//	| m00 m01 m02 |
//	| m10 m11 m12 |
//	| m20 m21 m22 |
type RowMatrix struct {
	M00, M01, M02 float64
	M10, M11, M12 float64
	M20, M21, M22 float64
}

// IdentityMatrix returns the 3x3 identity.
func IdentityMatrix() RowMatrix {
	return RowMatrix{
		M00: 1, M01: 0, M02: 0,
		M10: 0, M11: 1, M12: 0,
		M20: 0, M21: 0, M22: 1,
	}
}

// NewAffine2D builds a RowMatrix representing the 2D affine map
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
//
// in homogeneous form, i.e. with a bottom row of [0 0 1].
func NewAffine2D(a, b, c, d, e, f float64) RowMatrix {
	return RowMatrix{
		M00: a, M01: b, M02: c,
		M10: d, M11: e, M12: f,
		M20: 0, M21: 0, M22: 1,
	}
}

// Det returns the determinant.
func (m RowMatrix) Det() float64 {
	return m.M00*(m.M11*m.M22-m.M12*m.M21) -
		m.M01*(m.M10*m.M22-m.M12*m.M20) +
		m.M02*(m.M10*m.M21-m.M11*m.M20)
}

// Inv returns the inverse matrix and whether it was invertible. The caller
// is expected to have already checked |det| against a tolerance (e.g. the
// affine-placement validation in the ir package checks against the float32
// machine epsilon, 1.1920929e-7, per spec §4.3) before
// relying on the returned matrix.
func (m RowMatrix) Inv() (RowMatrix, bool) {
	det := m.Det()
	if det == 0 {
		return RowMatrix{}, false
	}
	invDet := 1 / det

	return RowMatrix{
		M00: (m.M11*m.M22 - m.M12*m.M21) * invDet,
		M01: (m.M02*m.M21 - m.M01*m.M22) * invDet,
		M02: (m.M01*m.M12 - m.M02*m.M11) * invDet,
		M10: (m.M12*m.M20 - m.M10*m.M22) * invDet,
		M11: (m.M00*m.M22 - m.M02*m.M20) * invDet,
		M12: (m.M02*m.M10 - m.M00*m.M12) * invDet,
		M20: (m.M10*m.M21 - m.M11*m.M20) * invDet,
		M21: (m.M01*m.M20 - m.M00*m.M21) * invDet,
		M22: (m.M00*m.M11 - m.M01*m.M10) * invDet,
	}, true
}

// MultiplyRight returns m * other: applying the result to a vector first
// applies other, then m.
func (m RowMatrix) MultiplyRight(other RowMatrix) RowMatrix {
	return RowMatrix{
		M00: m.M00*other.M00 + m.M01*other.M10 + m.M02*other.M20,
		M01: m.M00*other.M01 + m.M01*other.M11 + m.M02*other.M21,
		M02: m.M00*other.M02 + m.M01*other.M12 + m.M02*other.M22,

		M10: m.M10*other.M00 + m.M11*other.M10 + m.M12*other.M20,
		M11: m.M10*other.M01 + m.M11*other.M11 + m.M12*other.M21,
		M12: m.M10*other.M02 + m.M11*other.M12 + m.M12*other.M22,

		M20: m.M20*other.M00 + m.M21*other.M10 + m.M22*other.M20,
		M21: m.M20*other.M01 + m.M21*other.M11 + m.M22*other.M21,
		M22: m.M20*other.M02 + m.M21*other.M12 + m.M22*other.M22,
	}
}

// Transpose returns the transposed matrix.
func (m RowMatrix) Transpose() RowMatrix {
	return RowMatrix{
		M00: m.M00, M01: m.M10, M02: m.M20,
		M10: m.M01, M11: m.M11, M12: m.M21,
		M20: m.M02, M21: m.M12, M22: m.M22,
	}
}

// ApplyPoint transforms a 2D point in homogeneous coordinates (z=1),
// dropping back to 2D by ignoring the resulting z (which is M20*x+M21*y+M22,
// equal to 1 for an affine placement matrix).
func (m RowMatrix) ApplyPoint(x, y float64) (float64, float64) {
	return m.M00*x + m.M01*y + m.M02, m.M10*x + m.M11*y + m.M12
}

// ApproxEqual reports whether every entry of m and other differs by no more
// than eps, used by the round-trip laws in §8 (composed conversion matrices
// within 1e-5 of identity).
func (m RowMatrix) ApproxEqual(other RowMatrix, eps float64) bool {
	d := func(a, b float64) bool { return math.Abs(a-b) <= eps }
	return d(m.M00, other.M00) && d(m.M01, other.M01) && d(m.M02, other.M02) &&
		d(m.M10, other.M10) && d(m.M11, other.M11) && d(m.M12, other.M12) &&
		d(m.M20, other.M20) && d(m.M21, other.M21) && d(m.M22, other.M22)
}

// Std140Mat3x3 packs the matrix as a std140 mat3x3: three columns, each
// padded to a 16-byte (4-float) stride, for 12 floats total. Column-major,
// matching WGSL's mat3x3<f32> layout.
func (m RowMatrix) Std140Mat3x3() [12]float32 {
	return [12]float32{
		float32(m.M00), float32(m.M10), float32(m.M20), 0,
		float32(m.M01), float32(m.M11), float32(m.M21), 0,
		float32(m.M02), float32(m.M12), float32(m.M22), 0,
	}
}
