package shader

import "github.com/gogpu/imgcc"

// LinearColorMatrix applies a 3x3 RGB-space transform (color conversion or
// chromatic adaptation) to every texel, packed as a single std140 mat3x3.
type LinearColorMatrix struct {
	Matrix imgcc.RowMatrix
	Spirv  []byte
}

func (s LinearColorMatrix) Key() (Key, bool) { return KeyLinearColorMatrix(), true }
func (s LinearColorMatrix) SpirvSource() []byte { return s.Spirv }
func (s LinearColorMatrix) NumArgs() uint32     { return 1 }

func (s LinearColorMatrix) BinaryData(buf *[]byte) (int, int, bool) {
	start, n := appendStd140Mat3x3(buf, s.Matrix)
	return start, n, true
}

// Box3 convolves with a 3x3 kernel packed the same way as LinearColorMatrix
// (the kernel is carried as a RowMatrix for uniform-packing reuse), used by
// Derivative's Prewitt/Sobel/Scharr selections.
type Box3 struct {
	Matrix imgcc.RowMatrix
	Spirv  []byte
}

func (s Box3) Key() (Key, bool) { return KeyBox3(), true }
func (s Box3) SpirvSource() []byte { return s.Spirv }
func (s Box3) NumArgs() uint32     { return 1 }

func (s Box3) BinaryData(buf *[]byte) (int, int, bool) {
	start, n := appendStd140Mat3x3(buf, s.Matrix)
	return start, n, true
}

// OklabTransform encodes (Encode) or decodes (Decode) between XYZ and Oklab,
// parameterized by the RGB<->XYZ matrix of the adjacent color conversion.
type OklabTransform struct {
	XYZTransform imgcc.RowMatrix
	Direction    Direction
	Spirv        []byte
}

func (s OklabTransform) Key() (Key, bool)      { return KeyOklabTransform(s.Direction), true }
func (s OklabTransform) SpirvSource() []byte   { return s.Spirv }
func (s OklabTransform) NumArgs() uint32       { return 1 }

func (s OklabTransform) BinaryData(buf *[]byte) (int, int, bool) {
	start, n := appendStd140Mat3x3(buf, s.XYZTransform)
	return start, n, true
}

// Srlab2Transform is OklabTransform's SrLab2 analogue: it additionally
// packs the reference whitepoint's XYZ tristimulus ahead of the matrix
// (4-float-aligned, per the original's align_by_exponent(4) before the
// matrix block).
type Srlab2Transform struct {
	Matrix     imgcc.RowMatrix
	Whitepoint imgcc.Whitepoint
	Direction  Direction
	Spirv      []byte
}

func (s Srlab2Transform) Key() (Key, bool) { return KeySrlab2Transform(s.Direction), true }
func (s Srlab2Transform) SpirvSource() []byte { return s.Spirv }
func (s Srlab2Transform) NumArgs() uint32     { return 1 }

func (s Srlab2Transform) BinaryData(buf *[]byte) (int, int, bool) {
	start := len(*buf)
	wx, wy, wz := whitepointXYZ(s.Whitepoint)
	appendPod(buf, []float32{float32(wx), float32(wy), float32(wz), 0})
	appendStd140Mat3x3(buf, s.Matrix)
	return start, len(*buf) - start, true
}

// whitepointXYZ returns the whitepoint's own CIE 1931 tristimulus values,
// Y-normalized — mirrors Whitepoint::to_xyz in the original. imgcc keeps
// this table unexported (it is an implementation detail of RGBToXYZ), so
// the two standard illuminants this module supports are reproduced here.
func whitepointXYZ(wp imgcc.Whitepoint) (x, y, z float64) {
	switch wp {
	case imgcc.D50:
		return 0.9642, 1.0, 0.8249
	default:
		return 0.9504, 1.0, 1.0888
	}
}

// Bilinear computes a full-screen bilinear gradient over u/v in [0,width]
// x [0,height], packed as six std430 vec4s per the original's ShaderData
// layout (u_min, u_max, v_min, v_max, uv_min, uv_max).
type Bilinear struct {
	UMin, UMax, VMin, VMax, UVMin, UVMax [4]float32
	Spirv                                []byte
}

// MGrid returns the Bilinear parameterization of a plain width x height
// gradient: red channel ramps 0..width, green channel ramps 0..height.
func MGrid(width, height float32) Bilinear {
	return Bilinear{
		UMax: [4]float32{width, 0, 0, 0},
		VMax: [4]float32{0, height, 0, 0},
	}
}

func (s Bilinear) Key() (Key, bool)    { return KeyBilinear(), true }
func (s Bilinear) SpirvSource() []byte { return s.Spirv }
func (s Bilinear) NumArgs() uint32     { return 0 }

func (s Bilinear) BinaryData(buf *[]byte) (int, int, bool) {
	start := len(*buf)
	for _, v := range [][4]float32{s.UMin, s.UMax, s.VMin, s.VMax, s.UVMin, s.UVMax} {
		appendPod(buf, v[:])
	}
	return start, len(*buf) - start, true
}

// Inject mixes rhs's selected channel into lhs at the configured channel,
// packed as two vec4s (mix selector, color dot-product selector).
type Inject struct {
	Mix   [4]float32
	Color [4]float32
	Spirv []byte
}

func (s Inject) Key() (Key, bool)    { return KeyInject(), true }
func (s Inject) SpirvSource() []byte { return s.Spirv }
func (s Inject) NumArgs() uint32     { return 2 }

func (s Inject) BinaryData(buf *[]byte) (int, int, bool) {
	start := len(*buf)
	appendPod(buf, s.Mix[:])
	appendPod(buf, s.Color[:])
	return start, len(*buf) - start, true
}

// Palette samples a 1-D or 2-D palette texture by coordinates extracted
// from the source texture's channels, packed as a mat4x2 of float
// texture-coordinate selectors (spec.md §6 "Palette data packs as a
// mat4x2 of float texture coordinates").
type Palette struct {
	XCoord, YCoord [4]float32
	Spirv          []byte
}

func (s Palette) Key() (Key, bool)    { return KeyPalette(), true }
func (s Palette) SpirvSource() []byte { return s.Spirv }
func (s Palette) NumArgs() uint32     { return 2 }

func (s Palette) BinaryData(buf *[]byte) (int, int, bool) {
	start := len(*buf)
	mat4x2 := []float32{
		s.XCoord[0], s.YCoord[0],
		s.XCoord[1], s.YCoord[1],
		s.XCoord[2], s.YCoord[2],
		s.XCoord[3], s.YCoord[3],
	}
	appendPod(buf, mat4x2)
	return start, len(*buf) - start, true
}

// SolidRGB is the constant-color fill shader backing Construct::Solid —
// always knob-eligible per spec.md's supplemented scenario 6. Its key is
// always absent, so its compiled module is never cached.
type SolidRGB struct {
	Color [4]float32
	Spirv []byte
}

func (s SolidRGB) Key() (Key, bool)    { return Key{}, false }
func (s SolidRGB) SpirvSource() []byte { return s.Spirv }
func (s SolidRGB) NumArgs() uint32     { return 0 }

func (s SolidRGB) BinaryData(buf *[]byte) (int, int, bool) {
	start, n := appendPod(buf, s.Color[:])
	return start, n, true
}

// DistributionNormal2d draws a 2-D Gaussian falloff; no per-instance
// uniform data beyond the shared vertex quad.
type DistributionNormal2d struct{ Spirv []byte }

func (s DistributionNormal2d) Key() (Key, bool)    { return KeyDistributionNormal2d(), true }
func (s DistributionNormal2d) SpirvSource() []byte { return s.Spirv }
func (s DistributionNormal2d) NumArgs() uint32     { return 0 }
func (s DistributionNormal2d) BinaryData(*[]byte) (int, int, bool) { return 0, 0, false }

// FractalNoise draws fractal Brownian noise; no per-instance uniform data.
type FractalNoise struct{ Spirv []byte }

func (s FractalNoise) Key() (Key, bool)    { return KeyFractalNoise(), true }
func (s FractalNoise) SpirvSource() []byte { return s.Spirv }
func (s FractalNoise) NumArgs() uint32     { return 0 }
func (s FractalNoise) BinaryData(*[]byte) (int, int, bool) { return 0, 0, false }

// PaintOnTop is the trivial full-screen copy/blend family used by Crop,
// Inscribe, and the identity-sampling branch of Affine.
type PaintOnTop struct {
	Kind  PaintOnTopKind
	Spirv []byte
}

func (s PaintOnTop) Key() (Key, bool)                       { return KeyPaintOnTop(s.Kind), true }
func (s PaintOnTop) SpirvSource() []byte                     { return s.Spirv }
func (s PaintOnTop) NumArgs() uint32                         { return 1 }
func (s PaintOnTop) BinaryData(*[]byte) (int, int, bool)     { return 0, 0, false }

// appendStd140Mat3x3 appends the 12-float std140 mat3x3 packing of m.
func appendStd140Mat3x3(buf *[]byte, m imgcc.RowMatrix) (start, length int) {
	packed := m.Std140Mat3x3()
	return appendPod(buf, packed[:])
}

// BuiltinSet carries the compiled SPIR-V bytes for every built-in shader
// family, supplied by the host at link time. The compiler never compiles
// shader source itself (spec.md §1 Non-goals: "SPIR-V modules are supplied
// as opaque byte blobs addressed by identity"); this struct is the seam
// where a real build pipeline plugs in its compiled output.
type BuiltinSet struct {
	PaintOnTopCopy       []byte
	LinearColorMatrix    []byte
	Box3                 []byte
	OklabEncode          []byte
	OklabDecode          []byte
	Srlab2Encode         []byte
	Srlab2Decode         []byte
	Bilinear             []byte
	Inject               []byte
	Palette              []byte
	SolidRGB             []byte
	DistributionNormal2d []byte
	FractalNoise         []byte
}

// StubBuiltinSet returns a BuiltinSet with distinct placeholder SPIR-V
// magic-prefixed blobs for every family — enough for tests and for wiring
// the lowering stage end-to-end before a real shader build is plugged in.
func StubBuiltinSet() BuiltinSet {
	blob := func(tag byte) []byte { return []byte{0x03, 0x02, 0x23, 0x07, tag} }
	return BuiltinSet{
		PaintOnTopCopy:       blob(1),
		LinearColorMatrix:    blob(2),
		Box3:                 blob(3),
		OklabEncode:          blob(4),
		OklabDecode:          blob(5),
		Srlab2Encode:         blob(6),
		Srlab2Decode:         blob(7),
		Bilinear:             blob(8),
		Inject:               blob(9),
		Palette:              blob(10),
		SolidRGB:             blob(11),
		DistributionNormal2d: blob(12),
		FractalNoise:         blob(13),
	}
}

var (
	_ Invocation = LinearColorMatrix{}
	_ Invocation = Box3{}
	_ Invocation = OklabTransform{}
	_ Invocation = Srlab2Transform{}
	_ Invocation = Bilinear{}
	_ Invocation = Inject{}
	_ Invocation = Palette{}
	_ Invocation = SolidRGB{}
	_ Invocation = DistributionNormal2d{}
	_ Invocation = FractalNoise{}
	_ Invocation = PaintOnTop{}
	_ Invocation = Runtime{}
)
