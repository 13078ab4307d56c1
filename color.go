package imgcc

import "fmt"

// Whitepoint is the reference illuminant of a color space.
type Whitepoint uint8

const (
	// D65 is the standard illuminant for sRGB, Rec.709, and Oklab.
	D65 Whitepoint = iota
	// D50 is the standard illuminant used by ICC profile connection space.
	D50
)

// xyz returns the whitepoint's CIE 1931 tristimulus values, normalized to Y=1.
func (wp Whitepoint) xyz() (x, y, z float64) {
	switch wp {
	case D50:
		return 0.9642, 1.0, 0.8249
	default: // D65
		return 0.9504, 1.0, 1.0888
	}
}

// Primary identifies an RGB primary set by its chromaticity coordinates.
type Primary uint8

const (
	// Bt709 is the sRGB / Rec.709 primary set.
	Bt709 Primary = iota
	// Bt2020 is the Rec.2020 wide-gamut primary set.
	Bt2020
	// AdobeRGB is the Adobe RGB (1998) primary set.
	AdobeRGB
)

// chromaticity returns the (x,y) CIE chromaticity coordinates of the red,
// green, and blue primaries.
func (p Primary) chromaticity() (rx, ry, gx, gy, bx, by float64) {
	switch p {
	case Bt2020:
		return 0.708, 0.292, 0.170, 0.797, 0.131, 0.046
	case AdobeRGB:
		return 0.6400, 0.3300, 0.2100, 0.7100, 0.1500, 0.0600
	default: // Bt709
		return 0.6400, 0.3300, 0.3000, 0.6000, 0.1500, 0.0600
	}
}

// Transfer is the electro-optical transfer function applied to linear-light
// samples before they are stored as texels.
type Transfer uint8

const (
	// Srgb is the piecewise sRGB transfer function.
	Srgb Transfer = iota
	// Linear is the identity transfer function (no gamma encoding).
	Linear
)

// ColorKind discriminates the cases of Color.
type ColorKind uint8

const (
	ColorRgbKind ColorKind = iota
	ColorOklabKind
	ColorSrLab2Kind
)

// Color is the colorimetric interpretation of a Texel's samples: either an
// RGB working space (with its own primaries, whitepoint, transfer function,
// and reference luminance), or one of the two perceptual spaces the
// compiler understands natively, Oklab and SrLab2. Go has no sum types, so
// Color carries the union of all fields and Kind says which are meaningful;
// use RgbColor, OklabColor, or SrLab2Color rather than building one by hand.
type Color struct {
	Kind ColorKind

	// Valid when Kind == ColorRgbKind.
	Primary    Primary
	Whitepoint Whitepoint
	Transfer   Transfer
	Luminance  float64

	// Valid when Kind == ColorSrLab2Kind. Oklab is always relative to D65
	// and carries no parameters of its own.
	SrLab2Whitepoint Whitepoint
}

// RgbColor builds an RGB working-space color.
func RgbColor(primary Primary, whitepoint Whitepoint, transfer Transfer) Color {
	return Color{
		Kind: ColorRgbKind, Primary: primary, Whitepoint: whitepoint,
		Transfer: transfer, Luminance: 1,
	}
}

// OklabColor returns the Oklab perceptual color, always referenced to D65.
func OklabColor() Color { return Color{Kind: ColorOklabKind} }

// SrLab2Color returns the SrLab2 perceptual color referenced to whitepoint.
func SrLab2Color(whitepoint Whitepoint) Color {
	return Color{Kind: ColorSrLab2Kind, SrLab2Whitepoint: whitepoint}
}

// ColorConversionKind is the chosen conversion variant between two Colors,
// selected at IR build time per spec §4.1.
type ColorConversionKind uint8

const (
	// ConvXYZ converts RGB to RGB through a shared XYZ intermediate
	// (same whitepoint; primaries may differ).
	ConvXYZ ColorConversionKind = iota
	ConvXYZToOklab
	ConvOklabToXYZ
	ConvXYZToSrLab2
	ConvSrLab2ToXYZ
)

// SelectColorConversion implements the 5-way match of spec §4.1: two color
// values are chromatically compatible exactly when their pair matches one
// of these cases.
func SelectColorConversion(from, to Color) (ColorConversionKind, error) {
	switch {
	case from.Kind == ColorRgbKind && to.Kind == ColorRgbKind:
		if from.Whitepoint != to.Whitepoint {
			return 0, &BadDescriptorError{Reason: "RGB to RGB conversion requires equal whitepoint"}
		}
		return ConvXYZ, nil
	case from.Kind == ColorRgbKind && to.Kind == ColorOklabKind:
		return ConvXYZToOklab, nil
	case from.Kind == ColorOklabKind && to.Kind == ColorRgbKind:
		return ConvOklabToXYZ, nil
	case from.Kind == ColorRgbKind && to.Kind == ColorSrLab2Kind:
		return ConvXYZToSrLab2, nil
	case from.Kind == ColorSrLab2Kind && to.Kind == ColorRgbKind:
		return ConvSrLab2ToXYZ, nil
	default:
		return 0, &BadDescriptorError{Reason: "no conversion"}
	}
}

// RGBToXYZ returns the 3x3 matrix mapping linear RGB (in the primary/
// whitepoint pair given) to CIE XYZ, built from chromaticity coordinates by
// the standard primary-matrix method (Lindbloom): invert the raw-primary
// matrix, solve for per-channel scale against the whitepoint, then rescale
// each primary column.
func RGBToXYZ(primary Primary, whitepoint Whitepoint) RowMatrix {
	rx, ry, gx, gy, bx, by := primary.chromaticity()
	xyz := func(x, y float64) (float64, float64, float64) {
		return x / y, 1, (1 - x - y) / y
	}
	xr, yr, zr := xyz(rx, ry)
	xg, yg, zg := xyz(gx, gy)
	xb, yb, zb := xyz(bx, by)

	raw := RowMatrix{
		M00: xr, M01: xg, M02: xb,
		M10: yr, M11: yg, M12: yb,
		M20: zr, M21: zg, M22: zb,
	}
	inv, ok := raw.Inv()
	if !ok {
		return IdentityMatrix()
	}

	wx, wy, wz := whitepoint.xyz()
	sr, sg, sb := inv.ApplyPoint3(wx, wy, wz)

	return RowMatrix{
		M00: xr * sr, M01: xg * sg, M02: xb * sb,
		M10: yr * sr, M11: yg * sg, M12: yb * sb,
		M20: zr * sr, M21: zg * sg, M22: zb * sb,
	}
}

// XYZToRGB is the inverse of RGBToXYZ.
func XYZToRGB(primary Primary, whitepoint Whitepoint) RowMatrix {
	m, ok := RGBToXYZ(primary, whitepoint).Inv()
	if !ok {
		return IdentityMatrix()
	}
	return m
}

// ChromaticAdaptationMethod selects the cone-response matrix used to
// transplant a color from one whitepoint's adaptation to another's.
type ChromaticAdaptationMethod uint8

const (
	// XyzScaling performs adaptation directly in XYZ (cone matrix = identity).
	XyzScaling ChromaticAdaptationMethod = iota
	// VonKries performs adaptation in the von Kries cone-response space.
	VonKries
	// Bradford performs adaptation in the Bradford cone-response space.
	Bradford
	// BradfordNonLinear additionally models the Bradford nonlinear lightness
	// crispening term. Not implemented; conservative fallback per spec §4.6.
	BradfordNonLinear
)

var errBradfordNonLinearUnimplemented = fmt.Errorf("chromatic adaptation: BradfordNonLinear is unimplemented")

func coneMatrix(method ChromaticAdaptationMethod) (RowMatrix, error) {
	switch method {
	case XyzScaling:
		return IdentityMatrix(), nil
	case VonKries:
		return RowMatrix{
			M00: 0.40024, M01: 0.70760, M02: -0.08081,
			M10: -0.22630, M11: 1.16532, M12: 0.04570,
			M20: 0, M21: 0, M22: 0.91822,
		}, nil
	case Bradford:
		return RowMatrix{
			M00: 0.8951, M01: 0.2664, M02: -0.1614,
			M10: -0.7502, M11: 1.7135, M12: 0.0367,
			M20: 0.0389, M21: -0.0685, M22: 1.0296,
		}, nil
	default:
		return RowMatrix{}, errBradfordNonLinearUnimplemented
	}
}

// ChromaticAdaptationMatrix returns the XYZ-space matrix adapting a color
// observed under src to its appearance under dst, via the given method's
// cone-response space: M = Ma^-1 * diag(dst_cone/src_cone) * Ma.
func ChromaticAdaptationMatrix(method ChromaticAdaptationMethod, src, dst Whitepoint) (RowMatrix, error) {
	ma, err := coneMatrix(method)
	if err != nil {
		return RowMatrix{}, err
	}
	maInv, ok := ma.Inv()
	if !ok {
		return RowMatrix{}, &BadDescriptorError{Reason: "non-invertible cone matrix"}
	}

	sx, sy, sz := src.xyz()
	dx, dy, dz := dst.xyz()

	srcL, srcM, srcS := ma.ApplyPoint3(sx, sy, sz)
	dstL, dstM, dstS := ma.ApplyPoint3(dx, dy, dz)

	diag := RowMatrix{
		M00: dstL / srcL, M01: 0, M02: 0,
		M10: 0, M11: dstM / srcM, M12: 0,
		M20: 0, M21: 0, M22: dstS / srcS,
	}

	return maInv.MultiplyRight(diag).MultiplyRight(ma), nil
}

// ApplyPoint3 transforms a 3-vector, used for chromaticity and XYZ math
// where the third coordinate genuinely matters (unlike ApplyPoint, which
// assumes homogeneous z=1 and drops the output z).
func (m RowMatrix) ApplyPoint3(x, y, z float64) (float64, float64, float64) {
	return m.M00*x + m.M01*y + m.M02*z,
		m.M10*x + m.M11*y + m.M12*z,
		m.M20*x + m.M21*y + m.M22*z
}

// oklabXYZToLMS is Björn Ottosson's linear XYZ->LMS' matrix for Oklab,
// referenced to D65. The nonlinear cube root between this matrix and
// oklabLMSToLab is applied by the shader, not by the compiler.
var oklabXYZToLMS = RowMatrix{
	M00: 0.8189330101, M01: 0.3618667424, M02: -0.1288597137,
	M10: 0.0329845436, M11: 0.9293118715, M12: 0.0361456387,
	M20: 0.0482003018, M21: 0.2643662691, M22: -0.6338517070,
}

// oklabLMSToLab is the post-nonlinearity LMS''->Oklab matrix.
var oklabLMSToLab = RowMatrix{
	M00: 0.2104542553, M01: 0.7936177850, M02: -0.0040720468,
	M10: 1.9779984951, M11: -2.4285922050, M12: 0.4505937099,
	M20: 0.0259040371, M21: 0.7827717662, M22: -0.8086757660,
}

// OklabForwardMatrices returns the (XYZ->LMS', LMS''->Oklab) matrix pair
// used to parameterize the Oklab shader family for a forward (XYZ->Oklab)
// conversion.
func OklabForwardMatrices() (toLMS, toLab RowMatrix) {
	return oklabXYZToLMS, oklabLMSToLab
}

// OklabInverseMatrices returns the inverse matrix pair for a backward
// (Oklab->XYZ) conversion.
func OklabInverseMatrices() (fromLab, fromLMS RowMatrix) {
	fromLab, _ = oklabLMSToLab.Inv()
	fromLMS, _ = oklabXYZToLMS.Inv()
	return fromLab, fromLMS
}

// SrLab2Matrices returns the (XYZ->LMS', LMS''->Lab) matrix pair for
// SrLab2, adapted to whitepoint via Bradford chromatic adaptation from D65
// (the whitepoint Oklab's matrices are implicitly referenced to) before
// applying the shared LMS->Lab step. SrLab2 shares Oklab's post-nonlinearity
// matrix shape but is evaluated against an arbitrary whitepoint rather than
// being pinned to D65.
func SrLab2Matrices(whitepoint Whitepoint) (toLMS, toLab RowMatrix, err error) {
	adapt, err := ChromaticAdaptationMatrix(Bradford, D65, whitepoint)
	if err != nil {
		return RowMatrix{}, RowMatrix{}, err
	}
	toLMS = oklabXYZToLMS.MultiplyRight(adapt)
	return toLMS, oklabLMSToLab, nil
}

// BadDescriptorError reports an inconsistent or forbidden descriptor, color
// pairing, or layout invariant. See CommandError for how this is surfaced
// to IR builder callers.
type BadDescriptorError struct {
	Reason string
}

func (e *BadDescriptorError) Error() string {
	return fmt.Sprintf("bad descriptor: %s", e.Reason)
}
