package ir

import "github.com/gogpu/imgcc"

// Op is an IR node. Concrete op types implement it as a marker; the
// lowering stage (package compiler) type-switches over the concrete types,
// per spec.md §9 ("operation set as a tagged sum... adding new ops must not
// require changing existing ones beyond the lowering match").
type Op interface {
	isOp()
	// Defines is the register this op produces, or RegNone for a
	// side-effect-only op.
	Defines() RegisterDesc
}

type opBase struct{ desc RegisterDesc }

func (opBase) isOp() {}
func (b opBase) Defines() RegisterDesc { return b.desc }

// InputOp produces Texture(desc); desc must be consistent.
type InputOp struct {
	opBase
	Desc imgcc.GenericDescriptor
}

// OutputOp consumes a Texture; produces None.
type OutputOp struct {
	opBase
	Src Register
}

// RenderOp consumes a concrete renderable Texture; produces None.
type RenderOp struct {
	opBase
	Src Register
}

// ConstructKind discriminates Construct's procedural-generation cases.
type ConstructKind uint8

const (
	ConstructSolid ConstructKind = iota
	ConstructBilinear
	ConstructNormal2d
	ConstructFractalNoise
	ConstructFromBuffer
)

// ConstructOp produces a stated Texture(desc); FromBuffer additionally
// requires buf.size >= height*row_stride (checked by the builder).
type ConstructOp struct {
	opBase
	Kind  ConstructKind
	Desc  imgcc.GenericDescriptor
	Color []float32 // Solid only: RGBA fill value.
	Buf   Register  // FromBuffer only.
}

// UnaryKind discriminates the Unary op family.
type UnaryKind uint8

const (
	UnaryCrop UnaryKind = iota
	UnaryColorConvert
	UnaryExtract
	UnaryChromaticAdaptation
	UnaryTransmute
	UnaryDerivative
	UnaryVignette
)

// DerivativeMethod selects a Box3 kernel for UnaryDerivative.
type DerivativeMethod uint8

const (
	DerivativePrewitt DerivativeMethod = iota
	DerivativeSobel
	DerivativeScharr3
	DerivativeScharr3To4Bit
	DerivativeScharr3To8Bit
)

// DerivativeDirection selects horizontal vs. vertical kernel transposition.
type DerivativeDirection uint8

const (
	DerivativeHorizontal DerivativeDirection = iota
	DerivativeVertical
)

// UnaryOp is the Unary op family: Crop, ColorConvert, Extract,
// ChromaticAdaptation, Transmute, Derivative, Vignette. Exactly the fields
// relevant to Kind are meaningful.
type UnaryOp struct {
	opBase
	Kind UnaryKind
	Src  Register

	Rect imgcc.Rectangle // Crop

	Conv imgcc.ColorConversionKind // ColorConvert

	Channel imgcc.ColorChannel // Extract

	SrcWhitepoint, TargetWhitepoint imgcc.Whitepoint // ChromaticAdaptation
	AdaptationMethod                imgcc.ChromaticAdaptationMethod

	DerivMethod    DerivativeMethod // Derivative
	DerivDirection DerivativeDirection

	Vignette [4]float32 // Vignette: cubic polynomial coefficients
}

// BinaryKind discriminates the Binary op family.
type BinaryKind uint8

const (
	BinaryInscribe BinaryKind = iota
	BinaryInject
	BinaryPalette
	BinaryAffine
	BinaryGainMap
)

// AffineSample selects the resampling kernel for BinaryAffine.
type AffineSample uint8

const (
	AffineNearest AffineSample = iota
	AffineBiLinear
)

// BinaryOp is the Binary op family: Inscribe, Inject, Palette, Affine,
// GainMap (always unimplemented, kept for forward compatibility per
// spec.md §9).
type BinaryOp struct {
	opBase
	Kind      BinaryKind
	Below     Register
	Above     Register

	Rect imgcc.Rectangle // Inscribe

	Channel      imgcc.ColorChannel // Inject: destination channel
	FromChannels imgcc.SampleParts  // Inject: rhs channel layout being mixed in

	// Palette has no extra fields beyond Below (indices) and Above
	// (palette colors) — the channel-position wiring lives in the
	// lowering stage, grounded on command.rs's palette().

	Matrix imgcc.RowMatrix // Affine
	Sample AffineSample

	GainMapParams [4]float32 // GainMap: reserved parameter block, never lowered
}

// DynamicImageKind says which arity family a user shader plugs into.
type DynamicImageKind uint8

const (
	DynamicConstruct DynamicImageKind = iota // 0 operands
	DynamicUnary                              // 1 operand
	DynamicBinary                             // 2 operands
)

// DynamicImageOp invokes a user-supplied fragment shader with the given
// arity; NumArgs must match the arity implied by Kind (checked by the
// builder).
type DynamicImageOp struct {
	opBase
	Kind     DynamicImageKind
	Operands []Register
	Spirv    []byte
	NumArgs  uint32
	Desc     imgcc.GenericDescriptor
}

// BufferInitOp produces Buffer(size) from inline host data.
type BufferInitOp struct {
	opBase
	Range imgcc.GenericBuffer
	Data  []byte
}

// BufferUnaryOp is the BufferUnary family: presently only FromImage.
type BufferUnaryOp struct {
	opBase
	Src Register
}

// BufferBinaryOp is the BufferBinary family: presently only Overlay{at},
// which preserves lhs.size.
type BufferBinaryOp struct {
	opBase
	Lhs Register
	Rhs Register
	At  int
}

// InvokeOp calls a linked function: at link time the argument, result and
// generic-argument counts are checked against the callee signature; the
// argument descriptors are not compared with the callee's inputs. One
// InvokedResult register is produced per declared result.
type InvokeOp struct {
	opBase
	Function int
	Args     []Register
	Generics []imgcc.Descriptor
	Results  []RegisterDesc // descriptors of the produced InvokedResult registers
}

// InvokedResultOp is the placeholder register produced for one output of an
// Invoke, awaiting the call's definition at lowering time.
type InvokedResultOp struct {
	opBase
	Invoke Register
	Index  int
}

var (
	_ Op = InputOp{}
	_ Op = OutputOp{}
	_ Op = RenderOp{}
	_ Op = ConstructOp{}
	_ Op = UnaryOp{}
	_ Op = BinaryOp{}
	_ Op = DynamicImageOp{}
	_ Op = BufferInitOp{}
	_ Op = BufferUnaryOp{}
	_ Op = BufferBinaryOp{}
	_ Op = InvokeOp{}
	_ Op = InvokedResultOp{}
)
