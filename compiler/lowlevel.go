package compiler

import (
	"github.com/gogpu/imgcc"
	"github.com/gogpu/imgcc/gpucore"
	"github.com/gogpu/imgcc/ir"
	"github.com/gogpu/imgcc/shader"
)

// Op is a lowered instruction in a Program's flat op stream (spec.md §6,
// the executor contract).
type Op interface{ isLowOp() }

// TargetKind selects whether a draw clears its destination or paints over
// the existing contents.
type TargetKind uint8

const (
	TargetDiscard TargetKind = iota
	TargetLoad
)

// Target is a DrawInto's (or Uninit's/WriteInto's) destination.
type Target struct {
	Kind    TargetKind
	Texture gpucore.TextureID
}

// QuadTarget is the UV rectangle a draw maps its fragment output into,
// [0,1]x[0,1] with top-left origin (spec.md §6).
type QuadTarget struct{ U0, V0, U1, V1 float32 }

// QuadTargetFullScreen spans the entire destination.
func QuadTargetFullScreen() QuadTarget { return QuadTarget{U0: 0, V0: 0, U1: 1, V1: 1} }

// QuadTargetFromRect maps rect into UV space against a surroundingWidth x
// surroundingHeight extent — used by Inscribe/Affine placement.
func QuadTargetFromRect(rect imgcc.Rectangle, surroundingWidth, surroundingHeight uint32) QuadTarget {
	w, h := float32(surroundingWidth), float32(surroundingHeight)
	if w == 0 || h == 0 {
		return QuadTarget{}
	}
	return QuadTarget{
		U0: float32(rect.X) / w, V0: float32(rect.Y) / h,
		U1: float32(rect.MaxX) / w, V1: float32(rect.MaxY) / h,
	}
}

// DrawKind discriminates a full-screen draw from one restricted to a
// selection/placement rectangle.
type DrawKind uint8

const (
	DrawPaintFullScreen DrawKind = iota
	DrawPaintToSelection
)

// KnobUserKind says whether a draw/write's uniform block is static (inlined
// at lowering) or sourced from a runtime-rebindable knob id.
type KnobUserKind uint8

const (
	KnobUserNone KnobUserKind = iota
	KnobUserRuntime
)

// KnobUser is the op-level marker referencing a Program-wide knob id. The
// knob table (Program.Knobs) records whether that id's bytes come from a
// host-supplied launch argument or a buffer-register slice (ir.KnobSpec's
// finer Runtime/Buffer distinction) — invariant 8 (spec.md §8) is phrased
// purely in terms of this uniform Runtime(id) marker.
type KnobUser struct {
	Kind KnobUserKind
	ID   int
}

// FragmentShaderInvocation is DrawInto's parameterized fragment program:
// which shader, whether it paints the full destination or a selection, and
// (for PaintToSelection) the source selection rectangle, destination quad,
// and viewport.
type FragmentShaderInvocation struct {
	Kind       DrawKind
	Invocation shader.Invocation
	Knob       KnobUser

	Selection imgcc.Rectangle // PaintToSelection: region of the pushed operand(s) to sample
	Target    QuadTarget      // PaintToSelection: where in the destination to paint
	Viewport  imgcc.Rectangle // PaintToSelection: pixel bounds of the draw
}

type StackPushOp struct{ Frame string }
type StackPopOp struct{}

func (StackPushOp) isLowOp() {}
func (StackPopOp) isLowOp()  {}

// PushOperandOp binds a texture as the next sampler input to the DrawInto
// that immediately follows — spec.md §5's "PushOperand immediately precedes
// the DrawInto that consumes it" ordering guarantee.
type PushOperandOp struct{ Texture gpucore.TextureID }

func (PushOperandOp) isLowOp() {}

// DrawIntoOp issues a full-screen or targeted draw, consuming exactly
// Shader.Invocation.NumArgs() previously pushed operands.
type DrawIntoOp struct {
	Dst    Target
	Shader FragmentShaderInvocation
}

func (DrawIntoOp) isLowOp() {}

// CopyOp blits bytes without a shader: texture-to-texture (Transmute),
// buffer-to-texture (Construct::FromBuffer), or texture-to-buffer
// (BufferUnary::FromImage) depending on which Src/Dst pair is set.
type CopyOp struct {
	SrcTexture gpucore.TextureID
	SrcBuffer  gpucore.BufferID
	FromBuffer bool

	DstTexture   gpucore.TextureID
	DstBuffer    gpucore.BufferID
	ToBuffer     bool
	DstPlacement int // byte offset into DstBuffer, meaningful when ToBuffer && FromBuffer (Overlay)
}

func (CopyOp) isLowOp() {}

// UninitOp allocates a destination without defining its contents — used
// for InvokedResult slots awaiting their Call.
type UninitOp struct{ Dst Target }

func (UninitOp) isLowOp() {}

// WriteKind discriminates WriteInto's two cases.
type WriteKind uint8

const (
	WriteZero WriteKind = iota
	WritePut
)

// WriteIntoOp writes bytes into a buffer: Zero clears it, Put copies Data
// at byte offset Placement, optionally sourcing Data from a knob.
type WriteIntoOp struct {
	Dst       gpucore.BufferID
	Kind      WriteKind
	Placement int
	Data      []byte
	Knob      KnobUser
}

func (WriteIntoOp) isLowOp() {}

// ImageIO discriminates a Call's image bindings.
type ImageIO uint8

const (
	InTexture ImageIO = iota
	OutTexture
)

// CallBinding is one entry of a Call's image_io_buffers vector.
type CallBinding struct {
	Kind    ImageIO
	Texture gpucore.TextureID
}

// CallOp executes a linked function's op range to completion with the
// given I/O bindings before the next op runs (spec.md §5).
type CallOp struct {
	Function int
	Bindings []CallBinding
}

func (CallOp) isLowOp() {}

// InputOp marks that the host binds a source image at this register.
type InputOp struct {
	Register ir.Register
	Texture  gpucore.TextureID
}

func (InputOp) isLowOp() {}

// OutputOp marks that the host retrieves the texture assigned to Src.
type OutputOp struct {
	Src     ir.Register
	Texture gpucore.TextureID
}

func (OutputOp) isLowOp() {}

// RenderOp is like OutputOp but to a caller-supplied render target.
type RenderOp struct {
	Src     ir.Register
	Texture gpucore.TextureID
}

func (RenderOp) isLowOp() {}

// DoneOp marks Register as defined, closing the bracketed sequence that
// produced it.
type DoneOp struct{ Register ir.Register }

func (DoneOp) isLowOp() {}

var (
	_ Op = StackPushOp{}
	_ Op = StackPopOp{}
	_ Op = PushOperandOp{}
	_ Op = DrawIntoOp{}
	_ Op = CopyOp{}
	_ Op = UninitOp{}
	_ Op = WriteIntoOp{}
	_ Op = CallOp{}
	_ Op = InputOp{}
	_ Op = OutputOp{}
	_ Op = RenderOp{}
	_ Op = DoneOp{}
)
