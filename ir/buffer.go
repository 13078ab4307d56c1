package ir

import "github.com/gogpu/imgcc"

// CommandBuffer is an SSA builder for one function's worth of image
// operations: each op builder below appends its Op and returns the Register
// it defines (Resize appends two ops, Invoke one plus one per result), or
// leaves the buffer unchanged on error (spec.md §7 "Propagation policy").
type CommandBuffer struct {
	ops     []Op
	descs   []RegisterDesc
	inputs  []Register
	results []Register
	vars    int
	knobs   map[Register]KnobSpec
}

// NewCommandBuffer returns an empty builder.
func NewCommandBuffer() *CommandBuffer {
	return &CommandBuffer{knobs: make(map[Register]KnobSpec)}
}

// NumOps returns the number of ops built so far.
func (cb *CommandBuffer) NumOps() int { return len(cb.ops) }

// Op returns the op defining reg.
func (cb *CommandBuffer) Op(reg Register) Op { return cb.ops[reg] }

// Desc returns the RegisterDesc of reg.
func (cb *CommandBuffer) Desc(reg Register) RegisterDesc { return cb.descs[reg] }

// Inputs returns the registers produced by Input calls, in build order —
// this buffer's CommandSignature.Inputs, in order.
func (cb *CommandBuffer) Inputs() []Register { return cb.inputs }

// Knobs returns the knob table keyed by the register the knob-wrapped op
// produced.
func (cb *CommandBuffer) Knobs() map[Register]KnobSpec { return cb.knobs }

// DeclareGenericVar reserves a new generic variable and returns it, for use
// in descriptor-var-parameterized Input/Construct calls within a function
// meant to be called generically via Invoke.
func (cb *CommandBuffer) DeclareGenericVar() DescriptorVar {
	v := DescriptorVar{GenericVar{Index: cb.vars}}
	cb.vars++
	return v
}

// Result marks reg as one of this buffer's signature outputs, in the order
// declared — used when this buffer is linked as a callee of Invoke. (The
// distilled spec describes Invoke's caller-side results but not how a
// callee declares its own signature outputs within its own builder; this
// method resolves that gap, distinct from the host-facing Output op.)
func (cb *CommandBuffer) Result(reg Register) error {
	if err := cb.requireTexture(reg); err != nil {
		return err
	}
	cb.results = append(cb.results, reg)
	return nil
}

// Signature returns this buffer's CommandSignature: its declared generic
// variable count, its Input descriptors in order, and its Result
// descriptors in order.
func (cb *CommandBuffer) Signature() CommandSignature {
	sig := CommandSignature{Vars: cb.vars}
	for _, r := range cb.inputs {
		sig.Inputs = append(sig.Inputs, cb.descs[r].Texture)
	}
	for _, r := range cb.results {
		sig.Outputs = append(sig.Outputs, cb.descs[r].Texture)
	}
	return sig
}

func (cb *CommandBuffer) push(op Op) Register {
	reg := Register(len(cb.ops))
	cb.ops = append(cb.ops, op)
	cb.descs = append(cb.descs, op.Defines())
	return reg
}

func (cb *CommandBuffer) requireTexture(reg Register) error {
	if int(reg) < 0 || int(reg) >= len(cb.descs) {
		return imgcc.ErrCommandOther("bad register reference")
	}
	if cb.descs[reg].Kind != RegTexture {
		return imgcc.ErrCommandOther("expected a texture register")
	}
	return nil
}

func (cb *CommandBuffer) requireBuffer(reg Register) error {
	if int(reg) < 0 || int(reg) >= len(cb.descs) {
		return imgcc.ErrCommandOther("bad register reference")
	}
	if cb.descs[reg].Kind != RegBuffer {
		return imgcc.ErrCommandOther("expected a buffer register")
	}
	return nil
}

// Input produces Texture(desc); desc must be consistent if concrete.
func (cb *CommandBuffer) Input(desc imgcc.GenericDescriptor) (Register, error) {
	if concrete, ok := desc.AsConcrete(); ok && !concrete.IsConsistent() {
		return 0, imgcc.NewBadDescriptorError(desc, "input descriptor is not consistent")
	}
	reg := cb.push(InputOp{opBase: opBase{textureDesc(desc)}, Desc: desc})
	cb.inputs = append(cb.inputs, reg)
	return reg, nil
}

// Output consumes a Texture; produces None. The host retrieves the texture
// assigned to src after the Program runs.
func (cb *CommandBuffer) Output(src Register) (Register, error) {
	if err := cb.requireTexture(src); err != nil {
		return 0, err
	}
	return cb.push(OutputOp{opBase: opBase{noneDesc()}, Src: src}), nil
}

// Render consumes a concrete renderable Texture; produces None.
func (cb *CommandBuffer) Render(src Register) (Register, error) {
	if err := cb.requireTexture(src); err != nil {
		return 0, err
	}
	if _, ok := cb.descs[src].Texture.AsConcrete(); !ok {
		return 0, imgcc.ErrConcreteDescriptorRequired()
	}
	return cb.push(RenderOp{opBase: opBase{noneDesc()}, Src: src}), nil
}

// SolidRgba produces a constant-color Texture(desc). desc must be
// consistent; color is the RGBA fill value (spec.md §4.3 Construct::Solid).
func (cb *CommandBuffer) SolidRgba(desc imgcc.Descriptor, color [4]float32) (Register, error) {
	if !desc.IsConsistent() {
		return 0, imgcc.NewBadDescriptorError(desc.Generic(), "solid fill descriptor is not consistent")
	}
	return cb.push(ConstructOp{
		opBase: opBase{textureDesc(desc.Generic())},
		Kind:   ConstructSolid, Desc: desc.Generic(), Color: color[:],
	}), nil
}

// Bilinear produces a full-screen bilinear-gradient Texture(desc).
func (cb *CommandBuffer) Bilinear(desc imgcc.Descriptor) (Register, error) {
	if !desc.IsConsistent() {
		return 0, imgcc.NewBadDescriptorError(desc.Generic(), "bilinear descriptor is not consistent")
	}
	return cb.push(ConstructOp{
		opBase: opBase{textureDesc(desc.Generic())},
		Kind:   ConstructBilinear, Desc: desc.Generic(),
	}), nil
}

// DistributionNormal2d produces a 2-D Gaussian-falloff Texture(desc); desc
// must describe a Luma or LumaA texel.
func (cb *CommandBuffer) DistributionNormal2d(desc imgcc.Descriptor) (Register, error) {
	if desc.Texel.Parts != imgcc.Luma && desc.Texel.Parts != imgcc.LumaA {
		return 0, imgcc.NewBadDescriptorError(desc.Generic(), "distribution_normal2d requires a Luma or LumaA texel")
	}
	if !desc.IsConsistent() {
		return 0, imgcc.NewBadDescriptorError(desc.Generic(), "descriptor is not consistent")
	}
	return cb.push(ConstructOp{
		opBase: opBase{textureDesc(desc.Generic())},
		Kind:   ConstructNormal2d, Desc: desc.Generic(),
	}), nil
}

// DistributionFractalNoise produces a fractal-Brownian-noise Texture(desc);
// desc must describe a Luma or LumaA texel.
func (cb *CommandBuffer) DistributionFractalNoise(desc imgcc.Descriptor) (Register, error) {
	if desc.Texel.Parts != imgcc.Luma && desc.Texel.Parts != imgcc.LumaA {
		return 0, imgcc.NewBadDescriptorError(desc.Generic(), "distribution_fractal_noise requires a Luma or LumaA texel")
	}
	if !desc.IsConsistent() {
		return 0, imgcc.NewBadDescriptorError(desc.Generic(), "descriptor is not consistent")
	}
	return cb.push(ConstructOp{
		opBase: opBase{textureDesc(desc.Generic())},
		Kind:   ConstructFractalNoise, Desc: desc.Generic(),
	}), nil
}

// ConstructFromBuffer produces Texture(desc) by interpreting buf's bytes as
// the image's rows; requires buf.size >= height*row_stride when both are
// concrete.
func (cb *CommandBuffer) ConstructFromBuffer(buf Register, desc imgcc.Descriptor) (Register, error) {
	if err := cb.requireBuffer(buf); err != nil {
		return 0, err
	}
	if n, ok := cb.descs[buf].Buffer.AsConcrete(); ok {
		need := uint64(desc.Layout.Height) * uint64(desc.Layout.RowStride)
		if n < need {
			return 0, imgcc.NewBadDescriptorError(desc.Generic(), "buffer too small for FromBuffer construct")
		}
	}
	return cb.push(ConstructOp{
		opBase: opBase{textureDesc(desc.Generic())},
		Kind:   ConstructFromBuffer, Desc: desc.Generic(), Buf: buf,
	}), nil
}

// Crop preserves chroma; result size becomes rect's size.
func (cb *CommandBuffer) Crop(src Register, rect imgcc.Rectangle) (Register, error) {
	if err := cb.requireTexture(src); err != nil {
		return 0, err
	}
	newDesc := cb.descs[src].Texture
	newDesc.Size = imgcc.ConcreteOf([2]uint32{rect.Width(), rect.Height()})
	return cb.push(UnaryOp{
		opBase: opBase{textureDesc(newDesc)},
		Kind:   UnaryCrop, Src: src, Rect: rect,
	}), nil
}

// ColorConvert requires a concrete source descriptor and a handled
// (from, to) color pair (imgcc.SelectColorConversion); changes the color
// and keeps the source texel.
func (cb *CommandBuffer) ColorConvert(src Register, to imgcc.Color) (Register, error) {
	if err := cb.requireTexture(src); err != nil {
		return 0, err
	}
	concrete, ok := cb.descs[src].Texture.AsConcrete()
	if !ok {
		return 0, imgcc.ErrConcreteDescriptorRequired()
	}
	if _, err := imgcc.SelectColorConversion(concrete.Color, to); err != nil {
		return 0, err
	}
	newDesc := imgcc.NewDescriptor(concrete.Texel, to, concrete.Layout.Width, concrete.Layout.Height)
	return cb.push(UnaryOp{
		opBase: opBase{textureDesc(newDesc.Generic())},
		Kind:   UnaryColorConvert, Src: src,
	}), nil
}

// Extract produces a single-channel texel derived from the source texel at
// channel.
func (cb *CommandBuffer) Extract(src Register, channel imgcc.ColorChannel) (Register, error) {
	if err := cb.requireTexture(src); err != nil {
		return 0, err
	}
	concrete, ok := cb.descs[src].Texture.AsConcrete()
	if !ok {
		return 0, imgcc.ErrConcreteDescriptorRequired()
	}
	texel, ok := concrete.Texel.ChannelTexel(channel)
	if !ok {
		return 0, imgcc.NewBadDescriptorError(concrete.Generic(), "channel not present in source texel")
	}
	newDesc := imgcc.NewDescriptor(texel, concrete.Color, concrete.Layout.Width, concrete.Layout.Height)
	return cb.push(UnaryOp{
		opBase: opBase{textureDesc(newDesc.Generic())},
		Kind:   UnaryExtract, Src: src, Channel: channel,
	}), nil
}

// ChromaticAdaptation preserves layout; changes whitepoint per method.
func (cb *CommandBuffer) ChromaticAdaptation(src Register, srcWP, targetWP imgcc.Whitepoint, method imgcc.ChromaticAdaptationMethod) (Register, error) {
	if err := cb.requireTexture(src); err != nil {
		return 0, err
	}
	if _, err := imgcc.ChromaticAdaptationMatrix(method, srcWP, targetWP); err != nil {
		return 0, imgcc.ErrCommandUnimplemented()
	}
	desc := cb.descs[src].Texture
	if concrete, ok := desc.AsConcrete(); ok {
		color := concrete.Color
		color.Whitepoint = targetWP
		desc = imgcc.NewDescriptor(concrete.Texel, color, concrete.Layout.Width, concrete.Layout.Height).Generic()
	}
	return cb.push(UnaryOp{
		opBase: opBase{textureDesc(desc)},
		Kind:   UnaryChromaticAdaptation, Src: src,
		SrcWhitepoint: srcWP, TargetWhitepoint: targetWP, AdaptationMethod: method,
	}), nil
}

// Transmute requires equal size and equal texel byte-size (both concrete,
// or both referencing the same generic chroma variable); reinterprets the
// chroma without resampling.
func (cb *CommandBuffer) Transmute(src Register, to imgcc.GenericDescriptor) (Register, error) {
	if err := cb.requireTexture(src); err != nil {
		return 0, err
	}
	from := cb.descs[src].Texture

	if sSize, ok1 := from.Size.Concrete(); ok1 {
		if tSize, ok2 := to.Size.Concrete(); ok2 && sSize != tSize {
			return 0, imgcc.NewBadDescriptorError(to, "mismatched size")
		}
	}

	sChroma, sConcrete := from.Chroma.Concrete()
	tChroma, tConcrete := to.Chroma.Concrete()
	switch {
	case sConcrete && tConcrete:
		if sChroma.Texel.Bytes() != tChroma.Texel.Bytes() {
			return 0, imgcc.NewBadDescriptorError(to, "mismatched size")
		}
	case !sConcrete && !tConcrete:
		if from.Chroma.Var != to.Chroma.Var {
			return 0, imgcc.ErrGenericTypeError()
		}
	default:
		return 0, imgcc.ErrConcreteDescriptorRequired()
	}

	return cb.push(UnaryOp{
		opBase: opBase{textureDesc(to)},
		Kind:   UnaryTransmute, Src: src,
	}), nil
}

// Derivative preserves the descriptor; selects a Box3 kernel by method and
// direction at lowering time.
func (cb *CommandBuffer) Derivative(src Register, method DerivativeMethod, direction DerivativeDirection) (Register, error) {
	if err := cb.requireTexture(src); err != nil {
		return 0, err
	}
	return cb.push(UnaryOp{
		opBase: opBase{textureDesc(cb.descs[src].Texture)},
		Kind:   UnaryDerivative, Src: src, DerivMethod: method, DerivDirection: direction,
	}), nil
}

// Vignette preserves the descriptor; applies a cubic polynomial falloff
// from the image center.
func (cb *CommandBuffer) Vignette(src Register, poly3 [4]float32) (Register, error) {
	if err := cb.requireTexture(src); err != nil {
		return 0, err
	}
	return cb.push(UnaryOp{
		opBase: opBase{textureDesc(cb.descs[src].Texture)},
		Kind:   UnaryVignette, Src: src, Vignette: poly3,
	}), nil
}

// Inscribe requires below and above to share chroma, and above.size ==
// rect; result descriptor equals below's.
func (cb *CommandBuffer) Inscribe(below, above Register, rect imgcc.Rectangle) (Register, error) {
	if err := cb.requireTexture(below); err != nil {
		return 0, err
	}
	if err := cb.requireTexture(above); err != nil {
		return 0, err
	}
	belowDesc := cb.descs[below].Texture
	aboveDesc := cb.descs[above].Texture

	if bc, ok1 := belowDesc.Chroma.Concrete(); ok1 {
		if ac, ok2 := aboveDesc.Chroma.Concrete(); ok2 && bc != ac {
			return 0, imgcc.NewConflictingTypesError(belowDesc, aboveDesc)
		}
	}
	if aboveSize, ok := aboveDesc.Size.Concrete(); ok {
		want := [2]uint32{rect.Width(), rect.Height()}
		if aboveSize != want {
			return 0, imgcc.NewBadDescriptorError(aboveDesc, "above.size must equal the placement rect")
		}
	}

	return cb.push(BinaryOp{
		opBase: opBase{textureDesc(belowDesc)},
		Kind:   BinaryInscribe, Below: below, Above: above, Rect: rect,
	}), nil
}

// Inject mixes rhs's channels into lhs's channel; requires rhs's texel
// component count to match the single-channel texel extracted from lhs at
// channel.
func (cb *CommandBuffer) Inject(lhs Register, channel imgcc.ColorChannel, rhs Register) (Register, error) {
	if err := cb.requireTexture(lhs); err != nil {
		return 0, err
	}
	if err := cb.requireTexture(rhs); err != nil {
		return 0, err
	}
	lhsDesc, ok := cb.descs[lhs].Texture.AsConcrete()
	if !ok {
		return 0, imgcc.ErrConcreteDescriptorRequired()
	}
	rhsDesc, ok := cb.descs[rhs].Texture.AsConcrete()
	if !ok {
		return 0, imgcc.ErrConcreteDescriptorRequired()
	}
	channelTexel, ok := lhsDesc.Texel.ChannelTexel(channel)
	if !ok {
		return 0, imgcc.NewBadDescriptorError(lhsDesc.Generic(), "channel not present in lhs texel")
	}
	if _, ok := channelTexel.ChannelWeightVec4(); !ok {
		return 0, imgcc.ErrCommandOther("channel weighting not representable")
	}
	if channelTexel.Parts.NumComponents() != rhsDesc.Texel.Parts.NumComponents() {
		return 0, imgcc.NewBadDescriptorError(rhsDesc.Generic(), "rhs texel component count must match the extracted channel")
	}

	return cb.push(BinaryOp{
		opBase: opBase{textureDesc(lhsDesc.Generic())},
		Kind:   BinaryInject, Below: lhs, Above: rhs, Channel: channel, FromChannels: rhsDesc.Texel.Parts,
	}), nil
}

// Palette samples colors from the above register using below's value as an
// index; the result's chroma is taken from above (the palette), its size
// from below (the indices).
func (cb *CommandBuffer) Palette(indices, colors Register) (Register, error) {
	if err := cb.requireTexture(indices); err != nil {
		return 0, err
	}
	if err := cb.requireTexture(colors); err != nil {
		return 0, err
	}
	target := cb.descs[indices].Texture
	target.Chroma = cb.descs[colors].Texture.Chroma

	return cb.push(BinaryOp{
		opBase: opBase{textureDesc(target)},
		Kind:   BinaryPalette, Below: indices, Above: colors,
	}), nil
}

// Affine paints above onto below under a 3x3 transform; requires matching
// color where both chromas are concrete (texels may differ), |det(m)| >= f32
// epsilon, and rejects
// AffineBiLinear as Unimplemented (spec.md §4.3: "currently: rejected").
func (cb *CommandBuffer) Affine(below, above Register, m imgcc.RowMatrix, sample AffineSample) (Register, error) {
	if err := cb.requireTexture(below); err != nil {
		return 0, err
	}
	if err := cb.requireTexture(above); err != nil {
		return 0, err
	}
	belowDesc := cb.descs[below].Texture
	aboveDesc := cb.descs[above].Texture

	if bc, ok1 := belowDesc.Chroma.Concrete(); ok1 {
		if ac, ok2 := aboveDesc.Chroma.Concrete(); ok2 && bc.Color != ac.Color {
			return 0, imgcc.NewConflictingTypesError(belowDesc, aboveDesc)
		}
	}

	const f32Epsilon = 1.1920929e-7
	if absF64(m.Det()) < f32Epsilon {
		return 0, imgcc.NewBadDescriptorError(belowDesc, "affine determinant below epsilon")
	}
	if sample == AffineBiLinear {
		return 0, imgcc.ErrCommandUnimplemented()
	}

	return cb.push(BinaryOp{
		opBase: opBase{textureDesc(belowDesc)},
		Kind:   BinaryAffine, Below: below, Above: above, Matrix: m, Sample: sample,
	}), nil
}

// GainMap is reserved and not lowered (spec.md §4.3, §9): the op builds
// successfully, preserving below's descriptor, but compiler.Link always
// fails to lower it with a CompileError wrapping ErrNotYetImplemented.
func (cb *CommandBuffer) GainMap(below, above Register, params [4]float32) (Register, error) {
	if err := cb.requireTexture(below); err != nil {
		return 0, err
	}
	if err := cb.requireTexture(above); err != nil {
		return 0, err
	}
	return cb.push(BinaryOp{
		opBase: opBase{textureDesc(cb.descs[below].Texture)},
		Kind:   BinaryGainMap, Below: below, Above: above, GainMapParams: params,
	}), nil
}

// Resize is a convenience builder lowering to exactly two draws: a
// width x height bilinear RGBA8 gradient, then a Palette draw sampling src
// by the gradient's R/G channels (command.rs:1663, SUPPLEMENTED FEATURES §1).
func (cb *CommandBuffer) Resize(src Register, width, height uint32) (Register, error) {
	if err := cb.requireTexture(src); err != nil {
		return 0, err
	}
	gradientDesc := imgcc.DescriptorWithTexel(imgcc.NewTexelU8(imgcc.RgbA), width, height)
	gradient, err := cb.Bilinear(gradientDesc)
	if err != nil {
		return 0, err
	}
	return cb.Palette(gradient, src)
}

// DynamicImage invokes a user shader with the given arity; kind's implied
// arity must equal both len(operands) and the shader's own NumArgs.
func (cb *CommandBuffer) DynamicImage(kind DynamicImageKind, operands []Register, spirv []byte, numArgs uint32, desc imgcc.GenericDescriptor) (Register, error) {
	want := map[DynamicImageKind]uint32{DynamicConstruct: 0, DynamicUnary: 1, DynamicBinary: 2}[kind]
	if uint32(len(operands)) != want {
		return 0, imgcc.ErrCommandOther("operand count does not match the dynamic shader's arity")
	}
	if numArgs != want {
		return 0, imgcc.ErrCommandOther("shader num_args does not match the dynamic shader's arity")
	}
	for _, op := range operands {
		if err := cb.requireTexture(op); err != nil {
			return 0, err
		}
	}
	return cb.push(DynamicImageOp{
		opBase: opBase{textureDesc(desc)},
		Kind:   kind, Operands: operands, Spirv: spirv, NumArgs: numArgs, Desc: desc,
	}), nil
}

// BufferInit produces Buffer(size) initialized from data (zero-filled
// beyond len(data), per BufferInit::FromData).
func (cb *CommandBuffer) BufferInit(size int, data []byte) (Register, error) {
	if size < 0 {
		return 0, imgcc.ErrCommandOther("negative buffer size")
	}
	if len(data) > size {
		return 0, imgcc.ErrCommandOther("data longer than buffer size")
	}
	buf := imgcc.GenericBuffer{Size: imgcc.ConcreteOf(uint64(size))}
	return cb.push(BufferInitOp{opBase: opBase{bufferDesc(buf)}, Range: buf, Data: data}), nil
}

// BufferZero produces a zero-filled Buffer(size).
func (cb *CommandBuffer) BufferZero(size int) (Register, error) {
	return cb.BufferInit(size, nil)
}

// BufferFromImage produces a Buffer whose size is src's GPU-aligned total
// byte length.
func (cb *CommandBuffer) BufferFromImage(src Register) (Register, error) {
	if err := cb.requireTexture(src); err != nil {
		return 0, err
	}
	desc := cb.descs[src].Texture
	var size imgcc.GenericBuffer
	if concrete, ok := desc.AsConcrete(); ok {
		size = imgcc.GenericBuffer{Size: imgcc.ConcreteOf(concrete.Layout.Bytes())}
	} else {
		size = imgcc.GenericBuffer{Size: imgcc.VarOf[uint64](desc.Size.Var)}
	}
	return cb.push(BufferUnaryOp{opBase: opBase{bufferDesc(size)}, Src: src}), nil
}

// BufferOverlay preserves lhs.size; at must satisfy at%4 == 0 and is
// retained unmodified (SUPPLEMENTED FEATURES §2 — the resolved with_start
// ambiguity). Overflow past lhs's extent clips silently; no error and no
// log record is produced for it.
func (cb *CommandBuffer) BufferOverlay(lhs, rhs Register, at int) (Register, error) {
	if err := cb.requireBuffer(lhs); err != nil {
		return 0, err
	}
	if err := cb.requireBuffer(rhs); err != nil {
		return 0, err
	}
	if at%4 != 0 {
		return 0, imgcc.ErrCommandOther("overlay placement must be a multiple of 4")
	}
	return cb.push(BufferBinaryOp{
		opBase: opBase{bufferDesc(cb.descs[lhs].Buffer)},
		Lhs:    lhs, Rhs: rhs, At: at,
	}), nil
}

// Invoke calls a linked function: compiler.Link checks the argument, result
// and generic-argument counts against the callee's CommandSignature
// (spec.md §4.4); the argument descriptors are not compared with the
// callee's inputs. Here the call is only recorded, and one InvokedResult
// register is produced per declared result descriptor.
func (cb *CommandBuffer) Invoke(function int, args []Register, generics []imgcc.Descriptor, results []imgcc.GenericDescriptor) (Register, []Register, error) {
	if function < 0 {
		return 0, nil, imgcc.ErrCommandOther("negative function index")
	}
	for _, a := range args {
		if int(a) < 0 || int(a) >= len(cb.descs) {
			return 0, nil, imgcc.ErrCommandOther("bad argument register")
		}
	}
	resultDescs := make([]RegisterDesc, len(results))
	for i, r := range results {
		resultDescs[i] = textureDesc(r)
	}
	invokeReg := cb.push(InvokeOp{
		opBase: opBase{noneDesc()}, Function: function, Args: args, Generics: generics, Results: resultDescs,
	})

	resultRegs := make([]Register, len(results))
	for i, r := range results {
		resultRegs[i] = cb.push(InvokedResultOp{opBase: opBase{textureDesc(r)}, Invoke: invokeReg, Index: i})
	}
	return invokeReg, resultRegs, nil
}

func absF64(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
