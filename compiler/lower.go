package compiler

import (
	"github.com/gogpu/imgcc"
	"github.com/gogpu/imgcc/gpucore"
	"github.com/gogpu/imgcc/ir"
	"github.com/gogpu/imgcc/shader"
)

// invokeResolver maps an Invoke's (function, resolved generics) pair onto a
// monomorphic function index in the Program under construction — supplied by
// Link, which owns the work-stack/monomorphic-table bookkeeping (spec.md
// §4.4). lowerBuffer itself only lowers one already-resolved specialization.
type invokeResolver func(function int, generics []imgcc.Descriptor, argCount, resultCount int) (int, error)

// lowerBuffer translates one CommandBuffer, monomorphized under tys, into a
// FunctionLinked: the bracketed low-level op sequence of spec.md §4.6, a
// liveness-driven resource assignment (§4.5), and dense knob ids recorded
// into prog's shared knob table (§4.7).
//
// bufIdx identifies cb within the union of buffers Link was given, and keys
// prog.RegisterKnobs together with the knob's register. The key carries no
// type arguments, so every specialization of the same generic buffer shares
// the knob id of a given register.
func lowerBuffer(bufIdx int, cb *ir.CommandBuffer, tys []imgcc.Descriptor, builtins shader.BuiltinSet, prog *Program, resolve invokeResolver) (FunctionLinked, error) {
	pool := newResourcePool()
	liveness := computeLiveness(cb)
	resources := newResourceAssignment()
	knobSpecs := cb.Knobs()
	invokeResults := make(map[ir.Register][]gpucore.TextureID)

	n := cb.NumOps()
	sink := make(map[ir.Register]bool, n)
	for i := 0; i < n; i++ {
		switch v := cb.Op(ir.Register(i)).(type) {
		case ir.OutputOp:
			sink[v.Src] = true
		case ir.RenderOp:
			sink[v.Src] = true
		}
	}

	knobUser := func(reg ir.Register) KnobUser {
		spec, ok := knobSpecs[reg]
		if !ok || spec.Kind == ir.KnobNone {
			return KnobUser{Kind: KnobUserNone}
		}
		key := RegisterKnobKey{LinkIdx: bufIdx, Register: reg}
		if id, ok := prog.RegisterKnobs[key]; ok {
			return KnobUser{Kind: KnobUserRuntime, ID: id}
		}
		rec := KnobRecord{Kind: spec.Kind, Start: spec.Start}
		if spec.Kind == ir.KnobBuffer {
			rec.Buffer = resources.Buffers[spec.Buffer]
		}
		id := len(prog.Knobs)
		prog.Knobs = append(prog.Knobs, rec)
		prog.RegisterKnobs[key] = id
		return KnobUser{Kind: KnobUserRuntime, ID: id}
	}

	var ops []Op

	for i := 0; i < n; i++ {
		reg := ir.Register(i)
		desc := cb.Desc(reg)

		switch v := cb.Op(reg).(type) {
		case ir.InputOp:
			concrete := v.Desc.Monomorphize(tys)
			id := pool.allocTexture(concrete)
			resources.Textures[reg] = id
			ops = append(ops, InputOp{Register: reg, Texture: id})

		case ir.OutputOp:
			ops = append(ops, OutputOp{Src: v.Src, Texture: resources.Textures[v.Src]})

		case ir.RenderOp:
			ops = append(ops, RenderOp{Src: v.Src, Texture: resources.Textures[v.Src]})

		case ir.ConstructOp:
			concrete := v.Desc.Monomorphize(tys)
			id := pool.allocTexture(concrete)
			resources.Textures[reg] = id
			ops = append(ops, StackPushOp{Frame: "construct"})
			if v.Kind == ir.ConstructFromBuffer {
				ops = append(ops, CopyOp{SrcBuffer: resources.Buffers[v.Buf], FromBuffer: true, DstTexture: id})
			} else {
				var inv shader.Invocation
				switch v.Kind {
				case ir.ConstructSolid:
					var color [4]float32
					copy(color[:], v.Color)
					inv = shader.SolidRGB{Color: color, Spirv: builtins.SolidRGB}
				case ir.ConstructBilinear:
					b := shader.MGrid(float32(concrete.Layout.Width), float32(concrete.Layout.Height))
					b.Spirv = builtins.Bilinear
					inv = b
				case ir.ConstructNormal2d:
					inv = shader.DistributionNormal2d{Spirv: builtins.DistributionNormal2d}
				default: // ConstructFractalNoise
					inv = shader.FractalNoise{Spirv: builtins.FractalNoise}
				}
				ops = append(ops, DrawIntoOp{
					Dst:    Target{Kind: TargetDiscard, Texture: id},
					Shader: FragmentShaderInvocation{Kind: DrawPaintFullScreen, Invocation: inv, Knob: knobUser(reg)},
				})
			}
			ops = append(ops, DoneOp{Register: reg}, StackPopOp{})

		case ir.UnaryOp:
			switch v.Kind {
			case ir.UnaryCrop:
				srcID := resources.Textures[v.Src]
				dstConcrete := desc.Texture.Monomorphize(tys)
				id := pool.allocTexture(dstConcrete)
				resources.Textures[reg] = id
				region := imgcc.RectangleWithWidthHeight(v.Rect.Width(), v.Rect.Height())
				ops = append(ops, StackPushOp{Frame: "crop"})
				ops = append(ops, PushOperandOp{Texture: srcID})
				ops = append(ops, DrawIntoOp{
					Dst: Target{Kind: TargetDiscard, Texture: id},
					Shader: FragmentShaderInvocation{
						Kind:       DrawPaintToSelection,
						Invocation: shader.PaintOnTop{Kind: shader.PaintOnTopCopy, Spirv: builtins.PaintOnTopCopy},
						Selection:  v.Rect,
						Target:     QuadTargetFullScreen(),
						Viewport:   region,
					},
				})
				ops = append(ops, DoneOp{Register: reg}, StackPopOp{})

			case ir.UnaryColorConvert:
				srcConcrete, _ := cb.Desc(v.Src).Texture.AsConcrete()
				dstConcrete, _ := desc.Texture.AsConcrete()
				conv, err := imgcc.SelectColorConversion(srcConcrete.Color, dstConcrete.Color)
				if err != nil {
					return FunctionLinked{}, imgcc.NewCompileError(err.Error())
				}
				id := pool.allocTexture(dstConcrete)
				resources.Textures[reg] = id
				srcID := resources.Textures[v.Src]

				var inv shader.Invocation
				switch conv {
				case imgcc.ConvXYZ:
					toXYZ := imgcc.RGBToXYZ(srcConcrete.Color.Primary, srcConcrete.Color.Whitepoint)
					fromXYZ := imgcc.XYZToRGB(dstConcrete.Color.Primary, dstConcrete.Color.Whitepoint)
					inv = shader.LinearColorMatrix{Matrix: fromXYZ.MultiplyRight(toXYZ), Spirv: builtins.LinearColorMatrix}
				case imgcc.ConvXYZToOklab:
					toXYZ := imgcc.RGBToXYZ(srcConcrete.Color.Primary, srcConcrete.Color.Whitepoint)
					inv = shader.OklabTransform{XYZTransform: toXYZ, Direction: shader.Encode, Spirv: builtins.OklabEncode}
				case imgcc.ConvOklabToXYZ:
					fromXYZ := imgcc.XYZToRGB(dstConcrete.Color.Primary, dstConcrete.Color.Whitepoint)
					inv = shader.OklabTransform{XYZTransform: fromXYZ, Direction: shader.Decode, Spirv: builtins.OklabDecode}
				case imgcc.ConvXYZToSrLab2:
					toXYZ := imgcc.RGBToXYZ(srcConcrete.Color.Primary, srcConcrete.Color.Whitepoint)
					inv = shader.Srlab2Transform{Matrix: toXYZ, Whitepoint: dstConcrete.Color.SrLab2Whitepoint, Direction: shader.Encode, Spirv: builtins.Srlab2Encode}
				case imgcc.ConvSrLab2ToXYZ:
					fromXYZ := imgcc.XYZToRGB(dstConcrete.Color.Primary, dstConcrete.Color.Whitepoint)
					inv = shader.Srlab2Transform{Matrix: fromXYZ, Whitepoint: srcConcrete.Color.SrLab2Whitepoint, Direction: shader.Decode, Spirv: builtins.Srlab2Decode}
				}
				ops = append(ops, StackPushOp{Frame: "color_convert"})
				ops = append(ops, PushOperandOp{Texture: srcID})
				ops = append(ops, DrawIntoOp{
					Dst:    Target{Kind: TargetDiscard, Texture: id},
					Shader: FragmentShaderInvocation{Kind: DrawPaintFullScreen, Invocation: inv, Knob: knobUser(reg)},
				})
				ops = append(ops, DoneOp{Register: reg}, StackPopOp{})

			case ir.UnaryChromaticAdaptation:
				srcConcrete, _ := cb.Desc(v.Src).Texture.AsConcrete()
				dstConcrete, ok := desc.Texture.AsConcrete()
				if !ok {
					dstConcrete = srcConcrete
				}
				adapt, err := imgcc.ChromaticAdaptationMatrix(v.AdaptationMethod, v.SrcWhitepoint, v.TargetWhitepoint)
				if err != nil {
					return FunctionLinked{}, imgcc.NewCompileError("chromatic adaptation: " + err.Error())
				}
				toXYZ := imgcc.RGBToXYZ(srcConcrete.Color.Primary, v.SrcWhitepoint)
				fromXYZ := imgcc.XYZToRGB(srcConcrete.Color.Primary, v.TargetWhitepoint)
				m := fromXYZ.MultiplyRight(adapt).MultiplyRight(toXYZ)
				id := pool.allocTexture(dstConcrete)
				resources.Textures[reg] = id
				srcID := resources.Textures[v.Src]
				ops = append(ops, StackPushOp{Frame: "chromatic_adaptation"})
				ops = append(ops, PushOperandOp{Texture: srcID})
				ops = append(ops, DrawIntoOp{
					Dst:    Target{Kind: TargetDiscard, Texture: id},
					Shader: FragmentShaderInvocation{Kind: DrawPaintFullScreen, Invocation: shader.LinearColorMatrix{Matrix: m, Spirv: builtins.LinearColorMatrix}, Knob: knobUser(reg)},
				})
				ops = append(ops, DoneOp{Register: reg}, StackPopOp{})

			case ir.UnaryTransmute:
				dstConcrete, ok := desc.Texture.AsConcrete()
				if !ok {
					dstConcrete = desc.Texture.Monomorphize(tys)
				}
				id := pool.allocTexture(dstConcrete)
				resources.Textures[reg] = id
				srcID := resources.Textures[v.Src]
				ops = append(ops, StackPushOp{Frame: "transmute"})
				ops = append(ops, CopyOp{SrcTexture: srcID, DstTexture: id})
				ops = append(ops, DoneOp{Register: reg}, StackPopOp{})

			case ir.UnaryDerivative:
				dstConcrete, ok := desc.Texture.AsConcrete()
				if !ok {
					dstConcrete = desc.Texture.Monomorphize(tys)
				}
				id := pool.allocTexture(dstConcrete)
				resources.Textures[reg] = id
				srcID := resources.Textures[v.Src]
				kernel := derivativeKernel(v.DerivMethod, v.DerivDirection)
				ops = append(ops, StackPushOp{Frame: "derivative"})
				ops = append(ops, PushOperandOp{Texture: srcID})
				ops = append(ops, DrawIntoOp{
					Dst:    Target{Kind: TargetDiscard, Texture: id},
					Shader: FragmentShaderInvocation{Kind: DrawPaintFullScreen, Invocation: shader.Box3{Matrix: kernel, Spirv: builtins.Box3}, Knob: knobUser(reg)},
				})
				ops = append(ops, DoneOp{Register: reg}, StackPopOp{})

			case ir.UnaryExtract, ir.UnaryVignette:
				return FunctionLinked{}, imgcc.NewCompileError("op recognized but not yet lowered")
			}

		case ir.BinaryOp:
			switch v.Kind {
			case ir.BinaryInscribe:
				belowID := resources.Textures[v.Below]
				aboveID := resources.Textures[v.Above]
				belowConcrete, _ := cb.Desc(v.Below).Texture.AsConcrete()
				id := pool.allocTexture(belowConcrete)
				resources.Textures[reg] = id
				full := imgcc.RectangleWithWidthHeight(belowConcrete.Layout.Width, belowConcrete.Layout.Height)
				ops = append(ops, StackPushOp{Frame: "inscribe"})
				ops = append(ops, PushOperandOp{Texture: belowID})
				ops = append(ops, DrawIntoOp{
					Dst: Target{Kind: TargetDiscard, Texture: id},
					Shader: FragmentShaderInvocation{
						Kind:       DrawPaintToSelection,
						Invocation: shader.PaintOnTop{Kind: shader.PaintOnTopCopy, Spirv: builtins.PaintOnTopCopy},
						Selection:  full, Target: QuadTargetFullScreen(), Viewport: full,
					},
				})
				ops = append(ops, PushOperandOp{Texture: aboveID})
				ops = append(ops, DrawIntoOp{
					Dst: Target{Kind: TargetLoad, Texture: id},
					Shader: FragmentShaderInvocation{
						Kind:       DrawPaintToSelection,
						Invocation: shader.PaintOnTop{Kind: shader.PaintOnTopCopy, Spirv: builtins.PaintOnTopCopy},
						Selection:  v.Rect,
						Target:     QuadTargetFromRect(v.Rect, belowConcrete.Layout.Width, belowConcrete.Layout.Height),
						Viewport:   v.Rect,
					},
				})
				ops = append(ops, DoneOp{Register: reg}, StackPopOp{})

			case ir.BinaryInject:
				lhsID := resources.Textures[v.Below]
				rhsID := resources.Textures[v.Above]
				lhsConcrete, _ := cb.Desc(v.Below).Texture.AsConcrete()
				id := pool.allocTexture(lhsConcrete)
				resources.Textures[reg] = id

				mix := [4]float32{1, 0, 0, 0}
				if pos, ok := imgcc.NewChannelPosition(v.Channel); ok {
					mix = pos.IntoVec4()
				}
				color, _ := imgcc.Texel{Parts: v.FromChannels}.ChannelWeightVec4()

				ops = append(ops, StackPushOp{Frame: "inject"})
				ops = append(ops, PushOperandOp{Texture: lhsID})
				ops = append(ops, PushOperandOp{Texture: rhsID})
				ops = append(ops, DrawIntoOp{
					Dst:    Target{Kind: TargetDiscard, Texture: id},
					Shader: FragmentShaderInvocation{Kind: DrawPaintFullScreen, Invocation: shader.Inject{Mix: mix, Color: color, Spirv: builtins.Inject}, Knob: knobUser(reg)},
				})
				ops = append(ops, DoneOp{Register: reg}, StackPopOp{})

			case ir.BinaryPalette:
				indicesID := resources.Textures[v.Below]
				paletteID := resources.Textures[v.Above]
				dstConcrete := desc.Texture.Monomorphize(tys)
				id := pool.allocTexture(dstConcrete)
				resources.Textures[reg] = id
				xPos, _ := imgcc.NewChannelPosition(imgcc.ChannelR)
				yPos, _ := imgcc.NewChannelPosition(imgcc.ChannelG)
				ops = append(ops, StackPushOp{Frame: "palette"})
				ops = append(ops, PushOperandOp{Texture: indicesID})
				ops = append(ops, PushOperandOp{Texture: paletteID})
				ops = append(ops, DrawIntoOp{
					Dst:    Target{Kind: TargetDiscard, Texture: id},
					Shader: FragmentShaderInvocation{Kind: DrawPaintFullScreen, Invocation: shader.Palette{XCoord: xPos.IntoVec4(), YCoord: yPos.IntoVec4(), Spirv: builtins.Palette}, Knob: knobUser(reg)},
				})
				ops = append(ops, DoneOp{Register: reg}, StackPopOp{})

			case ir.BinaryAffine:
				belowID := resources.Textures[v.Below]
				aboveID := resources.Textures[v.Above]
				belowConcrete, _ := cb.Desc(v.Below).Texture.AsConcrete()
				id := pool.allocTexture(belowConcrete)
				resources.Textures[reg] = id
				region := imgcc.RectangleWithWidthHeight(belowConcrete.Layout.Width, belowConcrete.Layout.Height)
				minX, minY, maxX, maxY := region.Affine(v.Matrix)
				quad := imgcc.Rectangle{X: clampU32(minX), Y: clampU32(minY), MaxX: clampU32(maxX), MaxY: clampU32(maxY)}
				ops = append(ops, StackPushOp{Frame: "affine"})
				ops = append(ops, PushOperandOp{Texture: belowID})
				ops = append(ops, DrawIntoOp{
					Dst: Target{Kind: TargetDiscard, Texture: id},
					Shader: FragmentShaderInvocation{
						Kind:       DrawPaintToSelection,
						Invocation: shader.PaintOnTop{Kind: shader.PaintOnTopCopy, Spirv: builtins.PaintOnTopCopy},
						Selection:  region, Target: QuadTargetFullScreen(), Viewport: region,
					},
				})
				ops = append(ops, PushOperandOp{Texture: aboveID})
				ops = append(ops, DrawIntoOp{
					Dst: Target{Kind: TargetLoad, Texture: id},
					Shader: FragmentShaderInvocation{
						Kind:       DrawPaintToSelection,
						Invocation: shader.PaintOnTop{Kind: shader.PaintOnTopCopy, Spirv: builtins.PaintOnTopCopy},
						Selection:  quad, Target: QuadTargetFromRect(quad, belowConcrete.Layout.Width, belowConcrete.Layout.Height), Viewport: region,
					},
				})
				ops = append(ops, DoneOp{Register: reg}, StackPopOp{})

			case ir.BinaryGainMap:
				return FunctionLinked{}, imgcc.NewCompileError("gain map is reserved and not lowered")
			}

		case ir.DynamicImageOp:
			operandIDs := make([]gpucore.TextureID, len(v.Operands))
			for j, opReg := range v.Operands {
				operandIDs[j] = resources.Textures[opReg]
			}
			dstConcrete := v.Desc.Monomorphize(tys)
			id := pool.allocTexture(dstConcrete)
			resources.Textures[reg] = id
			ops = append(ops, StackPushOp{Frame: "dynamic_image"})
			for _, opID := range operandIDs {
				ops = append(ops, PushOperandOp{Texture: opID})
			}
			ops = append(ops, DrawIntoOp{
				Dst:    Target{Kind: TargetDiscard, Texture: id},
				Shader: FragmentShaderInvocation{Kind: DrawPaintFullScreen, Invocation: shader.Runtime{Spirv: v.Spirv, Args: v.NumArgs}, Knob: knobUser(reg)},
			})
			ops = append(ops, DoneOp{Register: reg}, StackPopOp{})

		case ir.BufferInitOp:
			size := v.Range.Monomorphize(tys)
			id := pool.allocBuffer(size)
			resources.Buffers[reg] = id
			ops = append(ops, StackPushOp{Frame: "buffer_init"})
			ops = append(ops, WriteIntoOp{Dst: id, Kind: WriteZero})
			ops = append(ops, WriteIntoOp{Dst: id, Kind: WritePut, Placement: 0, Data: v.Data, Knob: knobUser(reg)})
			ops = append(ops, DoneOp{Register: reg}, StackPopOp{})

		case ir.BufferUnaryOp:
			srcID := resources.Textures[v.Src]
			size := desc.Buffer.Monomorphize(tys)
			id := pool.allocBuffer(size)
			resources.Buffers[reg] = id
			ops = append(ops, StackPushOp{Frame: "buffer_from_image"})
			ops = append(ops, CopyOp{SrcTexture: srcID, DstBuffer: id, ToBuffer: true})
			ops = append(ops, DoneOp{Register: reg}, StackPopOp{})

		case ir.BufferBinaryOp:
			lhsID := resources.Buffers[v.Lhs]
			rhsID := resources.Buffers[v.Rhs]
			lhsSize := desc.Buffer.Monomorphize(tys)
			id := pool.allocBuffer(lhsSize)
			resources.Buffers[reg] = id
			ops = append(ops, StackPushOp{Frame: "buffer_overlay"})
			ops = append(ops, CopyOp{SrcBuffer: lhsID, FromBuffer: true, DstBuffer: id, ToBuffer: true})
			ops = append(ops, CopyOp{SrcBuffer: rhsID, FromBuffer: true, DstBuffer: id, ToBuffer: true, DstPlacement: v.At})
			ops = append(ops, DoneOp{Register: reg}, StackPopOp{})

		case ir.InvokeOp:
			calleeIdx, err := resolve(v.Function, v.Generics, len(v.Args), len(v.Results))
			if err != nil {
				return FunctionLinked{}, err
			}
			bindings := make([]CallBinding, 0, len(v.Args)+len(v.Results))
			for _, a := range v.Args {
				bindings = append(bindings, CallBinding{Kind: InTexture, Texture: resources.Textures[a]})
			}
			resultIDs := make([]gpucore.TextureID, len(v.Results))
			for j, rd := range v.Results {
				concrete := rd.Texture.Monomorphize(v.Generics)
				resultIDs[j] = pool.allocTexture(concrete)
			}
			for _, id := range resultIDs {
				bindings = append(bindings, CallBinding{Kind: OutTexture, Texture: id})
			}
			invokeResults[reg] = resultIDs
			ops = append(ops, CallOp{Function: calleeIdx, Bindings: bindings})

		case ir.InvokedResultOp:
			id := invokeResults[v.Invoke][v.Index]
			resources.Textures[reg] = id
			ops = append(ops, StackPushOp{Frame: "invoked_result"})
			ops = append(ops, UninitOp{Dst: Target{Kind: TargetDiscard, Texture: id}})
			ops = append(ops, DoneOp{Register: reg}, StackPopOp{})
		}

		for candidate, iv := range liveness {
			if iv.last != i || sink[candidate] {
				continue
			}
			if texID, ok := resources.Textures[candidate]; ok {
				if d, ok := cb.Desc(candidate).Texture.AsConcrete(); ok {
					pool.retireTexture(d, texID)
				}
			}
			if bufID, ok := resources.Buffers[candidate]; ok {
				if size, ok := cb.Desc(candidate).Buffer.AsConcrete(); ok {
					pool.retireBuffer(size, bufID)
				}
			}
		}
	}

	return FunctionLinked{BufIdx: bufIdx, Tys: tys, Ops: ops, Resources: resources, Signature: cb.Signature()}, nil
}

// derivativeKernel selects a Box3 kernel by method, transposed for the
// vertical direction — Sobel/Scharr/Prewitt are the three families the
// corpus's box3 shader documents as valid 3x3 edge kernels.
func derivativeKernel(method ir.DerivativeMethod, direction ir.DerivativeDirection) imgcc.RowMatrix {
	var m imgcc.RowMatrix
	switch method {
	case ir.DerivativeSobel:
		m = imgcc.RowMatrix{M00: 1, M01: 0, M02: -1, M10: 2, M11: 0, M12: -2, M20: 1, M21: 0, M22: -1}
	case ir.DerivativeScharr3, ir.DerivativeScharr3To4Bit, ir.DerivativeScharr3To8Bit:
		m = imgcc.RowMatrix{M00: 3, M01: 0, M02: -3, M10: 10, M11: 0, M12: -10, M20: 3, M21: 0, M22: -3}
	default: // DerivativePrewitt
		m = imgcc.RowMatrix{M00: 1, M01: 0, M02: -1, M10: 1, M11: 0, M12: -1, M20: 1, M21: 0, M22: -1}
	}
	if direction == ir.DerivativeVertical {
		return m.Transpose()
	}
	return m
}

func clampU32(f float64) uint32 {
	if f < 0 {
		return 0
	}
	return uint32(f)
}
