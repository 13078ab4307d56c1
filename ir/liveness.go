package ir

// Reads returns the registers op consumes, in the order a resource planner's
// backward liveness sweep should attribute a read to them (spec.md §4.5).
// InputOp, BufferInitOp, and ConstructOp kinds other than FromBuffer read
// nothing.
func Reads(op Op) []Register {
	switch v := op.(type) {
	case OutputOp:
		return []Register{v.Src}
	case RenderOp:
		return []Register{v.Src}
	case ConstructOp:
		if v.Kind == ConstructFromBuffer {
			return []Register{v.Buf}
		}
		return nil
	case UnaryOp:
		return []Register{v.Src}
	case BinaryOp:
		return []Register{v.Below, v.Above}
	case DynamicImageOp:
		return append([]Register(nil), v.Operands...)
	case BufferUnaryOp:
		return []Register{v.Src}
	case BufferBinaryOp:
		return []Register{v.Lhs, v.Rhs}
	case InvokeOp:
		return append([]Register(nil), v.Args...)
	case InvokedResultOp:
		return []Register{v.Invoke}
	default:
		return nil
	}
}
