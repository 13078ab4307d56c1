// Package imgcc provides the descriptor algebra for an image-processing
// compiler and runtime: texel and color types, byte layouts, rectangles, and
// 3x3 row-major transform matrices shared by the ir, shader, and compiler
// packages.
//
// # Overview
//
// imgcc itself never touches a GPU. It describes the shapes that flow
// through the compiler: a Texel (bit-level pixel encoding), a Color (its
// colorimetric interpretation), a Descriptor (a concrete image type with a
// byte layout), and a Rectangle (sub-region selection). The ir package
// builds SSA command buffers against these types; the compiler package
// monomorphizes, plans resources, and lowers them into a flat low-level op
// stream for an external executor.
//
// # Architecture
//
//   - imgcc (this package): descriptor algebra
//   - imgcc/shader: the built-in shader catalogue and uniform packing
//   - imgcc/ir: the SSA command IR and its builders
//   - imgcc/compiler: linker, monomorphizer, resource planner, lowering
//   - imgcc/gpucore: opaque GPU resource ID types shared with an executor
//   - imgcc/executor: the executor-facing contract and adapter registry
//
// # Coordinate system
//
// Rectangle coordinates are unsigned integer pixels with a top-left origin.
// Quad targets used by the compiler's lowered draws are UV in [0,1]^2 with
// top-left = (0,0) and bottom-right = (1,1).
package imgcc
