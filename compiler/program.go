package compiler

import (
	"github.com/gogpu/imgcc"
	"github.com/gogpu/imgcc/gpucore"
	"github.com/gogpu/imgcc/ir"
)

// ResourceAssignment is the register -> gpucore ID table a planner builds
// for one lowered command buffer (spec.md §4.5).
type ResourceAssignment struct {
	Textures map[ir.Register]gpucore.TextureID
	Buffers  map[ir.Register]gpucore.BufferID
}

func newResourceAssignment() ResourceAssignment {
	return ResourceAssignment{
		Textures: make(map[ir.Register]gpucore.TextureID),
		Buffers:  make(map[ir.Register]gpucore.BufferID),
	}
}

// KnobRecord is one entry of a Program's dense knob table: how the
// executor should source this knob's bytes at launch time.
type KnobRecord struct {
	Kind   ir.KnobKind // KnobRuntime or KnobBuffer
	Buffer gpucore.BufferID
	Start  int
}

// RegisterKnobKey addresses a knob by the function that declared it and
// the register its knob-wrapped op produced.
type RegisterKnobKey struct {
	LinkIdx  int
	Register ir.Register
}

// FunctionLinked is one monomorphic specialization reached by Link: a
// buffer index and type-argument tuple, its lowered op stream, resource
// plan, and I/O signature.
type FunctionLinked struct {
	BufIdx    int
	Tys       []imgcc.Descriptor
	Ops       []Op
	Resources ResourceAssignment
	Signature ir.CommandSignature
}

// Program is the immutable result of Link: every reached specialization,
// the entry point, and the dense knob table (spec.md §3 "Programs are
// immutable after linking").
type Program struct {
	Functions     []FunctionLinked
	Entry         int
	Knobs         []KnobRecord
	RegisterKnobs map[RegisterKnobKey]int
}

// FlatOps concatenates every function's op stream in Functions order,
// alongside the half-open [start,end) op-index range each
// occupies — the "single flat low-level op stream" of spec.md §2.
func (p *Program) FlatOps() (ops []Op, ranges []struct{ Start, End int }) {
	offset := 0
	for _, fn := range p.Functions {
		start := offset
		ops = append(ops, fn.Ops...)
		offset += len(fn.Ops)
		ranges = append(ranges, struct{ Start, End int }{start, offset})
	}
	return ops, ranges
}
