package compiler

import (
	"fmt"

	"github.com/gogpu/imgcc"
	"github.com/gogpu/imgcc/ir"
	"github.com/gogpu/imgcc/shader"
)

// LinkUnit is one command buffer in the union Link operates over, paired
// with its link map: for each function declaration index an Invoke within
// Buffer might reference, which index into the unit union it resolves to
// (spec.md §4.4).
type LinkUnit struct {
	Buffer  *ir.CommandBuffer
	LinkMap []int
}

type pendingSpecialization struct {
	bufIdx int
	tys    []imgcc.Descriptor
}

// Link monomorphizes and lowers a union of command buffers into a single
// Program, per spec.md §4.4: a work stack seeded with (primary, tys),
// popped and lowered one specialization at a time, with every Invoke
// encountered during lowering resolving its callee through the owning
// unit's LinkMap and enqueuing a fresh specialization when the (callee,
// generics) pair hasn't been reached before.
func Link(units []LinkUnit, primary int, tys []imgcc.Descriptor, builtins shader.BuiltinSet) (*Program, error) {
	if primary < 0 || primary >= len(units) {
		return nil, imgcc.NewCompileError("primary buffer index out of range")
	}

	prog := &Program{RegisterKnobs: make(map[RegisterKnobKey]int)}
	table := make(map[string]int)
	var stack []pendingSpecialization

	keyOf := func(bufIdx int, tys []imgcc.Descriptor) string {
		return fmt.Sprintf("%d|%v", bufIdx, tys)
	}

	reserve := func(bufIdx int, tys []imgcc.Descriptor) int {
		k := keyOf(bufIdx, tys)
		if idx, ok := table[k]; ok {
			return idx
		}
		idx := len(prog.Functions)
		prog.Functions = append(prog.Functions, FunctionLinked{})
		table[k] = idx
		stack = append(stack, pendingSpecialization{bufIdx: bufIdx, tys: tys})
		return idx
	}

	prog.Entry = reserve(primary, tys)

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		unit := units[cur.bufIdx]
		idx := table[keyOf(cur.bufIdx, cur.tys)]

		resolve := func(function int, generics []imgcc.Descriptor, argCount, resultCount int) (int, error) {
			if function < 0 || function >= len(unit.LinkMap) {
				return 0, imgcc.NewCompileError("invoke: function index out of range of link map")
			}
			calleeBufIdx := unit.LinkMap[function]
			if calleeBufIdx < 0 || calleeBufIdx >= len(units) {
				return 0, imgcc.NewCompileError("invoke: link map entry out of range of the buffer union")
			}
			calleeSig := units[calleeBufIdx].Buffer.Signature()
			if len(generics) != calleeSig.Vars {
				return 0, imgcc.NewCompileError("invoke: missing or extra generic arguments for callee")
			}
			if argCount != len(calleeSig.Inputs) || resultCount != len(calleeSig.Outputs) {
				return 0, imgcc.NewCompileError("invoke: argument/result arity does not match callee signature")
			}
			return reserve(calleeBufIdx, generics), nil
		}

		fn, err := lowerBuffer(cur.bufIdx, unit.Buffer, cur.tys, builtins, prog, resolve)
		if err != nil {
			return nil, err
		}
		prog.Functions[idx] = fn
	}

	return prog, nil
}
