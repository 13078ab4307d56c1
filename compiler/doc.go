// Package compiler links one or more [github.com/gogpu/imgcc/ir] command
// buffers into a single [Program]: a flat, ordered low-level op stream plus
// the resource assignment and knob table an executor needs to run it.
//
// Link walks a primary buffer under a set of initial type arguments,
// monomorphizing generic Invoke calls on demand (§4.4), lowers each reached
// command buffer through a liveness-driven resource planner (§4.5) into the
// bracketed draw/copy/write sequence described by spec.md §4.6, and assigns
// dense runtime-rebindable knob ids (§4.7) to every knob-bearing op.
package compiler
