// Package ir is the command IR: an SSA command-buffer builder over the
// descriptor algebra in package imgcc, producing a typed op list a linker
// (package compiler) monomorphizes and lowers.
package ir

import "github.com/gogpu/imgcc"

// Register is an SSA index into a CommandBuffer's op list: the op at index
// Register defines it. Every reference to a Register from a later op is
// therefore necessarily backward (spec.md §9 "Avoid cycles").
type Register int

// RegisterKind classifies what a Register holds.
type RegisterKind uint8

const (
	// RegNone is a side-effect-only register (Output, Render, Invoke with no result).
	RegNone RegisterKind = iota
	// RegTexture holds an image.
	RegTexture
	// RegBuffer holds raw device bytes.
	RegBuffer
)

// RegisterDesc is the type carried by a Register: exactly one of Texture or
// Buffer is meaningful, selected by Kind.
type RegisterDesc struct {
	Kind    RegisterKind
	Texture imgcc.GenericDescriptor
	Buffer  imgcc.GenericBuffer
}

func noneDesc() RegisterDesc { return RegisterDesc{Kind: RegNone} }

func textureDesc(d imgcc.GenericDescriptor) RegisterDesc {
	return RegisterDesc{Kind: RegTexture, Texture: d}
}

func bufferDesc(b imgcc.GenericBuffer) RegisterDesc {
	return RegisterDesc{Kind: RegBuffer, Buffer: b}
}

// GenericVar is an index into a CommandBuffer's variable table. Bounds are
// currently always empty (reserved for future subtyping, per spec.md §3).
type GenericVar struct {
	Index int
}

// DescriptorVar is a GenericVar known to range over image descriptors, used
// where a builder call needs to distinguish a descriptor-typed variable from
// one ranging over plain values (there are none of the latter yet, but the
// distinction documents intent at call sites).
type DescriptorVar struct {
	GenericVar
}

// CommandSignature is a function's interface: how many generic variables it
// declares, and its input/output descriptors (each possibly referencing one
// of those variables). compiler.Link checks an Invoke's argument, result and
// generic-argument counts against the callee's CommandSignature.
type CommandSignature struct {
	Vars    int
	Inputs  []imgcc.GenericDescriptor
	Outputs []imgcc.GenericDescriptor
}
