// Package executor is the contract between a compiled [compiler.Program]
// and a concrete rasterization device. It defines the interface an
// executor backend implements and a registry of named executor factories,
// mirroring the teacher's backend-registration pattern
// (backend.RenderBackend / backend.Register). No concrete GPU driver lives
// here — see executor/wgpuadapter for an example adapter.
package executor

import (
	"errors"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/imgcc/compiler"
	"github.com/gogpu/imgcc/gpucore"
)

// Common executor errors, in the style of the teacher's
// backend/backend.go sentinel-error pair.
var (
	// ErrExecutorNotAvailable is returned when a requested executor is not registered.
	ErrExecutorNotAvailable = errors.New("executor: not available")

	// ErrNotInitialized is returned when Run is called before Init.
	ErrNotInitialized = errors.New("executor: not initialized")

	// ErrUnsupportedOp is returned by an adapter that recognizes an op's
	// type but cannot execute it (e.g. a capability its device lacks).
	ErrUnsupportedOp = errors.New("executor: op not supported by this adapter")
)

// Device is the opaque per-call capability descriptor an executor
// receives from its host (spec.md §5: "only requires an opaque capability
// descriptor"). It is an alias for gpucontext.DeviceProvider so adapters
// can be handed a real device/queue/adapter triple without this package
// depending on any single GPU backend.
type Device = gpucontext.DeviceProvider

// Executor runs a linked [compiler.Program] against a concrete device: one
// method per low-level op family (compiler/lowlevel.go's Op catalogue),
// plus the Rebind pair a caller uses between launches to mutate a knob
// without relinking (spec.md §4.7, §8 invariant 8).
type Executor interface {
	// Name returns the executor identifier (e.g. "wgpu", "software").
	Name() string

	// Init acquires whatever per-device state the adapter needs. Must be
	// called before Run.
	Init(dev Device) error

	// Close releases all executor resources. The executor must not be
	// used after Close is called.
	Close()

	// Run executes every op of prog.FlatOps() in order against dev,
	// starting from prog.Entry's function.
	Run(prog *compiler.Program, dev Device) error

	// StackPush/StackPop bracket one register's defining op sequence;
	// Done marks the bracketed register as defined.
	StackPush(op compiler.StackPushOp) error
	StackPop(op compiler.StackPopOp) error
	Done(op compiler.DoneOp) error

	// PushOperand binds a texture as the next sampler input to the
	// DrawInto that immediately follows it in the op stream.
	PushOperand(op compiler.PushOperandOp) error

	// DrawInto issues a full-screen or selection-targeted fragment draw.
	DrawInto(op compiler.DrawIntoOp) error

	// Copy blits bytes between a texture and/or buffer without a shader.
	Copy(op compiler.CopyOp) error

	// Uninit allocates a destination without defining its contents.
	Uninit(op compiler.UninitOp) error

	// WriteInto zeroes or writes bytes into a buffer.
	WriteInto(op compiler.WriteIntoOp) error

	// Call executes a linked function's op range to completion with the
	// given I/O bindings before the next op runs.
	Call(op compiler.CallOp) error

	// Input binds a host-supplied source image at a register.
	Input(op compiler.InputOp) error

	// Output retrieves the texture assigned to a register.
	Output(op compiler.OutputOp) error

	// Render is like Output but writes to a caller-supplied render target.
	Render(op compiler.RenderOp) error

	// Rebind overwrites a Runtime-kind knob's bytes ahead of the next Run,
	// without relinking the program (ir.KnobRuntime, program.go's
	// KnobRecord).
	Rebind(knob int, bytes []byte) error

	// RebindBuffer overwrites a Buffer-kind knob to source from a
	// different register's buffer ahead of the next Run
	// (ir.KnobBuffer).
	RebindBuffer(knob int, buf gpucore.BufferID) error
}
