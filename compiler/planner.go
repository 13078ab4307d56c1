package compiler

import (
	"github.com/gogpu/imgcc"
	"github.com/gogpu/imgcc/gpucore"
	"github.com/gogpu/imgcc/ir"
)

// interval is a register's liveness window, inclusive of the op that
// defines it and the op that last reads it (spec.md §4.5, §8 invariant 1).
type interval struct{ first, last int }

// computeLiveness performs the single backward sweep described in §4.5:
// every read updates the referenced register's last use; every register's
// first use is the op that defines it.
func computeLiveness(cb *ir.CommandBuffer) map[ir.Register]*interval {
	n := cb.NumOps()
	intervals := make(map[ir.Register]*interval, n)
	for i := 0; i < n; i++ {
		intervals[ir.Register(i)] = &interval{first: i, last: i}
	}
	for i := n - 1; i >= 0; i-- {
		for _, src := range ir.Reads(cb.Op(ir.Register(i))) {
			if iv, ok := intervals[src]; ok && i > iv.last {
				iv.last = i
			}
		}
	}
	return intervals
}

// textureClass is the allocator's texture reuse-equivalence key: same
// texel, same color, same size.
type textureClass struct {
	texel imgcc.Texel
	color imgcc.Color
	w, h  uint32
}

// resourcePool is a minimal stand-in for the externally-owned pool spec.md
// §4.5/§5 describes: it hands out opaque sequential IDs and maintains a
// free list keyed by descriptor/length equivalence so retired registers'
// resources are reused by later registers with a compatible shape. A real
// executor substitutes its own device-backed pool; this one only needs to
// honor the same reuse contract for resource-plan tests.
type resourcePool struct {
	nextTexture gpucore.TextureID
	nextBuffer  gpucore.BufferID
	freeTex     map[textureClass][]gpucore.TextureID
	freeBuf     map[uint64][]gpucore.BufferID
}

func newResourcePool() *resourcePool {
	return &resourcePool{
		freeTex: make(map[textureClass][]gpucore.TextureID),
		freeBuf: make(map[uint64][]gpucore.BufferID),
	}
}

func textureClassOf(desc imgcc.Descriptor) textureClass {
	return textureClass{texel: desc.Texel, color: desc.Color, w: desc.Layout.Width, h: desc.Layout.Height}
}

func (p *resourcePool) allocTexture(desc imgcc.Descriptor) gpucore.TextureID {
	cls := textureClassOf(desc)
	if free := p.freeTex[cls]; len(free) > 0 {
		id := free[len(free)-1]
		p.freeTex[cls] = free[:len(free)-1]
		return id
	}
	p.nextTexture++
	return p.nextTexture
}

func (p *resourcePool) retireTexture(desc imgcc.Descriptor, id gpucore.TextureID) {
	cls := textureClassOf(desc)
	p.freeTex[cls] = append(p.freeTex[cls], id)
}

func (p *resourcePool) allocBuffer(size uint64) gpucore.BufferID {
	if free := p.freeBuf[size]; len(free) > 0 {
		id := free[len(free)-1]
		p.freeBuf[size] = free[:len(free)-1]
		return id
	}
	p.nextBuffer++
	return p.nextBuffer
}

func (p *resourcePool) retireBuffer(size uint64, id gpucore.BufferID) {
	p.freeBuf[size] = append(p.freeBuf[size], id)
}
