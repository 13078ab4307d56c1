package executor

import (
	"fmt"

	"github.com/gogpu/imgcc/gpucore"
	"github.com/gogpu/imgcc/internal/cache"
	"github.com/gogpu/imgcc/shader"
)

// ModuleCache is the compiled-shader-module cache: keyed by a shader's
// cache Key (shader.Key), it lets an adapter reuse a compiled GPU module
// across every draw that shares the same built-in shader identity instead
// of recompiling per DrawInto. An invocation whose Key method reports false
// has no key to look up here and is compiled directly; Runtime keys are
// cached like built-in ones (spec.md §4.2).
//
// This is the one legitimate use of internal/cache's generic LRU in this
// module: the linker's monomorphic-function table (compiler/link.go) must
// never evict a reachable specialization, so it uses a plain map instead.
type ModuleCache struct {
	inner *cache.ShardedCache[shader.Key, gpucore.ShaderModuleID]
}

// keyHasher turns a shader.Key's printed representation into a hash.
// shader.Key's fields are unexported, so this is the only hashing option
// available from outside the shader package; fmt's reflection-based %+v
// still distinguishes every field, which is all a Hasher needs.
func keyHasher(k shader.Key) uint64 {
	return cache.StringHasher(fmt.Sprintf("%+v", k))
}

// NewModuleCache creates a ModuleCache with capacity entries per shard
// (see internal/cache.DefaultShardCount for the shard count and
// internal/cache.DefaultCapacity for the per-shard size used when capacity
// is not positive).
func NewModuleCache(capacity int) *ModuleCache {
	return &ModuleCache{inner: cache.NewSharded[shader.Key, gpucore.ShaderModuleID](capacity, keyHasher)}
}

// Get returns the compiled module for key, if present.
func (c *ModuleCache) Get(key shader.Key) (gpucore.ShaderModuleID, bool) {
	return c.inner.Get(key)
}

// Set records id as the compiled module for key.
func (c *ModuleCache) Set(key shader.Key, id gpucore.ShaderModuleID) {
	c.inner.Set(key, id)
}

// GetOrCreate returns the cached module for key, compiling and storing it
// via create on a miss.
func (c *ModuleCache) GetOrCreate(key shader.Key, create func() gpucore.ShaderModuleID) gpucore.ShaderModuleID {
	return c.inner.GetOrCreate(key, create)
}

// Clear evicts every cached module, e.g. on device loss.
func (c *ModuleCache) Clear() {
	c.inner.Clear()
}

// Len returns the number of modules currently cached.
func (c *ModuleCache) Len() int {
	return c.inner.Len()
}
