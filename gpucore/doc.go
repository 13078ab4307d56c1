// Package gpucore defines the opaque resource-ID and bind-group types shared
// between a compiled [github.com/gogpu/imgcc/compiler.Program] and the
// executor that runs it.
//
// # Architecture
//
// imgcc never holds a GPU device, queue, or allocator. Instead the compiled
// program's low-level ops (Input, Output, DrawInto, Copy, WriteInto, ...)
// name registers; an executor resolves each register to a gpucore ID by
// consulting the program's resource-assignment table and its own pool.
// gpucore is the vocabulary both sides agree on:
//
//	+----------------+          +------------------+
//	| compiler.Program|  -----> |     executor     |
//	| (register ->    |  ops    | (resolves IDs,    |
//	|  gpucore IDs)    |         |  issues GPU calls)|
//	+----------------+          +------------------+
//
// # Resource Management
//
// gpucore itself never creates, maps, or destroys a resource — it only
// names one. Adapters implementing [github.com/gogpu/imgcc/executor.Executor]
// are responsible for tracking the mapping between these IDs and the
// backend-specific handles they represent.
package gpucore
