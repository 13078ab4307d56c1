package cache

// Stats is a snapshot of a ShardedCache's occupancy and hit-rate counters,
// exposed for diagnostic logging around the compiled-shader-module cache
// (executor.ModuleCache).
type Stats struct {
	Len           int
	Capacity      int
	TotalCapacity int
	Hits          uint64
	Misses        uint64
	HitRate       float64
	Evictions     uint64
}
