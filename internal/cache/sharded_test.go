package cache

import (
	"strconv"
	"sync"
	"testing"
)

func TestNewSharded(t *testing.T) {
	c := NewSharded[string, int](100, StringHasher)
	if c == nil {
		t.Fatal("NewSharded returned nil")
	}
	if c.Capacity() != 100 {
		t.Errorf("expected capacity 100, got %d", c.Capacity())
	}
	if c.TotalCapacity() != 100*DefaultShardCount {
		t.Errorf("expected total capacity %d, got %d", 100*DefaultShardCount, c.TotalCapacity())
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", c.Len())
	}
}

func TestShardedCacheGetSet(t *testing.T) {
	c := NewSharded[string, int](10, StringHasher)

	c.Set("key1", 42)

	val, ok := c.Get("key1")
	if !ok {
		t.Error("expected key1 to exist")
	}
	if val != 42 {
		t.Errorf("expected 42, got %d", val)
	}

	_, ok = c.Get("nonexistent")
	if ok {
		t.Error("expected nonexistent key to not exist")
	}
}

func TestShardedCacheGetOrCreate(t *testing.T) {
	c := NewSharded[string, int](10, StringHasher)
	createCalled := 0

	val := c.GetOrCreate("key1", func() int {
		createCalled++
		return 100
	})
	if val != 100 {
		t.Errorf("expected 100, got %d", val)
	}
	if createCalled != 1 {
		t.Errorf("expected create called once, got %d", createCalled)
	}

	val = c.GetOrCreate("key1", func() int {
		createCalled++
		return 200
	})
	if val != 100 {
		t.Errorf("expected 100 (cached), got %d", val)
	}
	if createCalled != 1 {
		t.Errorf("expected create still called once, got %d", createCalled)
	}
}

func TestShardedCacheDelete(t *testing.T) {
	c := NewSharded[string, int](10, StringHasher)

	c.Set("key1", 42)

	if !c.Delete("key1") {
		t.Error("expected Delete to return true for existing key")
	}
	if _, ok := c.Get("key1"); ok {
		t.Error("expected key1 to be deleted")
	}
	if c.Delete("nonexistent") {
		t.Error("expected Delete to return false for non-existing key")
	}
}

func TestShardedCacheClear(t *testing.T) {
	c := NewSharded[string, int](10, StringHasher)

	c.Set("key1", 1)
	c.Set("key2", 2)
	c.Set("key3", 3)

	if c.Len() != 3 {
		t.Errorf("expected 3 entries, got %d", c.Len())
	}

	c.Clear()

	if c.Len() != 0 {
		t.Errorf("expected 0 entries after clear, got %d", c.Len())
	}
}

func TestShardedCacheEviction(t *testing.T) {
	c := NewSharded[int, int](4, IntHasher)

	for i := 0; i < 100; i++ {
		c.Set(i, i)
	}

	stats := c.Stats()
	if stats.Len > c.TotalCapacity() {
		t.Errorf("expected at most %d entries, got %d", c.TotalCapacity(), stats.Len)
	}
}

func TestShardedCacheStats(t *testing.T) {
	c := NewSharded[string, int](10, StringHasher)

	c.Set("key1", 1)
	c.Set("key2", 2)

	c.Get("key1")
	c.Get("key1")
	c.Get("nonexistent")

	stats := c.Stats()
	if stats.Len != 2 {
		t.Errorf("expected Len=2, got %d", stats.Len)
	}
	if stats.Hits != 2 {
		t.Errorf("expected Hits=2, got %d", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("expected Misses=1, got %d", stats.Misses)
	}
}

func TestShardedCacheResetStats(t *testing.T) {
	c := NewSharded[string, int](10, StringHasher)

	c.Set("key1", 1)
	c.Get("key1")
	c.Get("nonexistent")

	c.ResetStats()

	stats := c.Stats()
	if stats.Hits != 0 || stats.Misses != 0 || stats.Evictions != 0 {
		t.Errorf("expected all stats to be 0 after reset, got hits=%d misses=%d evictions=%d",
			stats.Hits, stats.Misses, stats.Evictions)
	}
}

func TestShardedCacheShardLen(t *testing.T) {
	c := NewSharded[int, int](10, IntHasher)

	for i := 0; i < 100; i++ {
		c.Set(i, i)
	}

	lens := c.ShardLen()
	total := 0
	for _, l := range lens {
		total += l
	}

	if total != c.Len() {
		t.Errorf("shard lengths sum %d != Len() %d", total, c.Len())
	}
}

func TestShardedCacheConcurrent(t *testing.T) {
	c := NewSharded[int, int](100, IntHasher)
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Set(n*100+j, n*100+j)
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Get(n*100 + j)
			}
		}(i)
	}
	wg.Wait()

	if c.Len() == 0 {
		t.Error("expected non-empty cache after concurrent operations")
	}
}

func TestShardedCacheUsesAllShardsUnderLoad(t *testing.T) {
	c := NewSharded[int, int](256, IntHasher)
	for i := 0; i < 10000; i++ {
		c.Set(i, i)
	}
	lens := c.ShardLen()
	empty := 0
	for _, l := range lens {
		if l == 0 {
			empty++
		}
	}
	if empty > 0 {
		t.Errorf("%d of %d shards received no entries under load; key %v", empty, DefaultShardCount, strconv.Itoa(10000))
	}
}

func TestHashers(t *testing.T) {
	h1 := StringHasher("hello")
	h2 := StringHasher("hello")
	h3 := StringHasher("world")

	if h1 != h2 {
		t.Error("StringHasher not deterministic")
	}
	if h1 == h3 {
		t.Error("StringHasher collision for different strings")
	}

	h4 := IntHasher(42)
	h5 := IntHasher(42)
	h6 := IntHasher(43)

	if h4 != h5 {
		t.Error("IntHasher not deterministic")
	}
	if h4 == h6 {
		t.Error("IntHasher collision for different ints")
	}

	h7 := Uint64Hasher(12345)
	if h7 != 12345 {
		t.Errorf("Uint64Hasher expected identity, got %d", h7)
	}
}

func TestLRUList(t *testing.T) {
	l := newLRUList[string]()

	if l.Len() != 0 {
		t.Errorf("expected empty list, got %d", l.Len())
	}

	n1 := l.PushFront("a")
	n2 := l.PushFront("b")
	n3 := l.PushFront("c")

	if l.Len() != 3 {
		t.Errorf("expected 3 elements, got %d", l.Len())
	}

	oldest, ok := l.Oldest()
	if !ok || oldest != "a" {
		t.Errorf("expected oldest to be 'a', got %v", oldest)
	}

	l.MoveToFront(n1)
	oldest, _ = l.Oldest()
	if oldest != "b" {
		t.Errorf("expected oldest to be 'b' after moving 'a', got %v", oldest)
	}

	l.Remove(n2)
	if l.Len() != 2 {
		t.Errorf("expected 2 elements after remove, got %d", l.Len())
	}

	removed, ok := l.RemoveOldest()
	if !ok || removed != "c" {
		t.Errorf("expected to remove 'c', got %v", removed)
	}

	if l.Len() != 1 {
		t.Errorf("expected 1 element, got %d", l.Len())
	}

	l.Clear()
	if l.Len() != 0 {
		t.Errorf("expected empty list after clear, got %d", l.Len())
	}

	_ = n3
}

func TestLRUListEmptyOperations(t *testing.T) {
	l := newLRUList[int]()

	if _, ok := l.RemoveOldest(); ok {
		t.Error("expected RemoveOldest to return false on empty list")
	}
	if _, ok := l.Oldest(); ok {
		t.Error("expected Oldest to return false on empty list")
	}

	l.Remove(nil)
	l.MoveToFront(nil)
}
