package search

import (
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash"
)

// MatchCollector is a bounded, insertion-ordered set of matched paths
// shared by every traversal unit of one search. It is safe for
// concurrent writers; all mutation goes through TryAdd.
type MatchCollector struct {
	mu       sync.Mutex
	items    []string
	size     atomic.Int64
	capacity int
	seen     map[uint64]bool // nil unless dedupe is enabled
}

// NewMatchCollector creates a collector holding at most capacity paths.
// With dedupe set, a path that was already added is refused.
func NewMatchCollector(capacity int, dedupe bool) *MatchCollector {
	if capacity < 0 {
		capacity = 0
	}
	mc := &MatchCollector{
		items:    make([]string, 0, min(capacity, 1024)),
		capacity: capacity,
	}
	if dedupe {
		mc.seen = make(map[uint64]bool)
	}
	return mc
}

// TryAdd appends path if there is room. The capacity check and the append
// happen under one lock, so two callers never both take the last slot.
func (mc *MatchCollector) TryAdd(path string) bool {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if len(mc.items) >= mc.capacity {
		return false
	}
	if mc.seen != nil {
		h := xxhash.Sum64String(path)
		if mc.seen[h] {
			return false
		}
		mc.seen[h] = true
	}
	mc.items = append(mc.items, path)
	mc.size.Store(int64(len(mc.items)))
	return true
}

// IsFull reports whether capacity was reached. It takes no lock; a false
// answer may already be stale when the caller acts on it.
func (mc *MatchCollector) IsFull() bool {
	return mc.size.Load() >= int64(mc.capacity)
}

// Len returns the current number of collected paths
func (mc *MatchCollector) Len() int {
	return int(mc.size.Load())
}

// Snapshot returns a copy of the collected paths in insertion order
func (mc *MatchCollector) Snapshot() []string {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	out := make([]string, len(mc.items))
	copy(out, mc.items)
	return out
}
