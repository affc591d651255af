package search

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchCollectorCapacity(t *testing.T) {
	mc := NewMatchCollector(2, false)

	assert.False(t, mc.IsFull())
	assert.True(t, mc.TryAdd("/a"))
	assert.True(t, mc.TryAdd("/b"))
	assert.True(t, mc.IsFull())
	assert.False(t, mc.TryAdd("/c"))

	assert.Equal(t, []string{"/a", "/b"}, mc.Snapshot())
	assert.Equal(t, 2, mc.Len())
}

func TestMatchCollectorZeroCapacity(t *testing.T) {
	mc := NewMatchCollector(0, false)

	assert.True(t, mc.IsFull())
	assert.False(t, mc.TryAdd("/a"))
	assert.Empty(t, mc.Snapshot())
}

func TestMatchCollectorKeepsDuplicatesByDefault(t *testing.T) {
	mc := NewMatchCollector(10, false)

	assert.True(t, mc.TryAdd("/a"))
	assert.True(t, mc.TryAdd("/a"))
	assert.Equal(t, []string{"/a", "/a"}, mc.Snapshot())
}

func TestMatchCollectorDedupe(t *testing.T) {
	mc := NewMatchCollector(10, true)

	assert.True(t, mc.TryAdd("/a"))
	assert.False(t, mc.TryAdd("/a"))
	assert.True(t, mc.TryAdd("/b"))
	assert.Equal(t, []string{"/a", "/b"}, mc.Snapshot())
}

func TestMatchCollectorSnapshotIsCopy(t *testing.T) {
	mc := NewMatchCollector(10, false)
	mc.TryAdd("/a")

	snap := mc.Snapshot()
	snap[0] = "/changed"
	mc.TryAdd("/b")

	assert.Equal(t, []string{"/a", "/b"}, mc.Snapshot())
	assert.Len(t, snap, 1)
}

func TestMatchCollectorConcurrentWritersNeverExceedCapacity(t *testing.T) {
	const (
		capacity  = 1000
		writers   = 50
		perWriter = 100
	)
	mc := NewMatchCollector(capacity, false)

	var accepted atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				if mc.TryAdd(fmt.Sprintf("/w%d/%d", w, i)) {
					accepted.Add(1)
				}
			}
		}(w)
	}
	wg.Wait()

	require.Equal(t, int64(capacity), accepted.Load())
	snap := mc.Snapshot()
	assert.Len(t, snap, capacity)
	assert.True(t, mc.IsFull())

	seen := make(map[string]bool, len(snap))
	for _, p := range snap {
		assert.False(t, seen[p], "duplicate %s", p)
		seen[p] = true
	}
}

func TestMatchCollectorLastSlotRace(t *testing.T) {
	for round := 0; round < 100; round++ {
		mc := NewMatchCollector(1, false)

		var wins atomic.Int64
		var wg sync.WaitGroup
		start := make(chan struct{})
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				<-start
				if mc.TryAdd(fmt.Sprintf("/p%d", i)) {
					wins.Add(1)
				}
			}(i)
		}
		close(start)
		wg.Wait()

		require.Equal(t, int64(1), wins.Load(), "round %d", round)
	}
}
