package search

import (
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Engine runs one search over a sequence of root paths. An Engine is
// single-use: its collector spans every root of one Search call.
type Engine struct {
	id        string
	opts      SearchOptions
	collector *MatchCollector
	pool      *forkJoinPool
	stats     Stats
}

// NewEngine creates an engine for the given options.
// opts.Query.Pattern must already be lower-cased.
func NewEngine(opts SearchOptions) *Engine {
	if opts.Query.SkipPaths == nil {
		opts.Query.SkipPaths = map[string]bool{}
	}
	return &Engine{
		id:        uuid.NewString(),
		opts:      opts,
		collector: NewMatchCollector(opts.Query.MaxResults, opts.Dedupe),
		pool:      newForkJoinPool(opts.MaxWorkers),
	}
}

// Search explores the roots in order, one at a time, each in parallel
// internally, and returns the collected paths. Roots are skipped once the
// collector is full. Filesystem failures only shrink the result.
func (e *Engine) Search(roots []string) []string {
	q := e.opts.Query
	start := time.Now()
	logInfo("search %s: pattern=%q roots=%v max_depth=%d max_results=%d workers=%d",
		e.id, q.Pattern, roots, q.MaxDepth, q.MaxResults, e.pool.size())

	for _, root := range roots {
		if e.collector.IsFull() {
			logInfo("search %s: result limit reached, skipping remaining roots", e.id)
			break
		}

		dir, err := filepath.Abs(root)
		if err != nil {
			dir = root
		}

		before := e.collector.Len()
		outcome := e.explore(TraversalUnit{Dir: dir, Depth: 0})
		if outcome.err != nil {
			logWarning("search %s: root %s not searched: %v", e.id, dir, outcome.err)
			continue
		}
		if outcome.state == unitSkipped {
			continue
		}
		logDebug("search %s: root %s done, %d matches", e.id, dir, e.collector.Len()-before)
	}

	stats := e.Stats()
	logInfo("search %s: finished in %v, %d matches, %d dirs explored, %d dirs skipped",
		e.id, time.Since(start), stats.Matches, stats.DirsExplored, stats.DirsSkipped)

	return e.collector.Snapshot()
}

// Stats returns a copy of the engine's counters
func (e *Engine) Stats() Stats {
	return Stats{
		DirsExplored: atomic.LoadInt64(&e.stats.DirsExplored),
		DirsSkipped:  atomic.LoadInt64(&e.stats.DirsSkipped),
		Matches:      atomic.LoadInt64(&e.stats.Matches),
		Rejected:     atomic.LoadInt64(&e.stats.Rejected),
	}
}

// FindFilesByName returns every file and directory under roots whose base
// name contains pattern, ignoring case. Defaults are DefaultMaxDepth,
// DefaultMaxResults, DefaultSkipPaths and hidden directories skipped;
// opts override them. It never fails: unreadable paths yield no matches.
func FindFilesByName(pattern string, roots []string, opts ...Option) []string {
	o := defaultOptions(preparePattern(pattern))
	for _, opt := range opts {
		opt(&o)
	}
	return NewEngine(o).Search(roots)
}
