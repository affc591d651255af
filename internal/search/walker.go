package search

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
)

// shouldSkipDirectory reports whether a directory is excluded from both
// matching and descent
func shouldSkipDirectory(path, name string, q *SearchQuery) bool {
	if q.SkipHiddenDirs && strings.HasPrefix(name, ".") {
		return true
	}
	return q.SkipPaths[path]
}

// isDirectory resolves an entry to a directory the way a stat would:
// symlinks are followed, dangling links count as plain files
func isDirectory(path string, entry fs.DirEntry) bool {
	if entry.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(path)
		return err == nil && info.IsDir()
	}
	return entry.IsDir()
}

// explore scans one directory, records matching entries and then runs
// one child unit per eligible subdirectory, returning after all of them
// have finished. Listing failures end the unit without touching siblings.
func (e *Engine) explore(unit TraversalUnit) unitOutcome {
	q := &e.opts.Query
	if unit.Depth > q.MaxDepth || e.collector.IsFull() {
		return unitOutcome{state: unitSkipped}
	}

	entries, err := os.ReadDir(unit.Dir)
	if err != nil {
		atomic.AddInt64(&e.stats.DirsSkipped, 1)
		return unitOutcome{state: unitSkipped, err: err}
	}

	explored := atomic.AddInt64(&e.stats.DirsExplored, 1)
	if e.opts.Progress != nil {
		e.opts.Progress(explored)
	}

	children := make([]TraversalUnit, 0, len(entries)/4)
	for _, entry := range entries {
		if e.collector.IsFull() {
			break
		}

		name := entry.Name()
		path := filepath.Join(unit.Dir, name)
		nameMatches := matchesName(name, q.Pattern)

		if isDirectory(path, entry) {
			if shouldSkipDirectory(path, name, q) {
				continue
			}
			if nameMatches {
				e.add(path)
			}
			if unit.Depth+1 <= q.MaxDepth {
				children = append(children, TraversalUnit{Dir: path, Depth: unit.Depth + 1})
			}
		} else if nameMatches {
			e.add(path)
		}
	}

	if len(children) > 0 {
		tasks := make([]func(), len(children))
		for i, child := range children {
			tasks[i] = func() { e.explore(child) }
		}
		e.pool.invokeAll(tasks)
	}

	return unitOutcome{state: unitJoined, children: len(children)}
}

// add offers path to the collector; a refusal never stops the traversal
func (e *Engine) add(path string) {
	if e.collector.TryAdd(path) {
		atomic.AddInt64(&e.stats.Matches, 1)
	} else {
		atomic.AddInt64(&e.stats.Rejected, 1)
	}
}
