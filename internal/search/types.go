package search

import (
	"path/filepath"
	"runtime"
)

// Default limits applied by FindFilesByName when no option overrides them
const (
	DefaultMaxDepth   = 10
	DefaultMaxResults = 1000
)

// DefaultSkipPaths lists well-known noisy or privileged directories that are never entered
var DefaultSkipPaths = []string{
	"/proc", "/sys", "/dev", "/tmp",
	"/var/log", "/var/cache", "/private/var",
	"/Applications", "/System",
}

// SearchQuery is the immutable description of one search.
// It is shared read-only by every traversal unit.
type SearchQuery struct {
	Pattern        string          // Lower-cased substring to look for in base names
	MaxDepth       int             // Deepest directory level explored below each root
	MaxResults     int             // Soft cap on collected matches across all roots
	SkipPaths      map[string]bool // Absolute directory paths excluded from descent
	SkipHiddenDirs bool            // Never enter directories whose name starts with "."
}

// SearchOptions holds the tunables of an Engine
type SearchOptions struct {
	Query      SearchQuery
	MaxWorkers int              // Size of the fork/join pool
	Dedupe     bool             // Drop paths already collected from an earlier root
	Progress   func(dirs int64) // Called after each explored directory, possibly concurrently
}

// Option configures SearchOptions
type Option func(*SearchOptions)

// WithMaxDepth sets the maximum recursion depth below each root
func WithMaxDepth(depth int) Option {
	return func(o *SearchOptions) {
		o.Query.MaxDepth = depth
	}
}

// WithMaxResults sets the soft cap on collected matches
func WithMaxResults(n int) Option {
	return func(o *SearchOptions) {
		o.Query.MaxResults = n
	}
}

// WithSkipPaths replaces the set of excluded absolute paths
func WithSkipPaths(paths ...string) Option {
	return func(o *SearchOptions) {
		o.Query.SkipPaths = toSet(paths)
	}
}

// WithSkipHiddenDirs controls whether dot-directories are entered
func WithSkipHiddenDirs(skip bool) Option {
	return func(o *SearchOptions) {
		o.Query.SkipHiddenDirs = skip
	}
}

// WithWorkers sets the pool size. Values below 1 mean runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(o *SearchOptions) {
		o.MaxWorkers = n
	}
}

// WithDedupe drops duplicate paths produced by overlapping roots
func WithDedupe(dedupe bool) Option {
	return func(o *SearchOptions) {
		o.Dedupe = dedupe
	}
}

// WithProgress registers a callback fed with the running count of explored directories
func WithProgress(fn func(dirs int64)) Option {
	return func(o *SearchOptions) {
		o.Progress = fn
	}
}

// defaultOptions returns the options used by FindFilesByName before overrides
func defaultOptions(pattern string) SearchOptions {
	return SearchOptions{
		Query: SearchQuery{
			Pattern:        pattern,
			MaxDepth:       DefaultMaxDepth,
			MaxResults:     DefaultMaxResults,
			SkipPaths:      toSet(DefaultSkipPaths),
			SkipHiddenDirs: true,
		},
		MaxWorkers: runtime.NumCPU(),
	}
}

func toSet(paths []string) map[string]bool {
	set := make(map[string]bool, len(paths))
	for _, p := range paths {
		set[filepath.Clean(p)] = true
	}
	return set
}

// TraversalUnit is one directory pending exploration
type TraversalUnit struct {
	Dir   string
	Depth int
}

// unitState is the terminal state of a traversal unit
type unitState int

const (
	unitSkipped unitState = iota // depth/capacity limit or listing failure
	unitJoined                   // entries scanned and all children joined
)

// unitOutcome is what explore reports for a unit. Filesystem errors stop
// at this value and are never returned to callers of Search.
type unitOutcome struct {
	state    unitState
	children int
	err      error
}

// Stats counts what happened during a search
type Stats struct {
	DirsExplored int64 // Units that listed their directory
	DirsSkipped  int64 // Units that could not be listed
	Matches      int64 // Successful inserts into the collector
	Rejected     int64 // Inserts refused at capacity or as duplicates
}
