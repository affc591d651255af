package search

// Build metadata, overridden with -ldflags "-X namefind/internal/search.Version=..."
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)
