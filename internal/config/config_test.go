package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"namefind/internal/search"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 10, cfg.MaxDepth)
	assert.Equal(t, 1000, cfg.MaxResults)
	assert.True(t, cfg.SkipHiddenDirs)
	assert.Contains(t, cfg.SkipPaths, "/proc")
	assert.Contains(t, cfg.SkipPaths, "/System")
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultConfigDoesNotShareSkipPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SkipPaths[0] = "/changed"

	assert.NotEqual(t, "/changed", search.DefaultSkipPaths[0])
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
max_depth: 3
max_results: 50
skip_hidden_dirs: false
skip_paths: [/mnt/backup]
roots: [/srv, /opt]
workers: 2
dedupe: true
log_level: debug
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.MaxDepth)
	assert.Equal(t, 50, cfg.MaxResults)
	assert.False(t, cfg.SkipHiddenDirs)
	assert.Equal(t, []string{"/mnt/backup"}, cfg.SkipPaths)
	assert.Equal(t, []string{"/srv", "/opt"}, cfg.Roots)
	assert.Equal(t, 2, cfg.Workers)
	assert.True(t, cfg.Dedupe)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "max_results: 5\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.MaxResults)
	assert.Equal(t, 10, cfg.MaxDepth)
	assert.True(t, cfg.SkipHiddenDirs)
	assert.Equal(t, search.DefaultSkipPaths, cfg.SkipPaths)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"malformed yaml", "max_depth: [1, 2\n", "failed to parse config file"},
		{"negative depth", "max_depth: -1\n", "max_depth"},
		{"zero results", "max_results: 0\n", "max_results"},
		{"negative workers", "workers: -3\n", "workers"},
		{"bad log level", "log_level: loud\n", "unknown log level"},
		{"relative skip path", "skip_paths: [tmp]\n", "not absolute"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSearchRoots(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Roots = []string{"/a", "/b"}
	assert.Equal(t, []string{"/a", "/b"}, cfg.SearchRoots())

	cfg.Roots = nil
	roots := cfg.SearchRoots()
	require.NotEmpty(t, roots)
	assert.Contains(t, roots, string(filepath.Separator))
	assert.Equal(t, "/Volumes", roots[len(roots)-1])
}

func TestDefaultPath(t *testing.T) {
	path := DefaultPath()
	assert.Equal(t, "config.yaml", filepath.Base(path))
	assert.Equal(t, "namefind", filepath.Base(filepath.Dir(path)))
}

func TestSearchOptionsApplyToEngine(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "deep", "er"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "deep", "er", "foo.txt"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "foo.txt"), nil, 0644))

	cfg := DefaultConfig()
	cfg.MaxDepth = 1

	got := search.FindFilesByName("foo", []string{root}, cfg.SearchOptions()...)

	assert.Equal(t, []string{filepath.Join(root, "foo.txt")}, got)
}

func TestSearchOptionsCleanSkipPaths(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "backup"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "backup", "foo.txt"), nil, 0644))

	path := writeConfig(t, "skip_paths: ["+root+"/backup/]\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	got := search.FindFilesByName("foo", []string{root}, cfg.SearchOptions()...)

	assert.Empty(t, got)
}
