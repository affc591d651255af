package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"namefind/internal/config"
	"namefind/internal/report"
	"namefind/internal/search"
)

var (
	configPath    string
	roots         []string
	maxDepth      int
	maxResults    int
	workers       int
	includeHidden bool
	dedupe        bool
	noProgress    bool
	noColor       bool
	logLevel      string
	showVersion   bool
)

// isTerminal reports whether f is attached to a terminal
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// loadConfig reads the config file and applies flags the user set explicitly
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("root") {
		cfg.Roots = roots
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = maxDepth
	}
	if flags.Changed("max-results") {
		cfg.MaxResults = maxResults
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("hidden") {
		cfg.SkipHiddenDirs = !includeHidden
	}
	if flags.Changed("dedupe") {
		cfg.Dedupe = dedupe
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newSpinner returns a progress spinner on stderr, or nil when stderr is not a terminal
func newSpinner(out io.Writer) *progressbar.ProgressBar {
	if noProgress || !isTerminal(os.Stderr) {
		return nil
	}
	return progressbar.NewOptions64(-1,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription("Searching"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("dirs"),
		progressbar.OptionShowIts(),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

func run(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if showVersion {
		fmt.Fprintf(out, "namefind v%s\n", search.Version)
		fmt.Fprintf(out, "Build Time: %s\n", search.BuildTime)
		fmt.Fprintf(out, "Git Commit: %s\n", search.GitCommit)
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("missing name to search for")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	level, _ := search.ParseLogLevel(cfg.LogLevel)
	search.InitLogger(cfg.LogDir, level)
	defer search.CloseLogger()
	search.LogInfo("namefind %s: config=%s", search.Version, configPath)

	name := strings.Join(args, " ")
	printer := report.NewPrinter(out, !noColor && out == os.Stdout && isTerminal(os.Stdout))
	printer.Searching(name)

	opts := cfg.SearchOptions()
	bar := newSpinner(os.Stderr)
	if bar != nil {
		opts = append(opts, search.WithProgress(func(int64) {
			bar.Add(1)
		}))
	}

	matches := search.FindFilesByName(name, cfg.SearchRoots(), opts...)
	if bar != nil {
		bar.Finish()
	}
	printer.Results(matches)
	return nil
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "namefind [flags] <name...>",
		Short: "Fast parallel search for files and directories by name",
		Long: `Searches one or more root directories in parallel for files and
directories whose name contains the given text, ignoring case.
Multiple arguments are joined with spaces into one name.
Example: namefind -r /home -r /srv --max-depth 5 report`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&configPath, "config", "c", config.DefaultPath(), "Path to the YAML config file")
	flags.StringSliceVarP(&roots, "root", "r", nil, "Root directories to search, in order (default: home, /, /Volumes)")
	flags.IntVarP(&maxDepth, "max-depth", "d", search.DefaultMaxDepth, "Maximum directory depth below each root")
	flags.IntVarP(&maxResults, "max-results", "n", search.DefaultMaxResults, "Stop after about this many matches")
	flags.IntVarP(&workers, "workers", "w", 0, "Number of worker goroutines (default: number of CPU cores)")
	flags.BoolVarP(&includeHidden, "hidden", "H", false, "Descend into hidden directories")
	flags.BoolVar(&dedupe, "dedupe", false, "Drop paths found again under overlapping roots")
	flags.BoolVar(&noProgress, "no-progress", false, "Do not show the progress spinner")
	flags.BoolVar(&noColor, "no-color", false, "Disable colored output")
	flags.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flags.BoolVarP(&showVersion, "version", "v", false, "Show version information")

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
