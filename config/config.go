// Package config loads and validates the logfilter application
// configuration, mirroring the teacher's config.go load/decode shape
// (BurntSushi/toml, defaults-then-decode) adapted to
// original_source/config/models.py's ApplicationConfig schema.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Platform-specific worker-count ceilings, restored verbatim from
// original_source/config/models.py's MAX_WORKERS_* constants.
const (
	MaxWorkersLinux   = 32
	MaxWorkersWindows = 61
	MaxWorkersMacOS   = 32
	MaxWorkersDefault = 32
)

// SearchConfig controls the boolean expression and its match mode,
// plus the optional date/time record filter.
type SearchConfig struct {
	Expression   string `toml:"expression"`
	IgnoreCase   bool   `toml:"ignore_case"`
	UseRegex     bool   `toml:"use_regex"`
	WordBoundary bool   `toml:"word_boundary"`
	StripQuotes  bool   `toml:"strip_quotes"`

	DateFrom *time.Time `toml:"-"`
	DateTo   *time.Time `toml:"-"`
	TimeFrom *time.Time `toml:"-"`
	TimeTo   *time.Time `toml:"-"`
}

// FileConfig controls which files the scanner considers.
type FileConfig struct {
	Path            string   `toml:"path"`
	FileMasks       []string `toml:"file_masks"`
	IncludePatterns []string `toml:"include_patterns"`
	ExcludePatterns []string `toml:"exclude_patterns"`
	MaxFileSizeMB   int      `toml:"max_file_size_mb"`
	MaxRecordSizeKB int      `toml:"max_record_size_kb"`
	Extensions      []string `toml:"extensions"`
}

// OutputConfig controls where and how matched records are written.
type OutputConfig struct {
	OutputFile       string `toml:"output_file"`
	IncludeFilePath  bool   `toml:"include_file_path"`
	HighlightMatches bool   `toml:"highlight_matches"`
	ShowProgress     bool   `toml:"show_progress"`
	ShowStats        bool   `toml:"show_stats"`
	StatsFormat      string `toml:"stats_format"`
	StatsChartPath   string `toml:"stats_chart_path"`
	DryRun           bool   `toml:"dry_run"`
	DryRunDetails    bool   `toml:"dry_run_details"`
}

// ProcessingConfig controls worker count and ambient behavior.
type ProcessingConfig struct {
	WorkerCount        int  `toml:"worker_count"`
	Debug              bool `toml:"debug"`
	NormalizeLogLevels bool `toml:"normalize_log_levels"`
	TUI                bool `toml:"tui"`
}

// ApplicationConfig is the complete, validated configuration for one
// run, mirroring original_source/config/models.py's ApplicationConfig.
type ApplicationConfig struct {
	Search     SearchConfig     `toml:"search"`
	Files      FileConfig       `toml:"files"`
	Output     OutputConfig     `toml:"output"`
	Processing ProcessingConfig `toml:"processing"`
}

// Error reports an invalid configuration value; fatal to the run
// (mapped to exit code 2 at the CLI layer).
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

// Default returns an ApplicationConfig with the same defaults as the
// original's dataclasses (output_file="filter-result.log",
// include_file_path=true, extensions=(".log",".gz"),
// normalize_log_levels=true).
func Default() ApplicationConfig {
	return ApplicationConfig{
		Files: FileConfig{
			Path:       ".",
			Extensions: []string{".log", ".gz"},
		},
		Output: OutputConfig{
			OutputFile:      "filter-result.log",
			IncludeFilePath: true,
			StatsFormat:     "console",
		},
		Processing: ProcessingConfig{
			NormalizeLogLevels: true,
		},
	}
}

// Load decodes a TOML config file into an ApplicationConfig seeded
// with Default()'s values, so a config file only needs to name the
// fields it overrides.
func Load(path string) (ApplicationConfig, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, &Error{Message: fmt.Sprintf("failed to parse config file %s: %v", path, err)}
	}
	return cfg, nil
}

// Validate checks the invariants from
// original_source/config/models.py's __post_init__ methods:
// non-empty expression, from<=to on both date and time axes, an
// existing directory path, non-negative size/worker limits (0 means
// unlimited, or auto-detect for workers), and a worker count within
// the platform ceiling.
func (c *ApplicationConfig) Validate() error {
	if strings.TrimSpace(c.Search.Expression) == "" {
		return &Error{Message: "search expression cannot be empty"}
	}
	if c.Search.DateFrom != nil && c.Search.DateTo != nil && c.Search.DateFrom.After(*c.Search.DateTo) {
		return &Error{Message: fmt.Sprintf("date_from (%s) must be <= date_to (%s)", c.Search.DateFrom, c.Search.DateTo)}
	}
	if c.Search.TimeFrom != nil && c.Search.TimeTo != nil && c.Search.TimeFrom.After(*c.Search.TimeTo) {
		return &Error{Message: fmt.Sprintf("time_from (%s) must be <= time_to (%s)", c.Search.TimeFrom, c.Search.TimeTo)}
	}

	info, err := os.Stat(c.Files.Path)
	if err != nil {
		return &Error{Message: fmt.Sprintf("path does not exist: %s", c.Files.Path)}
	}
	if !info.IsDir() {
		return &Error{Message: fmt.Sprintf("path is not a directory: %s", c.Files.Path)}
	}

	if c.Files.MaxFileSizeMB < 0 {
		return &Error{Message: fmt.Sprintf("max_file_size_mb must not be negative, got %d", c.Files.MaxFileSizeMB)}
	}
	if c.Files.MaxRecordSizeKB < 0 {
		return &Error{Message: fmt.Sprintf("max_record_size_kb must not be negative, got %d", c.Files.MaxRecordSizeKB)}
	}

	if c.Processing.WorkerCount < 0 {
		return &Error{Message: fmt.Sprintf("worker_count must not be negative, got %d", c.Processing.WorkerCount)}
	}
	if c.Processing.WorkerCount > 0 {
		if max := MaxWorkersForPlatform(); c.Processing.WorkerCount > max {
			return &Error{Message: fmt.Sprintf(
				"worker_count (%d) exceeds platform maximum (%d). This limit prevents resource exhaustion and system instability.",
				c.Processing.WorkerCount, max)}
		}
	}

	return nil
}

// MaxWorkersForPlatform returns the platform-specific worker ceiling,
// restored from original_source/config/models.py's
// _get_max_workers_for_platform (Go's runtime.GOOS stands in for
// Python's sys.platform).
func MaxWorkersForPlatform() int {
	switch runtime.GOOS {
	case "windows":
		return MaxWorkersWindows
	case "darwin":
		return MaxWorkersMacOS
	case "linux":
		return MaxWorkersLinux
	default:
		return MaxWorkersDefault
	}
}

// ResolveWorkerCount applies the default-to-CPU-count-capped-by-platform
// policy from SPEC_FULL.md §4.4.3 when requested is 0 (auto-detect).
// A requested count more than 4x NumCPU is still accepted — the
// caller is expected to have already warned about it.
func ResolveWorkerCount(requested int) int {
	if requested > 0 {
		return requested
	}
	n := runtime.NumCPU()
	if max := MaxWorkersForPlatform(); n > max {
		return max
	}
	return n
}
