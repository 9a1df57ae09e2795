// Package cli builds the logfilter command-line application: a
// single urfave/cli/v2 command with a config-file-or-flags dual mode,
// adapted from the teacher's cli/cli.go (shared package-level flag
// vars, small validate* helpers, a handle*Command action function).
package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ChristianF88/logfilter/config"
	"github.com/ChristianF88/logfilter/pipeline"
	urfavecli "github.com/urfave/cli/v2"
)

const Version = "0.1.0"

// Shared flag definitions, mirroring the teacher's package-level flag
// var block in cli/cli.go.
var (
	expressionFlag = &urfavecli.StringFlag{
		Name:    "expression",
		Aliases: []string{"e"},
		Usage:   "boolean search expression, e.g. 'ERROR AND (Kafka OR Timeout)'",
	}
	pathFlag = &urfavecli.StringFlag{
		Name:    "path",
		Aliases: []string{"p"},
		Usage:   "root directory to scan for log files",
		Value:   ".",
	}
	configFlag = &urfavecli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "path to a TOML config file; CLI flags override values it sets",
	}

	fromFlag     = &urfavecli.StringFlag{Name: "from", Usage: "earliest record date, YYYY-MM-DD"}
	toFlag       = &urfavecli.StringFlag{Name: "to", Usage: "latest record date, YYYY-MM-DD"}
	fromTimeFlag = &urfavecli.StringFlag{Name: "from-time", Usage: "earliest record time of day, HH:MM[:SS]"}
	toTimeFlag   = &urfavecli.StringFlag{Name: "to-time", Usage: "latest record time of day, HH:MM[:SS]"}

	ignoreCaseFlag   = &urfavecli.BoolFlag{Name: "ignore-case", Aliases: []string{"i"}, Usage: "case-insensitive matching"}
	regexFlag        = &urfavecli.BoolFlag{Name: "regex", Aliases: []string{"r"}, Usage: "treat words as regular expressions"}
	wordBoundaryFlag = &urfavecli.BoolFlag{Name: "word-boundary", Usage: "require matches to fall on word boundaries"}
	stripQuotesFlag  = &urfavecli.BoolFlag{Name: "strip-quotes", Usage: "strip surrounding quotes before matching"}
	exactMatchFlag   = &urfavecli.BoolFlag{Name: "exact-match", Usage: "shorthand for --word-boundary --strip-quotes"}

	outputFlag     = &urfavecli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output file for matched records", Value: "filter-result.log"}
	noPathFlag     = &urfavecli.BoolFlag{Name: "no-path", Usage: "omit the source file path prefix from each output record"}
	maxRecordFlag  = &urfavecli.IntFlag{Name: "max-record-size", Usage: "abandon a record past this size in KB (0 = unlimited)"}
	maxFileFlag    = &urfavecli.IntFlag{Name: "max-file-size", Usage: "skip files larger than this in MB (0 = unlimited)"}
	workersFlag    = &urfavecli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "worker count (0 = auto-detect)"}
	dryRunFlag     = &urfavecli.BoolFlag{Name: "dry-run", Usage: "list eligible files without processing them"}
	dryRunDetailsFlag = &urfavecli.BoolFlag{Name: "dry-run-details", Usage: "print only the eligible file count and total size"}
	highlightFlag  = &urfavecli.BoolFlag{Name: "highlight", Usage: "wrap matched patterns in <<<...>>> markers in output"}
	statsFlag      = &urfavecli.BoolFlag{Name: "stats", Usage: "print run statistics"}
	statsFormatFlag = &urfavecli.StringFlag{Name: "stats-format", Usage: "console|json|csv|markdown", Value: "console"}
	statsChartFlag = &urfavecli.StringFlag{Name: "stats-chart", Usage: "render a skip-reason/match-rate chart to this HTML path"}
	debugFlag      = &urfavecli.BoolFlag{Name: "debug", Usage: "verbose logging"}
	tuiFlag        = &urfavecli.BoolFlag{Name: "tui", Usage: "launch the terminal progress view instead of console log lines"}
)

// parseFlexibleDate tries a small set of date layouts, the same
// shape as the teacher's parseFlexibleTime.
func parseFlexibleDate(input string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "2006-01-02T15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, input); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", input)
}

func parseFlexibleClock(input string) (time.Time, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, input); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q, expected HH:MM or HH:MM:SS", input)
}

// buildConfig assembles an ApplicationConfig from --config (if
// given) overlaid with any explicitly-set flags, mirroring the
// teacher's config-file-then-flags dual mode.
func buildConfig(c *urfavecli.Context) (config.ApplicationConfig, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if c.IsSet("expression") {
		cfg.Search.Expression = c.String("expression")
	}
	if c.IsSet("path") || cfg.Files.Path == "" {
		cfg.Files.Path = c.String("path")
	}
	if c.IsSet("ignore-case") {
		cfg.Search.IgnoreCase = c.Bool("ignore-case")
	}
	if c.IsSet("regex") {
		cfg.Search.UseRegex = c.Bool("regex")
	}
	if c.IsSet("word-boundary") {
		cfg.Search.WordBoundary = c.Bool("word-boundary")
	}
	if c.IsSet("strip-quotes") {
		cfg.Search.StripQuotes = c.Bool("strip-quotes")
	}
	if c.Bool("exact-match") {
		cfg.Search.WordBoundary = true
		cfg.Search.StripQuotes = true
	}

	if from := c.String("from"); from != "" {
		t, err := parseFlexibleDate(from)
		if err != nil {
			return cfg, err
		}
		cfg.Search.DateFrom = &t
	}
	if to := c.String("to"); to != "" {
		t, err := parseFlexibleDate(to)
		if err != nil {
			return cfg, err
		}
		cfg.Search.DateTo = &t
	}
	if from := c.String("from-time"); from != "" {
		t, err := parseFlexibleClock(from)
		if err != nil {
			return cfg, err
		}
		cfg.Search.TimeFrom = &t
	}
	if to := c.String("to-time"); to != "" {
		t, err := parseFlexibleClock(to)
		if err != nil {
			return cfg, err
		}
		cfg.Search.TimeTo = &t
	}

	if c.IsSet("output") {
		cfg.Output.OutputFile = c.String("output")
	}
	if c.Bool("no-path") {
		cfg.Output.IncludeFilePath = false
	}
	if c.IsSet("max-record-size") {
		cfg.Files.MaxRecordSizeKB = c.Int("max-record-size")
	}
	if c.IsSet("max-file-size") {
		cfg.Files.MaxFileSizeMB = c.Int("max-file-size")
	}
	if c.IsSet("workers") {
		cfg.Processing.WorkerCount = c.Int("workers")
	}
	if c.Bool("dry-run") {
		cfg.Output.DryRun = true
	}
	if c.Bool("dry-run-details") {
		cfg.Output.DryRunDetails = true
	}
	if c.Bool("highlight") {
		cfg.Output.HighlightMatches = true
	}
	if c.Bool("stats") {
		cfg.Output.ShowStats = true
	}
	if c.IsSet("stats-format") {
		cfg.Output.StatsFormat = c.String("stats-format")
	}
	if c.IsSet("stats-chart") {
		cfg.Output.StatsChartPath = c.String("stats-chart")
	}
	if c.Bool("debug") {
		cfg.Processing.Debug = true
	}
	if c.Bool("tui") {
		cfg.Processing.TUI = true
	}

	return cfg, nil
}

// handleRunCommand is the single command's action: build
// configuration, run the pipeline to completion or interruption, and
// surface its result. A SIGINT/SIGTERM cancels the run's context so
// in-flight files finish but no new ones are dispatched
// (SPEC_FULL.md §12).
func handleRunCommand(c *urfavecli.Context) error {
	cfg, err := buildConfig(c)
	if err != nil {
		return &config.Error{Message: err.Error()}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Processing.TUI {
		return runWithTUI(ctx, cfg)
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	if cfg.Processing.Debug {
		logger.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	p, err := pipeline.New(cfg, logger)
	if err != nil {
		return err
	}

	_, err = p.Run(ctx)
	return err
}

var App = &urfavecli.App{
	Name:    "logfilter",
	Usage:   "filter structured log records by a boolean search expression",
	Version: Version,
	Flags: []urfavecli.Flag{
		expressionFlag, pathFlag, configFlag,
		fromFlag, toFlag, fromTimeFlag, toTimeFlag,
		ignoreCaseFlag, regexFlag, wordBoundaryFlag, stripQuotesFlag, exactMatchFlag,
		outputFlag, noPathFlag, maxRecordFlag, maxFileFlag, workersFlag,
		dryRunFlag, dryRunDetailsFlag, highlightFlag,
		statsFlag, statsFormatFlag, statsChartFlag,
		debugFlag, tuiFlag,
	},
	Action: handleRunCommand,
}
