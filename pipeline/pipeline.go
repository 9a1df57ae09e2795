// Package pipeline orchestrates the complete log filtering run:
// validate configuration, parse the search expression once, scan
// candidate files, dispatch one worker per file, aggregate results,
// and write matched records. Grounded on
// original_source/processing/pipeline.py's ProcessingPipeline, with
// the worker-channel fan-out shape adapted from the teacher's
// analysis/parallel_static.go trie worker pool.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ChristianF88/logfilter/config"
	"github.com/ChristianF88/logfilter/expr"
	"github.com/ChristianF88/logfilter/filter"
	"github.com/ChristianF88/logfilter/highlight"
	"github.com/ChristianF88/logfilter/scanner"
	"github.com/ChristianF88/logfilter/stats"
)

// ErrInterrupted is returned by Run when the context was cancelled
// before processing completed. Maps to exit code 130 at the CLI
// layer.
var ErrInterrupted = errors.New("pipeline interrupted")

// Pipeline runs one filtering pass over a configured directory tree.
// Built via New, which validates configuration and parses the search
// expression up front so a malformed expression fails fast instead of
// surfacing mid-run (SPEC_FULL.md §4.4.4).
type Pipeline struct {
	cfg          config.ApplicationConfig
	ast          expr.Node
	patterns     []string
	matchCfg     expr.MatchConfig
	cache        *expr.PatternCache
	recordFilter filter.RecordFilter
	highlighter  *highlight.Highlighter
	stats        *stats.Collector
	logger       *log.Logger
}

// New builds a Pipeline for cfg. Returns a *config.Error (fatal,
// exit code 2) if the configuration is invalid or the search
// expression fails to parse or compiles to zero usable patterns.
func New(cfg config.ApplicationConfig, logger *log.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ast, err := expr.Parse(cfg.Search.Expression)
	if err != nil {
		return nil, &config.Error{Message: fmt.Sprintf("failed to parse expression %q: %v", cfg.Search.Expression, err)}
	}

	matchCfg := expr.MatchConfig{
		IgnoreCase:   cfg.Search.IgnoreCase,
		UseRegex:     cfg.Search.UseRegex,
		WordBoundary: cfg.Search.WordBoundary,
		StripQuotes:  cfg.Search.StripQuotes,
	}

	cache := expr.CompilePatterns(ast, matchCfg)
	if cache.AllFailed() {
		return nil, &config.Error{Message: fmt.Sprintf("every pattern in expression %q failed to compile", cfg.Search.Expression)}
	}

	recordFilter, err := buildRecordFilter(cfg.Search)
	if err != nil {
		return nil, &config.Error{Message: err.Error()}
	}

	var hl *highlight.Highlighter
	if cfg.Output.HighlightMatches {
		hl = highlight.New("", "")
	}

	if logger == nil {
		logger = log.Default()
	}

	return &Pipeline{
		cfg:          cfg,
		ast:          ast,
		patterns:     expr.ExtractPatterns(ast),
		matchCfg:     matchCfg,
		cache:        cache,
		recordFilter: recordFilter,
		highlighter:  hl,
		stats:        stats.NewCollector(),
		logger:       logger,
	}, nil
}

func buildRecordFilter(s config.SearchConfig) (filter.RecordFilter, error) {
	var dateFilter *filter.DateRange
	if s.DateFrom != nil || s.DateTo != nil {
		var from, to time.Time
		hasFrom, hasTo := s.DateFrom != nil, s.DateTo != nil
		if hasFrom {
			from = *s.DateFrom
		}
		if hasTo {
			to = *s.DateTo
		}
		df, err := filter.NewDateRange(from, hasFrom, to, hasTo)
		if err != nil {
			return nil, err
		}
		dateFilter = df
	}

	var timeFilter *filter.TimeRange
	if s.TimeFrom != nil || s.TimeTo != nil {
		var from, to time.Time
		hasFrom, hasTo := s.TimeFrom != nil, s.TimeTo != nil
		if hasFrom {
			from = *s.TimeFrom
		}
		if hasTo {
			to = *s.TimeTo
		}
		tf, err := filter.NewTimeRange(from, hasFrom, to, hasTo)
		if err != nil {
			return nil, err
		}
		timeFilter = tf
	}

	return filter.Build(dateFilter, timeFilter), nil
}

// Run executes the full pipeline: scan, (maybe) dry-run, process,
// write, report. The returned ProcessingStats snapshot is populated
// even on error, for callers that want partial numbers.
func (p *Pipeline) Run(ctx context.Context) (stats.ProcessingStats, error) {
	p.stats.Start()
	defer p.stats.Stop()

	eligible, err := p.scanFiles()
	if err != nil {
		return p.stats.Snapshot(), err
	}

	if p.cfg.Output.DryRun || p.cfg.Output.DryRunDetails {
		p.handleDryRun(eligible)
		return p.stats.Snapshot(), nil
	}

	if len(eligible) == 0 {
		p.logger.Printf("no eligible files found")
		return p.stats.Snapshot(), nil
	}

	outcomes, interrupted := p.processFiles(ctx, eligible)

	if err := p.writeResults(outcomes); err != nil {
		return p.stats.Snapshot(), err
	}

	if p.cfg.Output.ShowStats {
		p.printStatistics()
	}

	if interrupted {
		return p.stats.Snapshot(), ErrInterrupted
	}
	return p.stats.Snapshot(), nil
}

func (p *Pipeline) scanFiles() ([]scanner.FileMetadata, error) {
	opts := scanner.Options{
		RootPath:        p.cfg.Files.Path,
		FileMasks:       p.cfg.Files.FileMasks,
		IncludePatterns: p.cfg.Files.IncludePatterns,
		ExcludePatterns: p.cfg.Files.ExcludePatterns,
		MaxFileSizeMB:   p.cfg.Files.MaxFileSizeMB,
		Recursive:       true,
	}
	if len(p.cfg.Files.Extensions) > 0 {
		allowed := make(map[string]bool, len(p.cfg.Files.Extensions))
		for _, ext := range p.cfg.Files.Extensions {
			allowed[ext] = true
		}
		opts.AllowedExtensions = allowed
	}

	var eligible []scanner.FileMetadata
	for meta, err := range scanner.Scan(opts) {
		if err != nil {
			return nil, err
		}
		p.stats.AddFilesScanned(1)
		if meta.ShouldSkip() {
			reason := meta.SkipReason
			if reason == "" {
				reason = "unreadable"
			}
			p.stats.AddFilesSkipped(reason, 1)
			p.logger.Printf("skipping %s: %s", meta.Path, reason)
			continue
		}
		eligible = append(eligible, meta)
	}

	p.logger.Printf("found %d files to process (%d skipped)", len(eligible), p.stats.Snapshot().FilesSkipped)
	return eligible, nil
}
