package pipeline

import (
	"context"
	"errors"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/ChristianF88/logfilter/config"
	"github.com/ChristianF88/logfilter/expr"
	"github.com/ChristianF88/logfilter/fileio"
	"github.com/ChristianF88/logfilter/record"
	"github.com/ChristianF88/logfilter/scanner"
	"github.com/ChristianF88/logfilter/stats"
)

// fileOutcome is one worker's complete contribution for one file:
// its matched records (in file order) and the counters to merge into
// the run-wide stats.Collector. skipReason is non-empty when the file
// was abandoned partway through (e.g. a record exceeded the size
// cap) — matches already found are kept regardless.
type fileOutcome struct {
	meta       scanner.FileMetadata
	matches    []record.SearchResult
	result     stats.FileResult
	skipReason string
}

// processFiles dispatches one task per file across a worker pool
// sized by config.ResolveWorkerCount, in the teacher's
// channel-plus-WaitGroup shape (analysis/parallel_static.go). Returns
// outcomes sorted by original scan order for deterministic output,
// and whether the run was interrupted before every file completed.
func (p *Pipeline) processFiles(ctx context.Context, files []scanner.FileMetadata) ([]fileOutcome, bool) {
	workerCount := config.ResolveWorkerCount(p.cfg.Processing.WorkerCount)
	if workerCount > len(files) {
		workerCount = len(files)
	}
	if cpu := runtime.NumCPU(); p.cfg.Processing.WorkerCount > cpu*4 {
		p.logger.Printf("worker count (%d) is significantly higher than CPU count (%d); this may cause memory pressure", p.cfg.Processing.WorkerCount, cpu)
	}

	type indexedMeta struct {
		index int
		meta  scanner.FileMetadata
	}
	type indexedOutcome struct {
		index   int
		outcome fileOutcome
	}

	workChan := make(chan indexedMeta)
	resultChan := make(chan indexedOutcome, len(files))

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for work := range workChan {
				resultChan <- indexedOutcome{index: work.index, outcome: p.processFile(work.meta)}
			}
		}()
	}

	interrupted := false
dispatch:
	for i, meta := range files {
		if ctx.Err() != nil {
			interrupted = true
			break dispatch
		}
		select {
		case <-ctx.Done():
			interrupted = true
			break dispatch
		case workChan <- indexedMeta{index: i, meta: meta}:
		}
	}
	close(workChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	outcomes := make([]indexedOutcome, 0, len(files))
	total := len(files)
	processed := 0
	recentDurations := make([]time.Duration, 0, 10)
	fileStart := time.Now()

	for r := range resultChan {
		processed++
		duration := time.Since(fileStart)
		fileStart = time.Now()

		p.stats.Merge(r.outcome.result)
		if r.outcome.skipReason != "" {
			p.stats.AddFilesSkipped(r.outcome.skipReason, 1)
		}

		recentDurations = append(recentDurations, duration)
		if len(recentDurations) > 10 {
			recentDurations = recentDurations[1:]
		}
		p.logProgress(processed, total, r.outcome, recentDurations)

		outcomes = append(outcomes, r)
	}

	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].index < outcomes[j].index })

	ordered := make([]fileOutcome, len(outcomes))
	for i, o := range outcomes {
		ordered[i] = o.outcome
	}
	return ordered, interrupted
}

// logProgress reports "[n/total] path (size MB): k matches | ETA Y
// min" using a moving average over the last 10 completions, the same
// window original_source/processing/pipeline.py tracks.
func (p *Pipeline) logProgress(processed, total int, outcome fileOutcome, recent []time.Duration) {
	var sum time.Duration
	for _, d := range recent {
		sum += d
	}
	avg := sum / time.Duration(len(recent))
	eta := avg * time.Duration(total-processed)

	p.logger.Printf("[%d/%d] %s (%.1f MB): %d matches | ETA %.1f min",
		processed, total, outcome.meta.Path, outcome.meta.SizeMB(), outcome.result.RecordsMatched, eta.Minutes())
}

// processFile is the worker contract (SPEC_FULL.md §4.4.2): open the
// file, stream and assemble records, apply the date/time filter, then
// the boolean expression, accumulating matches in a per-file buffer.
// Never touches shared state beyond the returned fileOutcome.
func (p *Pipeline) processFile(meta scanner.FileMetadata) fileOutcome {
	handler, err := fileio.NewHandler(meta.Path)
	if err != nil {
		return fileOutcome{meta: meta, skipReason: classifyError(err)}
	}

	var maxRecordBytes int64
	if p.cfg.Files.MaxRecordSizeKB > 0 {
		maxRecordBytes = int64(p.cfg.Files.MaxRecordSizeKB) * 1024
	}

	var fr stats.FileResult
	var matches []record.SearchResult
	skipReason := ""

	var readErr error
	lines := func(yield func(string) bool) {
		for line, err := range handler.ReadLines() {
			if err != nil {
				readErr = err
				return
			}
			if !yield(line) {
				return
			}
		}
	}

	for rec, err := range record.Assemble(lines, record.DefaultStartPattern, meta.Path, maxRecordBytes, p.cfg.Processing.NormalizeLogLevels) {
		if err != nil {
			var sizeErr *record.SizeExceededError
			if errors.As(err, &sizeErr) {
				skipReason = "record-size-exceeded"
				break
			}
			skipReason = classifyError(err)
			break
		}

		fr.RecordsTotal++
		fr.LinesProcessed += int64(rec.LineCount())
		fr.BytesProcessed += int64(len(rec.Content))

		if !p.recordFilter.Matches(rec) {
			fr.RecordsSkipped++
			continue
		}

		if expr.Evaluate(p.ast, rec.Content, p.matchCfg, p.cache) {
			fr.RecordsMatched++
			sr := record.SearchResult{Record: rec, Matched: true}
			if p.highlighter != nil {
				sr.HighlightedContent = p.highlighter.Highlight(rec.Content, p.patterns, p.matchCfg.IgnoreCase, p.matchCfg.UseRegex)
				sr.HasHighlight = true
			}
			matches = append(matches, sr)
		}
	}

	if skipReason == "" && readErr != nil {
		skipReason = classifyError(readErr)
	}

	fr.Processed = skipReason == ""
	return fileOutcome{meta: meta, matches: matches, result: fr, skipReason: skipReason}
}

// classifyError maps a fileio/record error into the short skip-reason
// slug reported in statistics, falling back to "unexpected-error" for
// anything not specifically recognized (SPEC_FULL.md §4.4.4).
func classifyError(err error) string {
	var fileErr *fileio.FileError
	if errors.As(err, &fileErr) {
		switch fileErr.Message {
		case "File not found", "File not found during read":
			return "file-not-found"
		case "Permission denied":
			return "permission-denied"
		case "Invalid or corrupted gzip file":
			return "gzip-error"
		default:
			return "read-error"
		}
	}
	return "unexpected-error"
}
