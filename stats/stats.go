// Package stats collects and reports processing statistics, grounded
// on original_source/statistics/collector.py.
package stats

import (
	"sync"
	"time"
)

// ProcessingStats holds a point-in-time snapshot of run-wide counters.
type ProcessingStats struct {
	FilesScanned   int
	FilesProcessed int
	FilesSkipped   int
	SkipReasons    map[string]int

	RecordsTotal   int
	RecordsMatched int
	RecordsSkipped int

	TotalBytesProcessed int64
	TotalLinesProcessed int64

	StartTime time.Time
	EndTime   time.Time
}

func (s ProcessingStats) DurationSeconds() float64 {
	if s.StartTime.IsZero() {
		return 0
	}
	end := s.EndTime
	if end.IsZero() {
		end = time.Now()
	}
	return end.Sub(s.StartTime).Seconds()
}

func (s ProcessingStats) RecordsPerSecond() float64 {
	d := s.DurationSeconds()
	if d <= 0 {
		return 0
	}
	return float64(s.RecordsTotal) / d
}

func (s ProcessingStats) MegabytesProcessed() float64 {
	mb := float64(s.TotalBytesProcessed) / (1024 * 1024)
	return float64(int(mb*100)) / 100
}

// Collector is a thread-safe accumulator for ProcessingStats, built to
// be shared across worker goroutines under a single mutex — there is
// only ever one aggregation path here, unlike the original's
// now-duplicated single-threaded merge block.
type Collector struct {
	mu    sync.Mutex
	stats ProcessingStats
}

func NewCollector() *Collector {
	return &Collector{stats: ProcessingStats{SkipReasons: make(map[string]int)}}
}

func (c *Collector) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.StartTime = time.Now()
}

func (c *Collector) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.EndTime = time.Now()
}

func (c *Collector) AddFilesScanned(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.FilesScanned += n
}

func (c *Collector) AddFilesSkipped(reason string, n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.FilesSkipped += n
	c.stats.SkipReasons[reason] += n
}

// Merge folds a per-file result's counters into the collector in one
// locked step — the single aggregation path used regardless of
// worker count (see DESIGN.md Open Question 1).
func (c *Collector) Merge(r FileResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.RecordsTotal += r.RecordsTotal
	c.stats.RecordsMatched += r.RecordsMatched
	c.stats.RecordsSkipped += r.RecordsSkipped
	c.stats.TotalBytesProcessed += r.BytesProcessed
	c.stats.TotalLinesProcessed += r.LinesProcessed
	if r.Processed {
		c.stats.FilesProcessed++
	}
}

// FileResult is the subset of per-file counters a worker reports back
// to the collector for one processed file.
type FileResult struct {
	Processed      bool
	RecordsTotal   int
	RecordsMatched int
	RecordsSkipped int
	BytesProcessed int64
	LinesProcessed int64
}

func (c *Collector) Snapshot() ProcessingStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	reasons := make(map[string]int, len(c.stats.SkipReasons))
	for k, v := range c.stats.SkipReasons {
		reasons[k] = v
	}
	snap := c.stats
	snap.SkipReasons = reasons
	return snap
}
