package pipeline

import (
	"os"

	"github.com/ChristianF88/logfilter/stats"
	"github.com/ChristianF88/logfilter/writer"
)

// writeResults performs the one serial write of every matched record
// to the output file, in file-scan order (SPEC_FULL.md §4.4.1 phase
// 7). Workers never touch the output file directly.
func (p *Pipeline) writeResults(outcomes []fileOutcome) error {
	total := 0
	for _, o := range outcomes {
		total += len(o.matches)
	}
	if total == 0 {
		p.logger.Printf("no matching records found")
		return nil
	}

	w, err := writer.New(p.cfg.Output.OutputFile, writer.DefaultBufferSize, p.cfg.Output.IncludeFilePath)
	if err != nil {
		return err
	}
	if err := w.Open(); err != nil {
		return err
	}

	p.logger.Printf("writing %d matched records to %s", total, p.cfg.Output.OutputFile)
	for _, o := range outcomes {
		for _, m := range o.matches {
			if err := w.WriteResult(m, o.meta.Path, p.cfg.Output.HighlightMatches); err != nil {
				_ = w.Close()
				return err
			}
		}
	}
	return w.Close()
}

func (p *Pipeline) printStatistics() {
	snap := p.stats.Snapshot()
	format := stats.Format(p.cfg.Output.StatsFormat)
	if format == "" {
		format = stats.FormatConsole
	}
	if err := stats.Report(os.Stdout, snap, format); err != nil {
		p.logger.Printf("error reporting statistics: %v", err)
	}

	if p.cfg.Output.StatsChartPath != "" {
		if err := stats.PlotSkipReasons(snap, p.cfg.Output.StatsChartPath); err != nil {
			p.logger.Printf("error plotting skip-reason chart: %v", err)
		}
	}
}
