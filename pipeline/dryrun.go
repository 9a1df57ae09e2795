package pipeline

import "github.com/ChristianF88/logfilter/scanner"

// handleDryRun reports the files that would be processed without
// touching any of them, per original_source/processing/pipeline.py's
// _handle_dry_run. DryRunDetails prints only a size summary;
// otherwise every eligible file is listed.
func (p *Pipeline) handleDryRun(files []scanner.FileMetadata) {
	if p.cfg.Output.DryRunDetails {
		var totalMB float64
		for _, f := range files {
			totalMB += f.SizeMB()
		}
		p.logger.Printf("dry-run: %d files, %.2f MB total", len(files), totalMB)
		return
	}

	p.logger.Printf("dry-run: files to process:")
	for _, f := range files {
		p.logger.Printf("  %s (%.2f MB)", f.Path, f.SizeMB())
	}
}
