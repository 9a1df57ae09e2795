package stats

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Format selects a reporter output shape.
type Format string

const (
	FormatConsole  Format = "console"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
)

// Report renders a ProcessingStats snapshot to w in the requested
// format, grounded on ProcessingPipeline._print_statistics's field
// ordering.
func Report(w io.Writer, s ProcessingStats, format Format) error {
	switch format {
	case FormatJSON:
		return reportJSON(w, s)
	case FormatCSV:
		return reportCSV(w, s)
	case FormatMarkdown:
		return reportMarkdown(w, s)
	default:
		return reportConsole(w, s)
	}
}

func reportConsole(w io.Writer, s ProcessingStats) error {
	bar := strings.Repeat("=", 60)
	fmt.Fprintln(w, bar)
	fmt.Fprintln(w, "Processing Statistics")
	fmt.Fprintln(w, bar)
	fmt.Fprintf(w, "Duration: %.2fs\n", s.DurationSeconds())
	fmt.Fprintf(w, "Files scanned: %d\n", s.FilesScanned)
	fmt.Fprintf(w, "Files processed: %d\n", s.FilesProcessed)
	fmt.Fprintf(w, "Files skipped: %d\n", s.FilesSkipped)
	if len(s.SkipReasons) > 0 {
		fmt.Fprintln(w, "Skip reasons:")
		for _, reason := range sortedReasonKeys(s.SkipReasons) {
			fmt.Fprintf(w, "  %s: %d\n", reason, s.SkipReasons[reason])
		}
	}
	fmt.Fprintf(w, "Records total: %d\n", s.RecordsTotal)
	fmt.Fprintf(w, "Records matched: %d\n", s.RecordsMatched)
	fmt.Fprintf(w, "Records skipped: %d\n", s.RecordsSkipped)
	fmt.Fprintf(w, "Data processed: %.2f MB\n", s.MegabytesProcessed())
	fmt.Fprintf(w, "Throughput: %.0f records/sec\n", s.RecordsPerSecond())
	fmt.Fprintln(w, bar)
	return nil
}

type jsonStats struct {
	DurationSeconds    float64        `json:"duration_seconds"`
	FilesScanned       int            `json:"files_scanned"`
	FilesProcessed     int            `json:"files_processed"`
	FilesSkipped       int            `json:"files_skipped"`
	SkipReasons        map[string]int `json:"skip_reasons"`
	RecordsTotal       int            `json:"records_total"`
	RecordsMatched     int            `json:"records_matched"`
	RecordsSkipped     int            `json:"records_skipped"`
	MegabytesProcessed float64        `json:"megabytes_processed"`
	RecordsPerSecond   float64        `json:"records_per_second"`
}

func reportJSON(w io.Writer, s ProcessingStats) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonStats{
		DurationSeconds:    s.DurationSeconds(),
		FilesScanned:       s.FilesScanned,
		FilesProcessed:     s.FilesProcessed,
		FilesSkipped:       s.FilesSkipped,
		SkipReasons:        s.SkipReasons,
		RecordsTotal:       s.RecordsTotal,
		RecordsMatched:     s.RecordsMatched,
		RecordsSkipped:     s.RecordsSkipped,
		MegabytesProcessed: s.MegabytesProcessed(),
		RecordsPerSecond:   s.RecordsPerSecond(),
	})
}

func reportCSV(w io.Writer, s ProcessingStats) error {
	cw := csv.NewWriter(w)
	rows := [][]string{
		{"metric", "value"},
		{"duration_seconds", fmt.Sprintf("%.2f", s.DurationSeconds())},
		{"files_scanned", fmt.Sprint(s.FilesScanned)},
		{"files_processed", fmt.Sprint(s.FilesProcessed)},
		{"files_skipped", fmt.Sprint(s.FilesSkipped)},
		{"records_total", fmt.Sprint(s.RecordsTotal)},
		{"records_matched", fmt.Sprint(s.RecordsMatched)},
		{"records_skipped", fmt.Sprint(s.RecordsSkipped)},
		{"megabytes_processed", fmt.Sprintf("%.2f", s.MegabytesProcessed())},
		{"records_per_second", fmt.Sprintf("%.0f", s.RecordsPerSecond())},
	}
	for _, reason := range sortedReasonKeys(s.SkipReasons) {
		rows = append(rows, []string{"skip_reason:" + reason, fmt.Sprint(s.SkipReasons[reason])})
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func reportMarkdown(w io.Writer, s ProcessingStats) error {
	fmt.Fprintln(w, "| Metric | Value |")
	fmt.Fprintln(w, "|---|---|")
	fmt.Fprintf(w, "| Duration | %.2fs |\n", s.DurationSeconds())
	fmt.Fprintf(w, "| Files scanned | %d |\n", s.FilesScanned)
	fmt.Fprintf(w, "| Files processed | %d |\n", s.FilesProcessed)
	fmt.Fprintf(w, "| Files skipped | %d |\n", s.FilesSkipped)
	fmt.Fprintf(w, "| Records total | %d |\n", s.RecordsTotal)
	fmt.Fprintf(w, "| Records matched | %d |\n", s.RecordsMatched)
	fmt.Fprintf(w, "| Records skipped | %d |\n", s.RecordsSkipped)
	fmt.Fprintf(w, "| Data processed | %.2f MB |\n", s.MegabytesProcessed())
	fmt.Fprintf(w, "| Throughput | %.0f records/sec |\n", s.RecordsPerSecond())
	if len(s.SkipReasons) > 0 {
		fmt.Fprintln(w, "\n| Skip reason | Count |")
		fmt.Fprintln(w, "|---|---|")
		for _, reason := range sortedReasonKeys(s.SkipReasons) {
			fmt.Fprintf(w, "| %s | %d |\n", reason, s.SkipReasons[reason])
		}
	}
	return nil
}

func sortedReasonKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
