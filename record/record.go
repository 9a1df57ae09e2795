package record

import "time"

// timestampLayouts are tried in order when parsing a record's
// stashed date+time strings; the first one that succeeds wins. A
// record whose timestamp cannot be parsed by any of them is still
// emitted, just with an unset Timestamp.
var timestampLayouts = []string{
	"2006-01-02 15:04:05.000-0700",
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
}

// LogRecord is one assembled multi-line log entry. Immutable after
// construction.
type LogRecord struct {
	Content    string
	FirstLine  string
	SourceFile string
	StartLine  int
	EndLine    int
	Timestamp  time.Time // zero value means absent
	HasTime    bool
	Level      string
	SizeBytes  int
}

// Date returns the timestamp's date projection. ok is false when the
// record has no parsed timestamp.
func (r LogRecord) Date() (time.Time, bool) {
	if !r.HasTime {
		return time.Time{}, false
	}
	y, m, d := r.Timestamp.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, r.Timestamp.Location()), true
}

// Time returns the timestamp's time-of-day projection, expressed as a
// duration-since-midnight-shaped time.Time on the zero date so it
// remains comparable with time.Before/After. ok is false when the
// record has no parsed timestamp.
func (r LogRecord) Time() (time.Time, bool) {
	if !r.HasTime {
		return time.Time{}, false
	}
	h, m, s := r.Timestamp.Clock()
	return time.Date(0, 1, 1, h, m, s, r.Timestamp.Nanosecond(), time.UTC), true
}

// LineCount returns the number of lines the record spans.
func (r LogRecord) LineCount() int {
	return r.EndLine - r.StartLine + 1
}

// parseTimestamp tries each of timestampLayouts in turn against
// "date time", mirroring the three-format fallback in the original
// implementation's _create_record.
func parseTimestamp(date, clock string) (time.Time, bool) {
	combined := date + " " + clock
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, combined); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// SearchResult is the outcome of evaluating a boolean search
// expression against a LogRecord: whether it matched, and (when
// highlighting is requested) the record's content with matches
// wrapped in markers.
type SearchResult struct {
	Record             LogRecord
	Matched            bool
	HighlightedContent string
	HasHighlight       bool
}

// NormalizeLevel expands single-letter abbreviated levels captured by
// the record-start pattern (E, W, I, D) to their full names. Display
// concern only — it never affects matching, which operates on raw
// Content. SPEC_FULL.md §13.
func NormalizeLevel(level string) string {
	switch level {
	case "E":
		return "ERROR"
	case "W":
		return "WARN"
	case "I":
		return "INFO"
	case "D":
		return "DEBUG"
	default:
		return level
	}
}
