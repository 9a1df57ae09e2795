package record

import (
	"iter"
	"regexp"

	"github.com/ChristianF88/logfilter/pools"
)

// DefaultStartPattern is the bit-exact record-start regex from
// SPEC_FULL.md §6: a line beginning with a timestamp and an
// uppercase level marks the start of a new record.
var DefaultStartPattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}) (\d{2}:\d{2}:\d{2})\.\d{3}[+-]\d{4}\s+([A-Z]+)`)

// Assemble turns a lazy sequence of raw lines into a lazy sequence of
// fully assembled LogRecords. It is the central place where laziness
// matters: at most one in-progress record and one just-emitted record
// are ever live (the bounded-memory invariant in SPEC_FULL.md §4.2).
// sourceFile is stamped onto every emitted record. maxRecordBytes <= 0
// means unbounded.
//
// Iteration stops early, yielding a *SizeExceededError once, if a
// record's buffered size grows past maxRecordBytes — mirroring the
// original streaming parser's behavior of raising and terminating the
// generator rather than skipping ahead within the same file.
//
// normalizeLevel expands single-letter abbreviated levels (E, W, I,
// D) captured by pattern to their full names on LogRecord.Level, per
// Processing.NormalizeLogLevels (SPEC_FULL.md §13); it never affects
// Content, so matching is unaffected either way.
func Assemble(lines iter.Seq[string], pattern *regexp.Regexp, sourceFile string, maxRecordBytes int64, normalizeLevel bool) iter.Seq2[LogRecord, error] {
	if pattern == nil {
		pattern = DefaultStartPattern
	}

	return func(yield func(LogRecord, error) bool) {
		var buf []string
		var size int64
		var firstDate, firstTime, firstLevel string
		haveFirst := false
		startLine := 1
		lineNum := 0

		emit := func(endLine int) bool {
			rec := buildRecord(buf, size, firstDate, firstTime, firstLevel, haveFirst, sourceFile, startLine, endLine, normalizeLevel)
			pools.Pools.ReturnLineSlice(buf)
			buf = nil
			return yield(rec, nil)
		}

		for line := range lines {
			lineNum++

			if m := pattern.FindStringSubmatch(line); m != nil {
				if len(buf) > 0 {
					if !emit(lineNum - 1) {
						return
					}
				}
				buf = append(pools.Pools.GetLineSlice(), line)
				size = int64(len(line))
				firstDate, firstTime, firstLevel = m[1], m[2], m[3]
				haveFirst = true
				startLine = lineNum

				if maxRecordBytes > 0 && size > maxRecordBytes {
					yield(LogRecord{}, &SizeExceededError{
						SizeKB:    float64(size) / 1024,
						MaxSizeKB: int(maxRecordBytes / 1024),
					})
					return
				}
				continue
			}

			if len(buf) == 0 {
				// orphan line before the first record start: discard
				continue
			}
			buf = append(buf, line)
			size += int64(len(line))

			if maxRecordBytes > 0 && size > maxRecordBytes {
				yield(LogRecord{}, &SizeExceededError{
					SizeKB:    float64(size) / 1024,
					MaxSizeKB: int(maxRecordBytes / 1024),
				})
				return
			}
		}

		if len(buf) > 0 {
			emit(lineNum)
		}
	}
}

func buildRecord(lines []string, size int64, date, clock, level string, haveFirst bool, sourceFile string, startLine, endLine int, normalizeLevel bool) LogRecord {
	content := joinLines(lines)
	first := ""
	if len(lines) > 0 {
		first = lines[0]
	}

	rec := LogRecord{
		Content:    content,
		FirstLine:  first,
		SourceFile: sourceFile,
		StartLine:  startLine,
		EndLine:    endLine,
		SizeBytes:  int(size),
	}

	if haveFirst {
		if normalizeLevel {
			level = NormalizeLevel(level)
		}
		rec.Level = level
		if ts, ok := parseTimestamp(date, clock); ok {
			rec.Timestamp = ts
			rec.HasTime = true
		}
	}

	return rec
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	b := pools.Pools.GetBuilder()
	defer pools.Pools.ReturnBuilder(b)
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l)
	}
	return b.String()
}
