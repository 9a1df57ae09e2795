package record

import (
	"slices"
	"testing"
)

func linesOf(ls ...string) func(yield func(string) bool) {
	return func(yield func(string) bool) {
		for _, l := range ls {
			if !yield(l) {
				return
			}
		}
	}
}

func collect(t *testing.T, lines []string, maxBytes int64) ([]LogRecord, error) {
	t.Helper()
	var out []LogRecord
	for rec, err := range Assemble(linesOf(lines...), nil, "test.log", maxBytes, false) {
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func TestAssemble_SimpleTwoRecords(t *testing.T) {
	lines := []string{
		"2025-01-01 10:00:00.000+0000 ERROR Kafka broker down",
		"2025-01-01 10:00:01.000+0000 INFO heartbeat ok",
	}
	recs, err := collect(t, lines, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Content != lines[0] {
		t.Errorf("expected content %q, got %q", lines[0], recs[0].Content)
	}
	if recs[0].Level != "ERROR" {
		t.Errorf("expected level ERROR, got %q", recs[0].Level)
	}
	if recs[0].StartLine != 1 || recs[0].EndLine != 1 {
		t.Errorf("expected lines 1-1, got %d-%d", recs[0].StartLine, recs[0].EndLine)
	}
}

func TestAssemble_MultilineRecord(t *testing.T) {
	lines := []string{
		"2025-01-01 10:00:00.000+0000 ERROR stack trace follows",
		"  at foo.bar()",
		"  at baz.qux()",
		"2025-01-01 10:00:01.000+0000 INFO next record",
	}
	recs, err := collect(t, lines, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	want := "2025-01-01 10:00:00.000+0000 ERROR stack trace follows\n  at foo.bar()\n  at baz.qux()"
	if recs[0].Content != want {
		t.Errorf("expected joined content %q, got %q", want, recs[0].Content)
	}
	if recs[0].StartLine != 1 || recs[0].EndLine != 3 {
		t.Errorf("expected lines 1-3, got %d-%d", recs[0].StartLine, recs[0].EndLine)
	}
}

func TestAssemble_OrphanLinesDiscarded(t *testing.T) {
	lines := []string{
		"garbage before first record",
		"more garbage",
		"2025-01-01 10:00:00.000+0000 ERROR first real record",
	}
	recs, err := collect(t, lines, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].StartLine != 3 {
		t.Errorf("expected start line 3, got %d", recs[0].StartLine)
	}
}

func TestAssemble_EmptyInput(t *testing.T) {
	recs, err := collect(t, nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected 0 records, got %d", len(recs))
	}
}

func TestAssemble_SizeExceeded(t *testing.T) {
	line := "2025-01-01 10:00:00.000+0000 ERROR " + string(make([]byte, 100))
	_, err := collect(t, []string{line}, 10)
	if err == nil {
		t.Fatal("expected SizeExceededError")
	}
	if _, ok := err.(*SizeExceededError); !ok {
		t.Fatalf("expected *SizeExceededError, got %T", err)
	}
}

func TestAssemble_SizeExactlyAtCap(t *testing.T) {
	line := "2025-01-01 10:00:00.000+0000 ERROR x"
	cap := int64(len(line))
	recs, err := collect(t, []string{line}, cap)
	if err != nil {
		t.Fatalf("expected no error at exactly the cap, got %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
}

func TestAssemble_RecordCountMatchesStartOccurrences(t *testing.T) {
	lines := []string{
		"2025-01-01 10:00:00.000+0000 ERROR one",
		"2025-01-01 10:00:01.000+0000 ERROR two",
		"2025-01-01 10:00:02.000+0000 ERROR three",
	}
	recs, err := collect(t, lines, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records (one per start occurrence), got %d", len(recs))
	}
}

func TestAssemble_TimestampParsed(t *testing.T) {
	lines := []string{"2025-01-01 10:00:00.000+0000 ERROR x"}
	recs, err := collect(t, lines, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !recs[0].HasTime {
		t.Fatal("expected timestamp to be parsed")
	}
	y, m, d := recs[0].Timestamp.Date()
	if y != 2025 || int(m) != 1 || d != 1 {
		t.Errorf("unexpected date: %d-%d-%d", y, m, d)
	}
}

func TestNormalizeLevel(t *testing.T) {
	cases := map[string]string{"E": "ERROR", "W": "WARN", "I": "INFO", "D": "DEBUG", "ERROR": "ERROR", "": ""}
	for in, want := range cases {
		if got := NormalizeLevel(in); got != want {
			t.Errorf("NormalizeLevel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAssemble_NormalizeLevelGate(t *testing.T) {
	lines := []string{"2025-01-01 10:00:00.000+0000 E broker down"}

	var withoutNormalize []LogRecord
	for rec, err := range Assemble(linesOf(lines...), nil, "test.log", 0, false) {
		if err != nil {
			t.Fatal(err)
		}
		withoutNormalize = append(withoutNormalize, rec)
	}
	if withoutNormalize[0].Level != "E" {
		t.Errorf("Level = %q, want unexpanded %q", withoutNormalize[0].Level, "E")
	}

	var withNormalize []LogRecord
	for rec, err := range Assemble(linesOf(lines...), nil, "test.log", 0, true) {
		if err != nil {
			t.Fatal(err)
		}
		withNormalize = append(withNormalize, rec)
	}
	if withNormalize[0].Level != "ERROR" {
		t.Errorf("Level = %q, want expanded %q", withNormalize[0].Level, "ERROR")
	}
}

func TestAssemble_LazyPartialConsumption(t *testing.T) {
	lines := []string{
		"2025-01-01 10:00:00.000+0000 ERROR one",
		"2025-01-01 10:00:01.000+0000 ERROR two",
		"2025-01-01 10:00:02.000+0000 ERROR three",
	}
	var seen []string
	for rec, err := range Assemble(linesOf(lines...), nil, "test.log", 0, false) {
		if err != nil {
			t.Fatal(err)
		}
		seen = append(seen, rec.Level)
		break // consumer stops early; assembler must not have materialized the rest
	}
	if !slices.Equal(seen, []string{"ERROR"}) {
		t.Fatalf("expected early break to yield exactly one record, got %v", seen)
	}
}
