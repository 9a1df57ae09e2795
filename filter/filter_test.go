package filter

import (
	"testing"
	"time"

	"github.com/ChristianF88/logfilter/record"
)

func mustRecordOnDate(t *testing.T, y int, m time.Month, d int) record.LogRecord {
	t.Helper()
	seq := record.Assemble(func(yield func(string) bool) {
		yield("2025-01-01 10:30:00.000+0000 ERROR x")
	}, nil, "t.log", 0, false)

	var out record.LogRecord
	for r, err := range seq {
		if err != nil {
			t.Fatal(err)
		}
		out = r
	}
	out.Timestamp = time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
	out.HasTime = true
	return out
}

func TestAlwaysPass(t *testing.T) {
	rec := record.LogRecord{}
	if !(AlwaysPass{}).Matches(rec) {
		t.Error("AlwaysPass must always match")
	}
}

func TestDateRange_MissingTimestampRejected(t *testing.T) {
	f, err := NewDateRange(time.Time{}, true, time.Now(), true)
	if err != nil {
		t.Fatal(err)
	}
	if f.Matches(record.LogRecord{}) {
		t.Error("a record with no timestamp must be rejected by a date filter")
	}
}

func TestDateRange_InBounds(t *testing.T) {
	rec := mustRecordOnDate(t, 2025, 1, 2)
	from := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	f, err := NewDateRange(from, true, to, true)
	if err != nil {
		t.Fatal(err)
	}
	if !f.Matches(rec) {
		t.Error("record dated 2025-01-02 should match a [2025-01-02, 2025-01-02] range")
	}

	outOfRange := mustRecordOnDate(t, 2025, 1, 3)
	if f.Matches(outOfRange) {
		t.Error("record dated 2025-01-03 should not match a [2025-01-02, 2025-01-02] range")
	}
}

func TestDateRange_InvalidConstruction(t *testing.T) {
	from := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := NewDateRange(from, true, to, true); err == nil {
		t.Error("expected error when from > to")
	}
}

func TestComposite_AllMustMatch(t *testing.T) {
	rec := mustRecordOnDate(t, 2025, 1, 2)
	dateOK, _ := NewDateRange(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), true, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), true)
	timeFails, _ := NewTimeRange(time.Date(0, 1, 1, 23, 0, 0, 0, time.UTC), true, time.Date(0, 1, 1, 23, 59, 0, 0, time.UTC), true)

	c := NewComposite(dateOK, timeFails)
	if c.Matches(rec) {
		t.Error("composite should reject when any constituent rejects")
	}
}

func TestBuild_NoFiltersIsAlwaysPass(t *testing.T) {
	f := Build(nil, nil)
	if _, ok := f.(AlwaysPass); !ok {
		t.Errorf("expected AlwaysPass with no filters configured, got %T", f)
	}
}
