// Package filter composes optional date-range and time-range
// predicates over a record's extracted timestamp, per SPEC_FULL.md
// §4.3. Grounded on original_source/domain/filters.py.
package filter

import (
	"fmt"
	"time"

	"github.com/ChristianF88/logfilter/record"
)

// RecordFilter is a predicate over an assembled LogRecord.
type RecordFilter interface {
	Matches(rec record.LogRecord) bool
}

// AlwaysPass is the identity predicate used when no filters are
// configured.
type AlwaysPass struct{}

func (AlwaysPass) Matches(record.LogRecord) bool { return true }

// DateRange rejects records whose timestamp is absent; otherwise
// requires From <= record.Date() <= To using whichever bounds are
// set. Construction validates From <= To when both are set.
type DateRange struct {
	From, To   time.Time
	HasFrom    bool
	HasTo      bool
}

// NewDateRange builds a DateRange filter. hasFrom/hasTo indicate
// whether the corresponding bound is set; zero time.Time values are
// ignored when the flag is false.
func NewDateRange(from time.Time, hasFrom bool, to time.Time, hasTo bool) (*DateRange, error) {
	if hasFrom && hasTo && from.After(to) {
		return nil, fmt.Errorf("date_from (%s) must be <= date_to (%s)", from.Format("2006-01-02"), to.Format("2006-01-02"))
	}
	return &DateRange{From: from, To: to, HasFrom: hasFrom, HasTo: hasTo}, nil
}

func (f *DateRange) Matches(rec record.LogRecord) bool {
	d, ok := rec.Date()
	if !ok {
		return false
	}
	if f.HasFrom && d.Before(f.From) {
		return false
	}
	if f.HasTo && d.After(f.To) {
		return false
	}
	return true
}

// TimeRange is the time-of-day analog of DateRange.
type TimeRange struct {
	From, To time.Time
	HasFrom  bool
	HasTo    bool
}

func NewTimeRange(from time.Time, hasFrom bool, to time.Time, hasTo bool) (*TimeRange, error) {
	if hasFrom && hasTo && from.After(to) {
		return nil, fmt.Errorf("time_from (%s) must be <= time_to (%s)", from.Format("15:04:05"), to.Format("15:04:05"))
	}
	return &TimeRange{From: from, To: to, HasFrom: hasFrom, HasTo: hasTo}, nil
}

func (f *TimeRange) Matches(rec record.LogRecord) bool {
	t, ok := rec.Time()
	if !ok {
		return false
	}
	if f.HasFrom && t.Before(f.From) {
		return false
	}
	if f.HasTo && t.After(f.To) {
		return false
	}
	return true
}

// Composite ANDs together zero or more filters. Matches iff every
// constituent filter matches.
type Composite struct {
	filters []RecordFilter
}

func NewComposite(filters ...RecordFilter) *Composite {
	return &Composite{filters: filters}
}

func (c *Composite) Add(f RecordFilter) {
	c.filters = append(c.filters, f)
}

func (c *Composite) Matches(rec record.LogRecord) bool {
	for _, f := range c.filters {
		if !f.Matches(rec) {
			return false
		}
	}
	return true
}

// Build assembles the composite filter for a run: AlwaysPass when no
// bounds are configured, otherwise a Composite of whichever of
// DateRange/TimeRange were requested.
func Build(dateFilter *DateRange, timeFilter *TimeRange) RecordFilter {
	var filters []RecordFilter
	if dateFilter != nil {
		filters = append(filters, dateFilter)
	}
	if timeFilter != nil {
		filters = append(filters, timeFilter)
	}
	if len(filters) == 0 {
		return AlwaysPass{}
	}
	return NewComposite(filters...)
}
