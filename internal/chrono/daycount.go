// Package chrono turns photo capture instants into day counts relative to a
// reference date and derives summary facts over a set of day counts.
package chrono

import (
	"strconv"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// DayCount is either a known signed number of days or unknown.
// The zero value is unknown.
type DayCount struct {
	days  int
	known bool
}

// Known returns a DayCount holding n days.
func Known(n int) DayCount { return DayCount{days: n, known: true} }

// Unknown returns a DayCount with no value.
func Unknown() DayCount { return DayCount{} }

// Value returns the number of days and whether it is known.
func (d DayCount) Value() (int, bool) { return d.days, d.known }

// IsKnown reports whether d holds a day count.
func (d DayCount) IsKnown() bool { return d.known }

func (d DayCount) String() string {
	if !d.known {
		return "unknown"
	}
	return strconv.Itoa(d.days)
}

// DayCountResult pairs a file with its day count.
type DayCountResult struct {
	File string
	Days DayCount
}

// Instant is a capture time that may be absent.
type Instant struct {
	At time.Time
	OK bool
}

// CivilDate returns the calendar date of t, read in t's own location,
// as midnight UTC.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// wallClock returns the clock reading of t, read in t's own location, as a
// UTC time. Arithmetic on it moves the clock, not elapsed time.
func wallClock(t time.Time) time.Time {
	y, m, d := t.Date()
	h, mi, s := t.Clock()
	return time.Date(y, m, d, h, mi, s, t.Nanosecond(), time.UTC)
}

// daysBetween returns the whole-day difference b - a of two civil dates.
// Unix seconds keep spans beyond time.Duration's range exact.
func daysBetween(a, b time.Time) int {
	return int((CivilDate(b).Unix() - CivilDate(a).Unix()) / secondsPerDay)
}

// ComputeDayCount converts a capture instant into days since ref.
// The offset is subtracted from the local clock reading before taking its
// calendar date, so with a 4h offset a photo taken at 03:00 counts towards
// the previous day, also on mornings when the clocks change.
func ComputeDayCount(captured Instant, ref time.Time, hasRef bool, offset time.Duration) DayCount {
	if !captured.OK || !hasRef {
		return Unknown()
	}
	shifted := wallClock(captured.At).Add(-offset)
	return Known(daysBetween(ref, shifted))
}

// Calendar fixes the reference date and offset used for a run.
type Calendar struct {
	Reference    time.Time
	HasReference bool
	Offset       time.Duration
}

// NewCalendar returns a Calendar anchored at ref's calendar date.
func NewCalendar(ref time.Time, offset time.Duration) Calendar {
	return Calendar{Reference: CivilDate(ref), HasReference: true, Offset: offset}
}

// DayCount computes the day count of a single capture instant.
func (c Calendar) DayCount(captured Instant) DayCount {
	return ComputeDayCount(captured, c.Reference, c.HasReference, c.Offset)
}

// InferReferenceDate returns the calendar date of the earliest present instant.
// It reports false when every instant is absent.
func InferReferenceDate(instants []Instant) (time.Time, bool) {
	var (
		earliest time.Time
		found    bool
	)
	for _, in := range instants {
		if !in.OK {
			continue
		}
		if !found || in.At.Before(earliest) {
			earliest = in.At
			found = true
		}
	}
	if !found {
		return time.Time{}, false
	}
	return CivilDate(earliest), true
}
