// Package interval provides half-open time intervals on a single
// calendar day, plus the wall-clock parsing the rest of the engine
// builds on. Intervals are immutable values; all operations return new
// intervals.
package interval

import (
	"fmt"
	"time"
)

// Clock is a wall-clock time of day with second precision.
type Clock struct {
	Hour   int
	Minute int
	Second int
}

// ParseClock parses "HH:MM:SS" or "HH:MM" into a Clock.
func ParseClock(s string) (Clock, error) {
	var c Clock
	switch len(s) {
	case 8:
		if _, err := fmt.Sscanf(s, "%02d:%02d:%02d", &c.Hour, &c.Minute, &c.Second); err != nil {
			return Clock{}, fmt.Errorf("invalid clock time %q: %w", s, err)
		}
	case 5:
		if _, err := fmt.Sscanf(s, "%02d:%02d", &c.Hour, &c.Minute); err != nil {
			return Clock{}, fmt.Errorf("invalid clock time %q: %w", s, err)
		}
	default:
		return Clock{}, fmt.Errorf("invalid clock time %q: want HH:MM:SS or HH:MM", s)
	}
	if c.Hour < 0 || c.Hour > 23 || c.Minute < 0 || c.Minute > 59 || c.Second < 0 || c.Second > 59 {
		return Clock{}, fmt.Errorf("clock time %q out of range", s)
	}
	return c, nil
}

// MustClock parses a clock string and panics on failure. For constants
// and tests.
func MustClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ClockOf extracts the wall-clock time of day from t.
func ClockOf(t time.Time) Clock {
	return Clock{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

// String formats the clock as "HH:MM:SS".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// Short formats the clock as "HH:MM".
func (c Clock) Short() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// On combines the clock with a calendar date, in the date's location.
func (c Clock) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour, c.Minute, c.Second, 0, date.Location())
}

// Seconds returns the offset from midnight in seconds.
func (c Clock) Seconds() int {
	return c.Hour*3600 + c.Minute*60 + c.Second
}

// Before reports whether c is earlier in the day than other.
func (c Clock) Before(other Clock) bool {
	return c.Seconds() < other.Seconds()
}

// After reports whether c is later in the day than other.
func (c Clock) After(other Clock) bool {
	return c.Seconds() > other.Seconds()
}

// Interval is a half-open [Start, End) range of instants on a single
// calendar day. An interval with End <= Start is degenerate and carries
// no duration.
type Interval struct {
	Start time.Time
	End   time.Time
}

// New builds an interval from two instants.
func New(start, end time.Time) Interval {
	return Interval{Start: start, End: end}
}

// OnDate builds an interval from two clock times on the given date.
func OnDate(date time.Time, start, end Clock) Interval {
	return Interval{Start: start.On(date), End: end.On(date)}
}

// Valid reports whether the interval has positive duration.
func (iv Interval) Valid() bool {
	return iv.End.After(iv.Start)
}

// Duration returns End - Start, or zero for degenerate intervals.
func (iv Interval) Duration() time.Duration {
	if !iv.Valid() {
		return 0
	}
	return iv.End.Sub(iv.Start)
}

// Hours returns the duration in fractional hours.
func (iv Interval) Hours() float64 {
	return iv.Duration().Hours()
}

// Overlaps reports whether the two half-open intervals share any
// instant.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Contains reports whether other lies entirely within iv.
func (iv Interval) Contains(other Interval) bool {
	return !other.Start.Before(iv.Start) && !other.End.After(iv.End)
}

// Clip restricts the interval to the given bounds. The result may be
// degenerate if the interval lies outside the bounds entirely.
func (iv Interval) Clip(bounds Interval) Interval {
	out := iv
	if out.Start.Before(bounds.Start) {
		out.Start = bounds.Start
	}
	if out.End.After(bounds.End) {
		out.End = bounds.End
	}
	return out
}

// Intersect returns the overlap of two intervals; the result is
// degenerate when they do not overlap.
func (iv Interval) Intersect(other Interval) Interval {
	out := iv
	if other.Start.After(out.Start) {
		out.Start = other.Start
	}
	if other.End.Before(out.End) {
		out.End = other.End
	}
	return out
}

// SplitAround removes block from the interval and returns the 0, 1 or 2
// remaining pieces in chronological order: nothing when the interval is
// fully inside the block, one piece when it only partially overlaps (or
// does not touch the block), two when it straddles the block entirely.
func (iv Interval) SplitAround(block Interval) []Interval {
	var out []Interval

	preEnd := iv.End
	if block.Start.Before(preEnd) {
		preEnd = block.Start
	}
	if iv.Start.Before(preEnd) {
		out = append(out, Interval{Start: iv.Start, End: preEnd})
	}

	postStart := iv.Start
	if block.End.After(postStart) {
		postStart = block.End
	}
	if postStart.Before(iv.End) {
		out = append(out, Interval{Start: postStart, End: iv.End})
	}

	return out
}

// String formats the interval as "HH:MM - HH:MM".
func (iv Interval) String() string {
	return fmt.Sprintf("%s - %s", iv.Start.Format("15:04"), iv.End.Format("15:04"))
}
