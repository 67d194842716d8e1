// Package policy resolves the working-hour rules in force on a given
// date and derives the concrete workday span from them. A DayPolicy is
// an immutable value: it is built once per date, either from a frozen
// per-day snapshot or from the live configuration, and threaded
// explicitly through every computation so nothing downstream depends on
// ambient config state.
package policy

import (
	"fmt"
	"time"

	"github.com/ayliff/taskday/internal/config"
	"github.com/ayliff/taskday/internal/interval"
	"github.com/ayliff/taskday/internal/task"
)

// DayPolicy is the effective rule set for one date.
type DayPolicy struct {
	FlexibleLower interval.Clock
	FlexibleUpper interval.Clock
	RequiredHours float64
	LunchStart    interval.Clock
	LunchEnd      interval.Clock
	WorkingDays   []string
	Holidays      []string
}

// Snapshot is the persistable string form of a DayPolicy, frozen into a
// day override the first time a date's schedule is computed. Later
// edits to the global configuration never rewrite an existing snapshot.
type Snapshot struct {
	WorkStartLower    string   `json:"work_start_lower"`
	WorkStartUpper    string   `json:"work_start_upper"`
	DailyWorkingHours float64  `json:"daily_working_hours"`
	LunchStart        string   `json:"lunch_start"`
	LunchEnd          string   `json:"lunch_end"`
	WorkingDays       []string `json:"working_days"`
	Holidays          []string `json:"holidays"`
}

// FromConfig builds the policy from the live global configuration.
func FromConfig(cfg config.Config) (DayPolicy, error) {
	return parse(Snapshot{
		WorkStartLower:    cfg.FlexibleStart.Lower,
		WorkStartUpper:    cfg.FlexibleStart.Upper,
		DailyWorkingHours: cfg.DailyWorkingHours,
		LunchStart:        cfg.Lunch.Start,
		LunchEnd:          cfg.Lunch.End,
		WorkingDays:       cfg.WorkingDays,
		Holidays:          cfg.Holidays,
	})
}

// FromSnapshot rebuilds the policy from a frozen per-day snapshot.
func FromSnapshot(s Snapshot) (DayPolicy, error) {
	return parse(s)
}

func parse(s Snapshot) (DayPolicy, error) {
	lower, err := interval.ParseClock(s.WorkStartLower)
	if err != nil {
		return DayPolicy{}, fmt.Errorf("work start lower: %w", err)
	}
	upper, err := interval.ParseClock(s.WorkStartUpper)
	if err != nil {
		return DayPolicy{}, fmt.Errorf("work start upper: %w", err)
	}
	lunchStart, err := interval.ParseClock(s.LunchStart)
	if err != nil {
		return DayPolicy{}, fmt.Errorf("lunch start: %w", err)
	}
	lunchEnd, err := interval.ParseClock(s.LunchEnd)
	if err != nil {
		return DayPolicy{}, fmt.Errorf("lunch end: %w", err)
	}
	return DayPolicy{
		FlexibleLower: lower,
		FlexibleUpper: upper,
		RequiredHours: s.DailyWorkingHours,
		LunchStart:    lunchStart,
		LunchEnd:      lunchEnd,
		WorkingDays:   s.WorkingDays,
		Holidays:      s.Holidays,
	}, nil
}

// Snapshot returns the persistable form of the policy.
func (p DayPolicy) Snapshot() Snapshot {
	return Snapshot{
		WorkStartLower:    p.FlexibleLower.String(),
		WorkStartUpper:    p.FlexibleUpper.String(),
		DailyWorkingHours: p.RequiredHours,
		LunchStart:        p.LunchStart.String(),
		LunchEnd:          p.LunchEnd.String(),
		WorkingDays:       p.WorkingDays,
		Holidays:          p.Holidays,
	}
}

// DayOffReason says whether, and why, a date is not a working day.
type DayOffReason int

const (
	// Working means the date is a regular working day.
	Working DayOffReason = iota
	// PublicHoliday means the date appears in the holiday list.
	PublicHoliday
	// NonWorkingDay means the weekday is not in the working-day set.
	NonWorkingDay
)

// DayOff classifies the date under this policy. Holidays match by
// exact ISO date string; there is no recurrence.
func (p DayPolicy) DayOff(date time.Time) DayOffReason {
	dateStr := date.Format(task.DateLayout)
	for _, h := range p.Holidays {
		if h == dateStr {
			return PublicHoliday
		}
	}

	name := date.Weekday().String()
	for _, d := range p.WorkingDays {
		if d == name {
			return Working
		}
	}
	return NonWorkingDay
}

// Lunch returns the concrete lunch interval on the given date.
func (p DayPolicy) Lunch(date time.Time) interval.Interval {
	return interval.OnDate(date, p.LunchStart, p.LunchEnd)
}

// LunchDuration returns the length of the lunch break.
func (p DayPolicy) LunchDuration() time.Duration {
	return time.Duration(p.LunchEnd.Seconds()-p.LunchStart.Seconds()) * time.Second
}

// ClampToWindow pins a clock time into the flexible start window.
func (p DayPolicy) ClampToWindow(c interval.Clock) interval.Clock {
	if c.Before(p.FlexibleLower) {
		return p.FlexibleLower
	}
	if c.After(p.FlexibleUpper) {
		return p.FlexibleUpper
	}
	return c
}

// StartOrigin records where an effective start came from. The pinned
// case is a distinct variant rather than a nullable row so that
// override-wins-forever stays explicit at every call site.
type StartOrigin int

const (
	// StartPinned: a stored day override supplied the start.
	StartPinned StartOrigin = iota
	// StartFromTask: derived from the earliest logged task, which fell
	// inside the flexible window.
	StartFromTask
	// StartWindowUpper: no usable signal; the window's upper bound.
	StartWindowUpper
)

// EffectiveStart determines the authoritative start-of-work instant for
// a date. Priority: a pinned override wins unconditionally; otherwise
// the earliest logged task's start, if it lies inside the flexible
// window (inclusive); otherwise the window's upper bound. Pure function
// of its inputs.
func EffectiveStart(date time.Time, p DayPolicy, pinned *interval.Clock, sorted []task.Task) (time.Time, StartOrigin) {
	if pinned != nil {
		return pinned.On(date), StartPinned
	}

	if len(sorted) > 0 {
		if earliest, err := interval.ParseClock(sorted[0].Start); err == nil {
			inWindow := !earliest.Before(p.FlexibleLower) && !earliest.After(p.FlexibleUpper)
			if inWindow {
				return earliest.On(date), StartFromTask
			}
			return p.FlexibleUpper.On(date), StartWindowUpper
		}
	}

	return p.FlexibleUpper.On(date), StartWindowUpper
}

// Span is the concrete workday range for one date: the effective start,
// the end derived from the required duration plus lunch, and the lunch
// interval excluded from work time.
type Span struct {
	Start time.Time
	End   time.Time
	Lunch interval.Interval
}

// ComputeSpan derives the workday span from an effective start. The end
// is start + required duration + lunch duration; no clamping is applied
// when a pathologically late start pushes the end past any sensible
// bound — callers detect that through Degenerate.
func ComputeSpan(date time.Time, start time.Time, p DayPolicy) Span {
	workDur := time.Duration(p.RequiredHours * float64(time.Hour))
	return Span{
		Start: start,
		End:   start.Add(workDur + p.LunchDuration()),
		Lunch: p.Lunch(date),
	}
}

// Bounds returns the span as a clipping interval.
func (s Span) Bounds() interval.Interval {
	return interval.New(s.Start, s.End)
}

// Degenerate reports whether the span carries no workable time. Gap
// computation over a degenerate span yields nothing, and callers must
// present "no computable schedule" rather than "fully covered".
func (s Span) Degenerate() bool {
	return !s.End.After(s.Start)
}
