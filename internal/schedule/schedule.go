// Package schedule computes the instants at which the application asks
// the user to log a task, plus the timesheet submission reminders.
// Everything here is a pure function over a resolved workday span and
// the day's tasks; the timers that actually fire live in the caller.
package schedule

import (
	"sort"
	"time"

	"github.com/ayliff/taskday/internal/config"
	"github.com/ayliff/taskday/internal/interval"
	"github.com/ayliff/taskday/internal/policy"
	"github.com/ayliff/taskday/internal/task"
	"github.com/ayliff/taskday/internal/timeline"
	"github.com/ayliff/taskday/internal/timeutil"
)

// coveredTolerance: a prompt whose slot has less than this much
// unrecorded time left is pointless and is skipped.
const coveredTolerance = time.Second

// Prompt is one scheduled "log a task" notification. Covers is the
// stretch of the day the prompt asks about: everything since the
// previous prompt (or the span start).
type Prompt struct {
	At     time.Time
	Covers interval.Interval
}

// Prompts lists the day's prompt instants for a span, one every
// interval starting at span.Start + every. Ticks strictly inside lunch
// are dropped; the lunch start and the workday end are always prompt
// instants so no stretch of the day goes unasked.
func Prompts(span policy.Span, every time.Duration) []Prompt {
	if span.Degenerate() || every <= 0 {
		return nil
	}

	var ticks []time.Time
	for t := span.Start.Add(every); t.Before(span.End); t = t.Add(every) {
		if t.After(span.Lunch.Start) && t.Before(span.Lunch.End) {
			continue
		}
		ticks = append(ticks, t)
	}
	if span.Lunch.Valid() && span.Lunch.Start.After(span.Start) && span.Lunch.Start.Before(span.End) {
		ticks = append(ticks, span.Lunch.Start)
	}
	ticks = append(ticks, span.End)

	sort.Slice(ticks, func(i, j int) bool { return ticks[i].Before(ticks[j]) })

	var prompts []Prompt
	prev := span.Start
	for _, t := range ticks {
		if !t.After(prev) {
			continue
		}
		prompts = append(prompts, Prompt{At: t, Covers: interval.New(prev, t)})
		prev = t
	}
	return prompts
}

// DuePrompts filters out prompts whose covered stretch is already fully
// logged.
func DuePrompts(span policy.Span, tasks []task.Task, every time.Duration) []Prompt {
	var due []Prompt
	for _, p := range Prompts(span, every) {
		if timeline.Covered(span, tasks, p.Covers, coveredTolerance) {
			continue
		}
		due = append(due, p)
	}
	return due
}

// NextPrompt returns the first prompt strictly after now.
func NextPrompt(now time.Time, prompts []Prompt) (Prompt, bool) {
	for _, p := range prompts {
		if p.At.After(now) {
			return p, true
		}
	}
	return Prompt{}, false
}

// IsWorkingTime reports whether now falls inside the span and outside
// lunch.
func IsWorkingTime(now time.Time, span policy.Span) bool {
	if span.Degenerate() {
		return false
	}
	if now.Before(span.Start) || !now.Before(span.End) {
		return false
	}
	if span.Lunch.Valid() && !now.Before(span.Lunch.Start) && now.Before(span.Lunch.End) {
		return false
	}
	return true
}

// PreviousWorkingDay walks back from the day before date to the nearest
// working day under the policy. The second return is false when a full
// year passes without finding one.
func PreviousWorkingDay(date time.Time, p policy.DayPolicy) (time.Time, bool) {
	d := timeutil.DateOnly(date)
	for i := 0; i < 366; i++ {
		d = d.AddDate(0, 0, -1)
		if p.DayOff(d) == policy.Working {
			return d, true
		}
	}
	return time.Time{}, false
}

// WeeklyReminderDue reports whether the weekly timesheet reminder fires
// on the given date.
func WeeklyReminderDue(date time.Time, r config.Reminders) bool {
	return r.WeeklyTimesheetEnabled && timeutil.WeekdayName(date) == r.WeeklyTimesheetDay
}

// monthlyDue resolves the configured day-of-month to a concrete date,
// walking back to the previous working day when it lands on a day off,
// and reports whether date is that day.
func monthlyDue(date time.Time, dayOfMonth int, p policy.DayPolicy) bool {
	if dayOfMonth < 1 {
		return false
	}
	first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	last := first.AddDate(0, 1, -1).Day()
	if dayOfMonth > last {
		dayOfMonth = last
	}

	due := time.Date(date.Year(), date.Month(), dayOfMonth, 0, 0, 0, 0, date.Location())
	for due.Day() > 1 && p.DayOff(due) != policy.Working {
		due = due.AddDate(0, 0, -1)
	}
	return timeutil.DateOnly(date).Equal(due)
}

// MonthlyClaimsReminderDue reports whether the monthly claims reminder
// fires on the given date.
func MonthlyClaimsReminderDue(date time.Time, r config.Reminders, p policy.DayPolicy) bool {
	return r.MonthlyClaimsEnabled && monthlyDue(date, r.MonthlyClaimsDay, p)
}

// MonthlyTimesheetReminderDue reports whether the monthly timesheet
// reminder fires on the given date.
func MonthlyTimesheetReminderDue(date time.Time, r config.Reminders, p policy.DayPolicy) bool {
	return r.MonthlyTimesheetEnabled && monthlyDue(date, r.MonthlyTimesheetDay, p)
}

// ReminderWindow returns the stretch of the workday during which
// submission reminders are shown: offset in from both span edges.
func ReminderWindow(span policy.Span, r config.Reminders) interval.Interval {
	start := span.Start.Add(time.Duration(r.OffsetHoursStart * float64(time.Hour)))
	end := span.End.Add(-time.Duration(r.OffsetHoursEnd * float64(time.Hour)))
	return interval.New(start, end)
}
