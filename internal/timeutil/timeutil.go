// Package timeutil provides the calendar arithmetic shared by the
// engine and the report builders: date parsing, timesheet week
// boundaries, and the month week grid used by the monthly progress
// report.
package timeutil

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar-date layout.
const DateLayout = "2006-01-02"

// MonthLayout is the year-month layout used to key monthly records.
const MonthLayout = "2006-01"

// ParseDate parses an ISO "YYYY-MM-DD" date in the local timezone.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// ParseMonth parses a "YYYY-MM" month in the local timezone, returning
// the first day of that month.
func ParseMonth(s string) (time.Time, error) {
	d, err := time.ParseInLocation(MonthLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return d, nil
}

// DateOnly truncates an instant to midnight of its calendar day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Today returns midnight of the current local day.
func Today() time.Time {
	return DateOnly(time.Now())
}

// WeekdayName returns the full English weekday name, matching the
// working-day names stored in configuration.
func WeekdayName(t time.Time) string {
	return t.Weekday().String()
}

// AddMonths moves to the first day of the month the given number of
// months away. Negative counts move backwards.
func AddMonths(t time.Time, months int) time.Time {
	month := int(t.Month()) - 1 + months
	year := t.Year() + month/12
	month = month % 12
	if month < 0 {
		month += 12
		year--
	}
	return time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, t.Location())
}

// TimesheetWeek returns the Saturday-to-Friday week containing the
// given date. The timesheet week deliberately starts on Saturday so a
// weekend worked ahead of a deadline lands on the same sheet as the
// week it precedes.
func TimesheetWeek(t time.Time) (start, end time.Time) {
	// Monday=0 ... Sunday=6, so Saturday is 5.
	weekday := (int(t.Weekday()) + 6) % 7
	daysToSaturday := (weekday + 2) % 7
	start = DateOnly(t).AddDate(0, 0, -daysToSaturday)
	end = start.AddDate(0, 0, 6)
	return start, end
}

// WeekDates lists the seven dates of the timesheet week containing t.
func WeekDates(t time.Time) []time.Time {
	start, _ := TimesheetWeek(t)
	dates := make([]time.Time, 7)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}
	return dates
}

// MonthWeeks describes the Monday-first week grid of a month: how many
// week rows the month spans, and which row each day-of-month falls in.
type MonthWeeks struct {
	NumWeeks  int
	dayToWeek map[int]int
}

// MonthWeekMap builds the week grid for the month containing t.
func MonthWeekMap(t time.Time) MonthWeeks {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	daysInMonth := first.AddDate(0, 1, -1).Day()

	// Offset of day 1 within its Monday-first week row.
	firstWeekday := (int(first.Weekday()) + 6) % 7

	mw := MonthWeeks{
		NumWeeks:  (daysInMonth + firstWeekday + 6) / 7,
		dayToWeek: make(map[int]int, daysInMonth),
	}
	for day := 1; day <= daysInMonth; day++ {
		mw.dayToWeek[day] = (day - 1 + firstWeekday) / 7
	}
	return mw
}

// WeekOf returns the zero-based week row for a day of the month, and
// whether the day exists in the month.
func (mw MonthWeeks) WeekOf(day int) (int, bool) {
	week, ok := mw.dayToWeek[day]
	return week, ok
}

// MonthDates lists every date of the month containing t in order.
func MonthDates(t time.Time) []time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)

	var dates []time.Time
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
