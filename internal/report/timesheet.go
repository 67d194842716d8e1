// Package report builds the weekly timesheet, the monthly travel
// extract, and the monthly design-record report from already-fetched
// tasks. Everything here is a pure transformation; storage access and
// rendering belong to the callers.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/ayliff/taskday/internal/config"
	"github.com/ayliff/taskday/internal/task"
	"github.com/ayliff/taskday/internal/timeutil"
)

// renderThreshold hides cells whose hours are only float dust.
const renderThreshold = 0.005

// TimesheetRow is one project line of the weekly timesheet, with hours
// per day across the Saturday-started week.
type TimesheetRow struct {
	ProjectCode string
	DisplayName string
	Hours       [7]float64
}

// Timesheet is the weekly per-project hour summary.
type Timesheet struct {
	WeekStart time.Time
	WeekEnd   time.Time
	Dates     [7]time.Time
	Rows      []TimesheetRow
	Totals    [7]float64
	// Holiday marks days treated as public holidays, including the
	// replacement working day for a Sunday holiday.
	Holiday [7]bool
	// Shortfall marks weekdays whose total falls below the required
	// hours (holidays exempt).
	Shortfall [7]bool
}

// BuildTimesheet assembles the timesheet for the week containing date.
// weekTasks is every task logged on the week's dates; requiredHours
// maps a date string to its pinned daily hours, with the configured
// default applying where no entry exists.
func BuildTimesheet(date time.Time, weekTasks []task.Task, requiredHours map[string]float64, cfg config.Config) Timesheet {
	var ts Timesheet
	ts.WeekStart, ts.WeekEnd = timeutil.TimesheetWeek(date)
	for i, d := range timeutil.WeekDates(date) {
		ts.Dates[i] = d
	}

	workingWeekdays := make(map[time.Weekday]bool, len(cfg.WorkingDays))
	for _, name := range cfg.WorkingDays {
		for wd := time.Sunday; wd <= time.Saturday; wd++ {
			if wd.String() == name {
				workingWeekdays[wd] = true
			}
		}
	}

	holidays := holidaysForWeek(ts.Dates, cfg.Holidays, workingWeekdays)
	for i, d := range ts.Dates {
		ts.Holiday[i] = holidays[d.Format(task.DateLayout)]
	}

	required := func(d time.Time) float64 {
		if h, ok := requiredHours[d.Format(task.DateLayout)]; ok {
			return h
		}
		return cfg.DailyWorkingHours
	}

	dayIndex := make(map[string]int, 7)
	for i, d := range ts.Dates {
		dayIndex[d.Format(task.DateLayout)] = i
	}

	projectHours := make(map[string]*[7]float64)
	for _, t := range weekTasks {
		i, ok := dayIndex[t.Date]
		if !ok {
			continue
		}
		hours, found := projectHours[t.ProjectCode]
		if !found {
			hours = &[7]float64{}
			projectHours[t.ProjectCode] = hours
		}
		hours[i] += t.Hours()
	}

	// Backfill the holiday project code with the day's required hours
	// on weekday holidays.
	var holidayCode string
	for _, rc := range cfg.TimesheetRows {
		if rc.IsHolidayCode {
			holidayCode = rc.ProjectCode
			break
		}
	}
	if holidayCode != "" {
		hours, found := projectHours[holidayCode]
		if !found {
			hours = &[7]float64{}
			projectHours[holidayCode] = hours
		}
		for i, d := range ts.Dates {
			if ts.Holiday[i] && !isWeekend(d) {
				hours[i] = required(d)
			}
		}
	}

	ts.Rows = orderRows(projectHours, cfg.TimesheetRows)

	for i, d := range ts.Dates {
		for _, row := range ts.Rows {
			ts.Totals[i] += row.Hours[i]
		}
		if !isWeekend(d) && !ts.Holiday[i] && ts.Totals[i] < required(d)-renderThreshold {
			ts.Shortfall[i] = true
		}
	}

	return ts
}

// holidaysForWeek resolves the configured holiday dates falling in the
// week, adding the replacement day for any Sunday holiday: the next
// configured working day, walked forward day by day.
func holidaysForWeek(dates [7]time.Time, configured []string, workingWeekdays map[time.Weekday]bool) map[string]bool {
	set := make(map[string]bool, len(configured))
	for _, h := range configured {
		set[h] = true
	}

	out := make(map[string]bool)
	for _, d := range dates {
		key := d.Format(task.DateLayout)
		if !set[key] {
			continue
		}
		out[key] = true
		if d.Weekday() == time.Sunday {
			replacement := d.AddDate(0, 0, 1)
			for i := 0; i < 7 && !workingWeekdays[replacement.Weekday()]; i++ {
				replacement = replacement.AddDate(0, 0, 1)
			}
			out[replacement.Format(task.DateLayout)] = true
		}
	}
	return out
}

func isWeekend(d time.Time) bool {
	return d.Weekday() == time.Saturday || d.Weekday() == time.Sunday
}

// orderRows arranges the timesheet rows: configured prefix rows first
// (always shown, even empty), then remaining projects alphabetically,
// then configured suffix rows that actually have hours.
func orderRows(projectHours map[string]*[7]float64, rowConfigs []config.TimesheetRow) []TimesheetRow {
	displayNames := make(map[string]string)
	var prefixCodes, suffixCodes []string
	pinned := make(map[string]bool)

	for _, rc := range rowConfigs {
		if rc.ProjectCode == "" {
			continue
		}
		displayNames[rc.ProjectCode] = rc.DisplayName
		switch {
		case rc.IsPrefix:
			prefixCodes = append(prefixCodes, rc.ProjectCode)
			pinned[rc.ProjectCode] = true
		case rc.IsSuffix:
			suffixCodes = append(suffixCodes, rc.ProjectCode)
			pinned[rc.ProjectCode] = true
		}
	}

	var otherCodes []string
	for code := range projectHours {
		if !pinned[code] {
			otherCodes = append(otherCodes, code)
		}
	}
	sort.Strings(otherCodes)

	hasHours := func(code string) bool {
		_, ok := projectHours[code]
		return ok
	}

	var order []string
	order = append(order, prefixCodes...)
	order = append(order, otherCodes...)
	for _, code := range suffixCodes {
		if hasHours(code) {
			order = append(order, code)
		}
	}

	rows := make([]TimesheetRow, 0, len(order))
	for _, code := range order {
		row := TimesheetRow{ProjectCode: code, DisplayName: code}
		if name := displayNames[code]; name != "" {
			row.DisplayName = name
		}
		if hours, ok := projectHours[code]; ok {
			row.Hours = *hours
		}
		rows = append(rows, row)
	}
	return rows
}

// FormatHours renders an hour cell: two decimals, or empty below the
// display threshold.
func FormatHours(h float64) string {
	if h <= renderThreshold {
		return ""
	}
	return fmt.Sprintf("%.2f", h)
}
