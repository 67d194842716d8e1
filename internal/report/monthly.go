package report

import (
	"sort"
	"time"

	"github.com/ayliff/taskday/internal/progress"
	"github.com/ayliff/taskday/internal/storage"
	"github.com/ayliff/taskday/internal/task"
	"github.com/ayliff/taskday/internal/timeutil"
)

// MonthlyRow is one task group's line in the monthly design-record
// report: its weekly hour buckets and the apportioned progress cells.
type MonthlyRow struct {
	ProjectCode string
	Description string // plain text, markup stripped
	Key         task.GroupKey
	WeeklyHours []float64
	// NeedsInput is set when no stored progress record exists (or the
	// stored value does not parse); the caller must collect a final
	// progress value before cells can be shown.
	NeedsInput bool
	Cells      []progress.WeekValue
}

// MonthlyReport is the month's design-record summary: one row per
// unique (project, description) group in the configured categories.
type MonthlyReport struct {
	Month    time.Time
	NumWeeks int
	Rows     []MonthlyRow
}

// BuildMonthly assembles the design-record report for the month
// containing month. monthTasks is every task logged in that month;
// categories selects which task groups belong on the report; records
// are the stored progress figures for the month.
func BuildMonthly(month time.Time, monthTasks []task.Task, categories []string, records []storage.ProgressRecord) MonthlyReport {
	mw := timeutil.MonthWeekMap(month)
	rep := MonthlyReport{
		Month:    time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location()),
		NumWeeks: mw.NumWeeks,
	}

	// Group matching tasks and bucket their hours by week row. The
	// group key uses the stored (rich-text) description so it matches
	// the progress-record key exactly.
	hoursByGroup := make(map[task.GroupKey][]float64)
	for _, t := range monthTasks {
		if !t.HasAnyCategory(categories) {
			continue
		}
		day, err := t.Day()
		if err != nil {
			continue
		}
		week, ok := mw.WeekOf(day.Day())
		if !ok {
			continue
		}
		key := t.Key()
		if hoursByGroup[key] == nil {
			hoursByGroup[key] = make([]float64, mw.NumWeeks)
		}
		hoursByGroup[key][week] += t.Hours()
	}

	byKey := make(map[task.GroupKey]storage.ProgressRecord, len(records))
	for _, r := range records {
		byKey[task.GroupKey{ProjectCode: r.ProjectCode, Description: r.Description}] = r
	}

	keys := make([]task.GroupKey, 0, len(hoursByGroup))
	for key := range hoursByGroup {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].ProjectCode != keys[j].ProjectCode {
			return keys[i].ProjectCode < keys[j].ProjectCode
		}
		return keys[i].Description < keys[j].Description
	})

	for _, key := range keys {
		row := MonthlyRow{
			ProjectCode: key.ProjectCode,
			Description: task.Task{Description: key.Description}.PlainDescription(),
			Key:         key,
			WeeklyHours: hoursByGroup[key],
		}

		rec, found := byKey[key]
		if !found {
			row.NeedsInput = true
		} else if final, err := progress.ParseFinal(rec.FinalProgress); err != nil {
			row.NeedsInput = true
		} else {
			row.Cells = progress.Apportion(rec.StartProgress, final, row.WeeklyHours)
		}

		rep.Rows = append(rep.Rows, row)
	}
	return rep
}
