package report

import (
	"sort"

	"github.com/ayliff/taskday/internal/task"
)

// TravelRow is one line of the monthly travel extract.
type TravelRow struct {
	Date        string // "DD/MM/YYYY (Day)"
	Time        string // "HH:MM" start
	ProjectCode string
	Description string
	Hours       float64
}

// BuildTravel filters a month's tasks down to those carrying at least
// one of the configured travel categories, in chronological order.
func BuildTravel(monthTasks []task.Task, travelCategories []string) []TravelRow {
	var matched []task.Task
	for _, t := range monthTasks {
		if t.HasAnyCategory(travelCategories) {
			matched = append(matched, t)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Date != matched[j].Date {
			return matched[i].Date < matched[j].Date
		}
		return matched[i].Start < matched[j].Start
	})

	rows := make([]TravelRow, 0, len(matched))
	for _, t := range matched {
		row := TravelRow{
			Time:        t.Start,
			ProjectCode: t.ProjectCode,
			Description: t.PlainDescription(),
			Hours:       t.Hours(),
		}
		if len(row.Time) >= 5 {
			row.Time = row.Time[:5]
		}
		if day, err := t.Day(); err == nil {
			row.Date = day.Format("02/01/2006 (Mon)")
		} else {
			row.Date = t.Date
		}
		rows = append(rows, row)
	}
	return rows
}
