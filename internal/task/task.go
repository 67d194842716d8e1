// Package task defines the logged-task record shared by the storage
// layer and the engine. A Task is an immutable snapshot: the engine
// never mutates one, and same-day tasks are kept pairwise
// non-overlapping by the insertion reconciler.
package task

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"github.com/ayliff/taskday/internal/interval"
)

// DateLayout is the ISO calendar-date layout used everywhere a date is
// persisted or matched (holidays included).
const DateLayout = "2006-01-02"

// Task is a single logged work interval for one calendar day.
// Start and End are wall-clock "HH:MM:SS" strings; sub-second precision
// is never used, and callers round to the minute before reconciling.
type Task struct {
	ID          int64    `json:"id"`
	Date        string   `json:"date"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	ProjectCode string   `json:"project_code"`
	Description string   `json:"description"`
	Categories  []string `json:"categories,omitempty"`
	Software    []string `json:"software,omitempty"`
}

// Day parses the task's calendar date.
func (t Task) Day() (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, t.Date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("task %d: invalid date %q: %w", t.ID, t.Date, err)
	}
	return d, nil
}

// Interval returns the task's concrete [start, end) instant range.
func (t Task) Interval() (interval.Interval, error) {
	day, err := t.Day()
	if err != nil {
		return interval.Interval{}, err
	}
	start, err := interval.ParseClock(t.Start)
	if err != nil {
		return interval.Interval{}, fmt.Errorf("task %d: %w", t.ID, err)
	}
	end, err := interval.ParseClock(t.End)
	if err != nil {
		return interval.Interval{}, fmt.Errorf("task %d: %w", t.ID, err)
	}
	return interval.OnDate(day, start, end), nil
}

// Hours returns the task duration in fractional hours, or 0 when the
// stored times do not parse.
func (t Task) Hours() float64 {
	iv, err := t.Interval()
	if err != nil {
		return 0
	}
	return iv.Hours()
}

// HasAnyCategory reports whether the task carries at least one of the
// given categories.
func (t Task) HasAnyCategory(categories []string) bool {
	for _, want := range categories {
		for _, have := range t.Categories {
			if strings.TrimSpace(have) == want {
				return true
			}
		}
	}
	return false
}

// PlainDescription strips simple rich-text markup from the description
// for plain-text surfaces (tables, clipboard). Tags are dropped,
// entities are unescaped.
func (t Task) PlainDescription() string {
	var b strings.Builder
	inTag := false
	for _, r := range t.Description {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(html.UnescapeString(b.String()))
}

// SortByStart orders tasks chronologically by start time, in place.
// Stored times are zero-padded, so the lexicographic order matches the
// chronological one.
func SortByStart(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Start < tasks[j].Start
	})
}

// GroupKey identifies a task group for the monthly progress report:
// tasks sharing a project code and description are one design-record
// line.
type GroupKey struct {
	ProjectCode string
	Description string
}

// Key returns the task's progress-report group key.
func (t Task) Key() GroupKey {
	return GroupKey{ProjectCode: t.ProjectCode, Description: t.Description}
}
