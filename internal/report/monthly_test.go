package report

import (
	"math"
	"testing"
	"time"

	"github.com/ayliff/taskday/internal/storage"
	"github.com/ayliff/taskday/internal/task"
)

var march = time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local)

func designTask(date, start, end, desc string) task.Task {
	return task.Task{
		Date: date, Start: start, End: end,
		ProjectCode: "P100", Description: desc,
		Categories: []string{"Design"},
	}
}

func TestBuildMonthlyGroupsAndBuckets(t *testing.T) {
	// March 2025 spans six Monday-first week rows; the 3rd opens row 1
	// and the 10th opens row 2.
	tasks := []task.Task{
		designTask("2025-03-03", "09:00:00", "11:00:00", "Drafting"),
		designTask("2025-03-10", "09:00:00", "12:00:00", "Drafting"),
		designTask("2025-03-10", "13:00:00", "14:00:00", "Review"),
		{Date: "2025-03-10", Start: "14:00:00", End: "15:00:00", ProjectCode: "P100",
			Description: "Standup", Categories: []string{"Meeting"}},
	}

	rep := BuildMonthly(march, tasks, []string{"Design"}, nil)

	if rep.NumWeeks != 6 {
		t.Errorf("NumWeeks = %d, want 6", rep.NumWeeks)
	}
	if len(rep.Rows) != 2 {
		t.Fatalf("got %d rows, want 2 (Meeting category excluded)", len(rep.Rows))
	}

	// Sorted by project then description.
	if rep.Rows[0].Description != "Drafting" || rep.Rows[1].Description != "Review" {
		t.Errorf("row order: %q, %q", rep.Rows[0].Description, rep.Rows[1].Description)
	}

	drafting := rep.Rows[0]
	if drafting.WeeklyHours[1] != 2.0 || drafting.WeeklyHours[2] != 3.0 {
		t.Errorf("drafting weekly hours = %v", drafting.WeeklyHours)
	}
	if !drafting.NeedsInput {
		t.Error("group without a stored record should need input")
	}
}

func TestBuildMonthlyApportionsStoredProgress(t *testing.T) {
	tasks := []task.Task{
		designTask("2025-03-03", "09:00:00", "11:00:00", "Drafting"), // week 1
		designTask("2025-03-10", "09:00:00", "11:00:00", "Drafting"), // week 2
	}
	records := []storage.ProgressRecord{
		{Month: "2025-03", ProjectCode: "P100", Description: "Drafting", StartProgress: 20, FinalProgress: "80"},
	}

	rep := BuildMonthly(march, tasks, []string{"Design"}, records)
	row := rep.Rows[0]

	if row.NeedsInput {
		t.Fatal("row with a stored record should not need input")
	}
	if len(row.Cells) != 6 {
		t.Fatalf("got %d cells, want 6", len(row.Cells))
	}
	// Equal effort in weeks 1 and 2 splits the gain evenly: 50, 80.
	if !row.Cells[1].Shown || math.Abs(row.Cells[1].Percent-50) > 1e-9 {
		t.Errorf("week 1 = %+v, want 50", row.Cells[1])
	}
	if !row.Cells[2].Shown || math.Abs(row.Cells[2].Percent-80) > 1e-9 {
		t.Errorf("week 2 = %+v, want 80", row.Cells[2])
	}
	if row.Cells[0].Shown || row.Cells[3].Shown {
		t.Error("idle weeks should show nothing")
	}
}

func TestBuildMonthlyRecurringGroup(t *testing.T) {
	tasks := []task.Task{
		designTask("2025-03-03", "09:00:00", "10:00:00", "Coordination"),
	}
	records := []storage.ProgressRecord{
		{Month: "2025-03", ProjectCode: "P100", Description: "Coordination", FinalProgress: "-"},
	}

	rep := BuildMonthly(march, tasks, []string{"Design"}, records)
	row := rep.Rows[0]
	if !row.Cells[1].Shown || !row.Cells[1].Recurring {
		t.Errorf("active week cell = %+v, want recurring marker", row.Cells[1])
	}
}

func TestBuildMonthlyUnparseableProgressNeedsInput(t *testing.T) {
	tasks := []task.Task{
		designTask("2025-03-03", "09:00:00", "10:00:00", "Drafting"),
	}
	records := []storage.ProgressRecord{
		{Month: "2025-03", ProjectCode: "P100", Description: "Drafting", FinalProgress: "lots"},
	}

	rep := BuildMonthly(march, tasks, []string{"Design"}, records)
	if !rep.Rows[0].NeedsInput {
		t.Error("unparseable stored value should demand fresh input")
	}
}

func TestBuildMonthlyKeyUsesStoredDescription(t *testing.T) {
	// The group key keeps the rich-text description so it matches the
	// stored record; only the display text is stripped.
	tasks := []task.Task{
		designTask("2025-03-03", "09:00:00", "10:00:00", "<b>Drafting</b>"),
	}
	records := []storage.ProgressRecord{
		{Month: "2025-03", ProjectCode: "P100", Description: "<b>Drafting</b>", StartProgress: 0, FinalProgress: "40"},
	}

	rep := BuildMonthly(march, tasks, []string{"Design"}, records)
	row := rep.Rows[0]
	if row.NeedsInput {
		t.Error("record keyed by rich-text description should match")
	}
	if row.Description != "Drafting" {
		t.Errorf("display description = %q", row.Description)
	}
	if row.Key.Description != "<b>Drafting</b>" {
		t.Errorf("group key description = %q", row.Key.Description)
	}
}
