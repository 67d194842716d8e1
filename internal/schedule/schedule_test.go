package schedule

import (
	"testing"
	"time"

	"github.com/ayliff/taskday/internal/config"
	"github.com/ayliff/taskday/internal/interval"
	"github.com/ayliff/taskday/internal/policy"
	"github.com/ayliff/taskday/internal/task"
)

var tuesday = time.Date(2025, time.March, 4, 0, 0, 0, 0, time.Local)

func at(clock string) time.Time {
	return interval.MustClock(clock).On(tuesday)
}

func setup(t *testing.T) (policy.DayPolicy, policy.Span) {
	t.Helper()
	p, err := policy.FromConfig(config.DefaultConfig())
	if err != nil {
		t.Fatalf("FromConfig error: %v", err)
	}
	return p, policy.ComputeSpan(tuesday, at("09:00:00"), p)
}

func TestPromptsHourly(t *testing.T) {
	// 09:00 start, hourly prompts, lunch 13:00-14:00, end 18:00.
	// The 13:00 tick doubles as the lunch-start prompt; ticks strictly
	// inside lunch would be dropped (none land there at this cadence).
	_, span := setup(t)
	prompts := Prompts(span, time.Hour)

	want := []string{
		"10:00:00", "11:00:00", "12:00:00", "13:00:00",
		"14:00:00", "15:00:00", "16:00:00", "17:00:00", "18:00:00",
	}
	if len(prompts) != len(want) {
		t.Fatalf("got %d prompts, want %d: %v", len(prompts), len(want), prompts)
	}
	for i, w := range want {
		if !prompts[i].At.Equal(at(w)) {
			t.Errorf("prompt %d at %v, want %s", i, prompts[i].At, w)
		}
	}

	// Each prompt covers the stretch since the previous one.
	if !prompts[0].Covers.Start.Equal(span.Start) {
		t.Errorf("first prompt covers from %v, want span start", prompts[0].Covers.Start)
	}
	if !prompts[4].Covers.Start.Equal(at("13:00:00")) || !prompts[4].Covers.End.Equal(at("14:00:00")) {
		t.Errorf("post-lunch prompt covers %v", prompts[4].Covers)
	}
}

func TestPromptsSkipLunchInterior(t *testing.T) {
	// 40-minute cadence from 09:00 puts a tick at 13:40, inside lunch:
	// it is dropped, while 13:00 (lunch start) is inserted.
	_, span := setup(t)
	prompts := Prompts(span, 40*time.Minute)

	for _, p := range prompts {
		if p.At.After(at("13:00:00")) && p.At.Before(at("14:00:00")) {
			t.Errorf("prompt inside lunch at %v", p.At)
		}
	}

	var hasLunchStart, hasEnd bool
	for _, p := range prompts {
		if p.At.Equal(at("13:00:00")) {
			hasLunchStart = true
		}
		if p.At.Equal(span.End) {
			hasEnd = true
		}
	}
	if !hasLunchStart {
		t.Error("lunch start should be a prompt instant")
	}
	if !hasEnd {
		t.Error("workday end should be a prompt instant")
	}
}

func TestPromptsDegenerateSpan(t *testing.T) {
	_, span := setup(t)
	span.End = span.Start
	if got := Prompts(span, time.Hour); got != nil {
		t.Errorf("degenerate span produced prompts %v", got)
	}
}

func TestDuePromptsSkipsCoveredSlots(t *testing.T) {
	_, span := setup(t)
	tasks := []task.Task{
		{Date: "2025-03-04", Start: "09:00:00", End: "11:00:00"},
	}

	due := DuePrompts(span, tasks, time.Hour)
	for _, p := range due {
		if !p.At.After(at("11:00:00")) {
			t.Errorf("prompt at %v covers already-logged time", p.At)
		}
	}
	if len(due) == 0 {
		t.Error("uncovered afternoon should still prompt")
	}
}

func TestNextPrompt(t *testing.T) {
	_, span := setup(t)
	prompts := Prompts(span, time.Hour)

	next, ok := NextPrompt(at("10:30:00"), prompts)
	if !ok || !next.At.Equal(at("11:00:00")) {
		t.Errorf("NextPrompt = %v %v, want 11:00", next.At, ok)
	}

	if _, ok := NextPrompt(at("19:00:00"), prompts); ok {
		t.Error("no prompt should remain after the day ends")
	}
}

func TestIsWorkingTime(t *testing.T) {
	_, span := setup(t)

	tests := []struct {
		clock string
		want  bool
	}{
		{"08:30:00", false},
		{"09:00:00", true},
		{"12:59:59", true},
		{"13:30:00", false}, // lunch
		{"14:00:00", true},
		{"18:00:00", false}, // span end is exclusive
	}
	for _, tt := range tests {
		if got := IsWorkingTime(at(tt.clock), span); got != tt.want {
			t.Errorf("IsWorkingTime(%s) = %v, want %v", tt.clock, got, tt.want)
		}
	}
}

func TestPreviousWorkingDay(t *testing.T) {
	p, _ := setup(t)

	// Monday 2025-03-03 walks back over the weekend to Friday.
	monday := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.Local)
	got, ok := PreviousWorkingDay(monday, p)
	if !ok || got.Day() != 28 || got.Month() != time.February {
		t.Errorf("PreviousWorkingDay(Monday) = %v %v, want Fri 2025-02-28", got, ok)
	}

	// A holiday in between is skipped too.
	p.Holidays = []string{"2025-02-28"}
	got, ok = PreviousWorkingDay(monday, p)
	if !ok || got.Day() != 27 {
		t.Errorf("PreviousWorkingDay over holiday = %v %v, want Thu 2025-02-27", got, ok)
	}
}

func TestWeeklyReminderDue(t *testing.T) {
	r := config.Reminders{WeeklyTimesheetEnabled: true, WeeklyTimesheetDay: "Tuesday"}
	if !WeeklyReminderDue(tuesday, r) {
		t.Error("reminder should fire on the configured weekday")
	}
	if WeeklyReminderDue(tuesday.AddDate(0, 0, 1), r) {
		t.Error("reminder should not fire on other days")
	}
	r.WeeklyTimesheetEnabled = false
	if WeeklyReminderDue(tuesday, r) {
		t.Error("disabled reminder should never fire")
	}
}

func TestMonthlyReminderWalksBackToWorkingDay(t *testing.T) {
	p, _ := setup(t)
	r := config.Reminders{MonthlyClaimsEnabled: true, MonthlyClaimsDay: 2}

	// 2025-03-02 is a Sunday; the reminder moves back. 2025-03-01 is a
	// Saturday, so it lands on... nothing earlier exists in the month,
	// and the walk stops at day 1.
	sunday := time.Date(2025, time.March, 2, 0, 0, 0, 0, time.Local)
	if MonthlyClaimsReminderDue(sunday, r, p) {
		t.Error("reminder should not fire on the Sunday itself")
	}
	saturday := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local)
	if !MonthlyClaimsReminderDue(saturday, r, p) {
		t.Error("walk-back should stop at the first of the month")
	}

	// In a month where the configured day is a working day, it fires
	// there directly.
	r.MonthlyClaimsDay = 15
	friday := time.Date(2025, time.August, 15, 0, 0, 0, 0, time.Local)
	if !MonthlyClaimsReminderDue(friday, r, p) {
		t.Error("reminder should fire on a working configured day")
	}
}

func TestMonthlyReminderDayBeyondMonthEnd(t *testing.T) {
	p, _ := setup(t)
	r := config.Reminders{MonthlyTimesheetEnabled: true, MonthlyTimesheetDay: 31}

	// February 2025 has 28 days; day 31 clamps to the 28th (a Friday).
	feb28 := time.Date(2025, time.February, 28, 0, 0, 0, 0, time.Local)
	if !MonthlyTimesheetReminderDue(feb28, r, p) {
		t.Error("day-of-month should clamp to the month end")
	}
}

func TestReminderWindow(t *testing.T) {
	_, span := setup(t)
	r := config.Reminders{OffsetHoursStart: 1, OffsetHoursEnd: 1.5}

	w := ReminderWindow(span, r)
	if !w.Start.Equal(at("10:00:00")) {
		t.Errorf("window start = %v, want 10:00", w.Start)
	}
	if !w.End.Equal(at("16:30:00")) {
		t.Errorf("window end = %v, want 16:30", w.End)
	}
}
