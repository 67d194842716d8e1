package timeline

import (
	"testing"
	"time"

	"github.com/ayliff/taskday/internal/config"
	"github.com/ayliff/taskday/internal/interval"
	"github.com/ayliff/taskday/internal/policy"
	"github.com/ayliff/taskday/internal/task"
)

var day = time.Date(2025, time.March, 4, 0, 0, 0, 0, time.Local)

func at(clock string) time.Time {
	return interval.MustClock(clock).On(day)
}

func span(t *testing.T, start string) policy.Span {
	t.Helper()
	p, err := policy.FromConfig(config.DefaultConfig())
	if err != nil {
		t.Fatalf("FromConfig error: %v", err)
	}
	return policy.ComputeSpan(day, at(start), p)
}

func tsk(start, end string) task.Task {
	return task.Task{Date: "2025-03-04", Start: start, End: end, ProjectCode: "P100"}
}

func wantGaps(t *testing.T, got []interval.Interval, want [][2]string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d gaps %v, want %d", len(got), got, len(want))
	}
	for i, w := range want {
		if !got[i].Start.Equal(at(w[0])) || !got[i].End.Equal(at(w[1])) {
			t.Errorf("gap %d = %v, want %s - %s", i, got[i], w[0], w[1])
		}
	}
}

func TestGapsEmptyDay(t *testing.T) {
	// A 09:30 start with nothing logged leaves a morning and an
	// afternoon gap separated by lunch.
	gaps := Gaps(span(t, "09:30:00"), nil)
	wantGaps(t, gaps, [][2]string{
		{"09:30:00", "13:00:00"},
		{"14:00:00", "18:30:00"},
	})
}

func TestGapsAroundTasks(t *testing.T) {
	tasks := []task.Task{
		tsk("09:30:00", "11:00:00"),
		tsk("15:00:00", "16:30:00"),
	}
	gaps := Gaps(span(t, "09:30:00"), tasks)
	wantGaps(t, gaps, [][2]string{
		{"11:00:00", "13:00:00"},
		{"14:00:00", "15:00:00"},
		{"16:30:00", "18:30:00"},
	})
}

func TestGapsTaskStraddlesLunch(t *testing.T) {
	// A task logged across lunch consumes both sides; the remaining
	// gaps never overlap lunch anyway.
	tasks := []task.Task{tsk("12:00:00", "15:00:00")}
	gaps := Gaps(span(t, "09:30:00"), tasks)
	wantGaps(t, gaps, [][2]string{
		{"09:30:00", "12:00:00"},
		{"15:00:00", "18:30:00"},
	})
}

func TestGapsTaskOutsideSpanIgnored(t *testing.T) {
	// An early task entirely before the span start changes nothing.
	tasks := []task.Task{
		tsk("07:00:00", "08:00:00"),
		tsk("10:00:00", "11:00:00"),
	}
	gaps := Gaps(span(t, "09:30:00"), tasks)
	wantGaps(t, gaps, [][2]string{
		{"09:30:00", "10:00:00"},
		{"11:00:00", "13:00:00"},
		{"14:00:00", "18:30:00"},
	})
}

func TestGapsFullyCovered(t *testing.T) {
	tasks := []task.Task{
		tsk("09:30:00", "13:00:00"),
		tsk("14:00:00", "18:30:00"),
	}
	if gaps := Gaps(span(t, "09:30:00"), tasks); len(gaps) != 0 {
		t.Errorf("fully covered day produced gaps %v", gaps)
	}
}

func TestGapsDegenerateSpan(t *testing.T) {
	s := span(t, "09:30:00")
	s.End = s.Start
	if gaps := Gaps(s, nil); gaps != nil {
		t.Errorf("degenerate span produced gaps %v", gaps)
	}
}

func TestUncovered(t *testing.T) {
	tasks := []task.Task{tsk("09:30:00", "12:30:00")}
	got := Uncovered(span(t, "09:30:00"), tasks)
	// 30m before lunch plus the 4.5h afternoon.
	if want := 5 * time.Hour; got != want {
		t.Errorf("Uncovered = %v, want %v", got, want)
	}
}

func TestCovered(t *testing.T) {
	s := span(t, "09:30:00")
	slot := interval.New(at("10:00:00"), at("10:30:00"))

	if Covered(s, nil, slot, time.Second) {
		t.Error("empty day should not cover the slot")
	}

	tasks := []task.Task{tsk("09:30:00", "10:30:00")}
	if !Covered(s, tasks, slot, time.Second) {
		t.Error("slot inside a logged task should be covered")
	}

	// A slot inside lunch is covered by definition: no gap overlaps it.
	lunchSlot := interval.New(at("13:15:00"), at("13:45:00"))
	if !Covered(s, nil, lunchSlot, time.Second) {
		t.Error("lunch slot should count as covered")
	}
}

func TestDaySlotsInterleaved(t *testing.T) {
	tasks := []task.Task{
		tsk("09:30:00", "11:00:00"),
		tsk("14:00:00", "16:00:00"),
	}
	slots := DaySlots(span(t, "09:30:00"), tasks)

	want := []struct {
		start    string
		recorded bool
	}{
		{"09:30:00", true},
		{"11:00:00", false},
		{"14:00:00", true},
		{"16:00:00", false},
	}
	if len(slots) != len(want) {
		t.Fatalf("got %d slots, want %d: %v", len(slots), len(want), slots)
	}
	for i, w := range want {
		if !slots[i].Interval.Start.Equal(at(w.start)) {
			t.Errorf("slot %d starts %v, want %s", i, slots[i].Interval.Start, w.start)
		}
		if slots[i].Recorded() != w.recorded {
			t.Errorf("slot %d recorded = %v, want %v", i, slots[i].Recorded(), w.recorded)
		}
	}
}

func TestDaySlotsKeepsFullTaskExtent(t *testing.T) {
	// A task spilling past the span end is shown whole.
	tasks := []task.Task{tsk("18:00:00", "19:00:00")}
	slots := DaySlots(span(t, "09:30:00"), tasks)

	var found bool
	for _, s := range slots {
		if s.Recorded() && s.Interval.End.Equal(at("19:00:00")) {
			found = true
		}
	}
	if !found {
		t.Error("task extent should not be clipped in the day view")
	}
}
