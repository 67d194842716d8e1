package timeutil

import (
	"testing"
	"time"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-04")
	if err != nil {
		t.Fatalf("ParseDate error: %v", err)
	}
	if d.Year() != 2025 || d.Month() != time.March || d.Day() != 4 {
		t.Errorf("ParseDate = %v", d)
	}

	if _, err := ParseDate("04/03/2025"); err == nil {
		t.Error("expected error for non-ISO date")
	}
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2025-03")
	if err != nil {
		t.Fatalf("ParseMonth error: %v", err)
	}
	if m.Day() != 1 || m.Month() != time.March {
		t.Errorf("ParseMonth = %v, want first of March", m)
	}

	if _, err := ParseMonth("March 2025"); err == nil {
		t.Error("expected error for non-ISO month")
	}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		start  time.Time
		months int
		want   time.Time
	}{
		{date(2025, time.March, 15), 1, date(2025, time.April, 1)},
		{date(2025, time.March, 15), -1, date(2025, time.February, 1)},
		{date(2025, time.December, 31), 1, date(2026, time.January, 1)},
		{date(2025, time.January, 10), -1, date(2024, time.December, 1)},
		{date(2025, time.January, 10), -13, date(2023, time.December, 1)},
		{date(2025, time.June, 1), 7, date(2026, time.January, 1)},
	}

	for _, tt := range tests {
		got := AddMonths(tt.start, tt.months)
		if !got.Equal(tt.want) {
			t.Errorf("AddMonths(%v, %d) = %v, want %v", tt.start, tt.months, got, tt.want)
		}
	}
}

func TestTimesheetWeekStartsSaturday(t *testing.T) {
	tests := []struct {
		day       time.Time
		wantStart time.Time
	}{
		// 2025-03-04 is a Tuesday; the week starts Saturday 2025-03-01.
		{date(2025, time.March, 4), date(2025, time.March, 1)},
		// Saturday is its own week start.
		{date(2025, time.March, 1), date(2025, time.March, 1)},
		// Friday closes the week started eight days earlier on Saturday.
		{date(2025, time.March, 7), date(2025, time.March, 1)},
		// Sunday belongs to the week started the day before.
		{date(2025, time.March, 2), date(2025, time.March, 1)},
	}

	for _, tt := range tests {
		start, end := TimesheetWeek(tt.day)
		if !start.Equal(tt.wantStart) {
			t.Errorf("TimesheetWeek(%v) start = %v, want %v", tt.day, start, tt.wantStart)
		}
		if !end.Equal(tt.wantStart.AddDate(0, 0, 6)) {
			t.Errorf("TimesheetWeek(%v) end = %v, want %v", tt.day, end, tt.wantStart.AddDate(0, 0, 6))
		}
	}
}

func TestWeekDates(t *testing.T) {
	dates := WeekDates(date(2025, time.March, 4))
	if len(dates) != 7 {
		t.Fatalf("WeekDates returned %d dates, want 7", len(dates))
	}
	if dates[0].Weekday() != time.Saturday {
		t.Errorf("week should start on Saturday, got %v", dates[0].Weekday())
	}
	for i := 1; i < 7; i++ {
		if !dates[i].Equal(dates[i-1].AddDate(0, 0, 1)) {
			t.Errorf("dates not consecutive at position %d", i)
		}
	}
}

func TestMonthWeekMap(t *testing.T) {
	// March 2025: the 1st is a Saturday, so the Monday-first grid has
	// six rows and March 3 (Monday) opens the second row.
	mw := MonthWeekMap(date(2025, time.March, 10))

	if mw.NumWeeks != 6 {
		t.Errorf("NumWeeks = %d, want 6", mw.NumWeeks)
	}

	tests := []struct {
		day  int
		want int
	}{
		{1, 0},
		{2, 0},
		{3, 1},
		{9, 1},
		{10, 2},
		{31, 5},
	}
	for _, tt := range tests {
		week, ok := mw.WeekOf(tt.day)
		if !ok {
			t.Errorf("WeekOf(%d) not found", tt.day)
			continue
		}
		if week != tt.want {
			t.Errorf("WeekOf(%d) = %d, want %d", tt.day, week, tt.want)
		}
	}

	if _, ok := mw.WeekOf(32); ok {
		t.Error("WeekOf(32) should not exist")
	}
}

func TestMonthWeekMapSeptember2025(t *testing.T) {
	// September 2025 starts on a Monday: exactly five rows, day 1 in
	// row 0, day 30 in row 4.
	mw := MonthWeekMap(date(2025, time.September, 15))
	if mw.NumWeeks != 5 {
		t.Errorf("NumWeeks = %d, want 5", mw.NumWeeks)
	}
	if week, _ := mw.WeekOf(1); week != 0 {
		t.Errorf("WeekOf(1) = %d, want 0", week)
	}
	if week, _ := mw.WeekOf(30); week != 4 {
		t.Errorf("WeekOf(30) = %d, want 4", week)
	}
}

func TestMonthDates(t *testing.T) {
	dates := MonthDates(date(2025, time.February, 10))
	if len(dates) != 28 {
		t.Errorf("February 2025 has %d dates, want 28", len(dates))
	}
	if dates[0].Day() != 1 || dates[len(dates)-1].Day() != 28 {
		t.Errorf("month dates should span 1..28, got %d..%d", dates[0].Day(), dates[len(dates)-1].Day())
	}

	leap := MonthDates(date(2024, time.February, 1))
	if len(leap) != 29 {
		t.Errorf("February 2024 has %d dates, want 29", len(leap))
	}
}
