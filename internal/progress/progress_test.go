package progress

import (
	"math"
	"testing"
)

func TestParseFinal(t *testing.T) {
	f, err := ParseFinal("75")
	if err != nil || f.Recurring || f.Percent != 75 {
		t.Errorf("ParseFinal(75) = %+v, %v", f, err)
	}

	f, err = ParseFinal(" - ")
	if err != nil || !f.Recurring {
		t.Errorf("ParseFinal(-) = %+v, %v", f, err)
	}

	for _, bad := range []string{"", "abc", "-5", "105"} {
		if _, err := ParseFinal(bad); err == nil {
			t.Errorf("ParseFinal(%q) should fail", bad)
		}
	}
}

func TestApportionByEffortShare(t *testing.T) {
	// 20 -> 80 over four weeks with hours 10, 0, 10, 20: the idle week
	// shows nothing and the gain lands in proportion to effort.
	got := Apportion(20, Final{Percent: 80}, []float64{10, 0, 10, 20})

	want := []struct {
		shown   bool
		percent float64
	}{
		{true, 35},
		{false, 0},
		{true, 50},
		{true, 80},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d weeks, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Shown != w.shown {
			t.Errorf("week %d shown = %v, want %v", i, got[i].Shown, w.shown)
			continue
		}
		if w.shown && math.Abs(got[i].Percent-w.percent) > 1e-9 {
			t.Errorf("week %d = %v, want %v", i, got[i].Percent, w.percent)
		}
	}
}

func TestApportionFinalWeekReachesFinal(t *testing.T) {
	hours := []float64{3.25, 7.5, 0.5, 12}
	got := Apportion(10, Final{Percent: 95}, hours)

	last := got[len(got)-1]
	if !last.Shown || math.Abs(last.Percent-95) > 1e-9 {
		t.Errorf("final week = %+v, want 95", last)
	}

	// Non-decreasing when final >= start.
	prev := 10.0
	for i, v := range got {
		if !v.Shown {
			continue
		}
		if v.Percent < prev-1e-9 {
			t.Errorf("week %d decreased: %v < %v", i, v.Percent, prev)
		}
		prev = v.Percent
	}
}

func TestApportionRecurring(t *testing.T) {
	got := Apportion(0, Final{Recurring: true}, []float64{2, 0, 0.001, 5})

	wantShown := []bool{true, false, false, true}
	for i, want := range wantShown {
		if got[i].Shown != want {
			t.Errorf("week %d shown = %v, want %v", i, got[i].Shown, want)
		}
		if got[i].Shown && !got[i].Recurring {
			t.Errorf("week %d should carry the recurring marker", i)
		}
	}
}

func TestApportionZeroTotalHours(t *testing.T) {
	got := Apportion(20, Final{Percent: 80}, []float64{0, 0, 0})
	for i, v := range got {
		if v.Shown {
			t.Errorf("week %d should show nothing with no hours, got %+v", i, v)
		}
	}
}

func TestApportionEpsilonDust(t *testing.T) {
	// A week with only float dust logged is treated as idle.
	got := Apportion(0, Final{Percent: 50}, []float64{0.004, 10})
	if got[0].Shown {
		t.Errorf("dust week shown: %+v", got[0])
	}
	if !got[1].Shown || math.Abs(got[1].Percent-50) > 1e-6 {
		t.Errorf("active week = %+v, want 50", got[1])
	}
}

func TestWeekValueString(t *testing.T) {
	tests := []struct {
		v    WeekValue
		want string
	}{
		{WeekValue{}, ""},
		{WeekValue{Shown: true, Recurring: true}, "-"},
		{WeekValue{Shown: true, Percent: 35}, "35.0"},
		{WeekValue{Shown: true, Percent: 66.666}, "66.7"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String(%+v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}
