// Package progress apportions a task group's monthly completion gain
// across the weeks of the month by effort share: a week's slice of the
// gain is proportional to the hours logged that week. Recurring groups
// carry a marker instead of a percentage.
package progress

import (
	"fmt"
	"strconv"
	"strings"
)

// RecurringMarker is the stored value for groups that never complete
// (standing meetings, admin). It propagates to every active week.
const RecurringMarker = "-"

// epsilonHours is the threshold below which a week counts as idle.
// Guards against float dust from summing clipped sub-intervals.
const epsilonHours = 0.005

// Final is the validated end-of-month progress value for a group:
// either the recurring marker or a percentage.
type Final struct {
	Recurring bool
	Percent   float64
}

// ParseFinal validates a user-entered final progress value. Accepts the
// recurring marker or a number in [0, 100].
func ParseFinal(s string) (Final, error) {
	s = strings.TrimSpace(s)
	if s == RecurringMarker {
		return Final{Recurring: true}, nil
	}
	pct, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Final{}, fmt.Errorf("invalid progress value %q: %w", s, err)
	}
	if pct < 0 || pct > 100 {
		return Final{}, fmt.Errorf("progress %v out of range [0, 100]", pct)
	}
	return Final{Percent: pct}, nil
}

// WeekValue is one week's cell in the progress report. A zero WeekValue
// means no figure is shown for that week.
type WeekValue struct {
	Shown     bool
	Recurring bool
	Percent   float64
}

// String renders the cell: empty for idle weeks, the marker for
// recurring groups, otherwise the percentage to one decimal.
func (v WeekValue) String() string {
	switch {
	case !v.Shown:
		return ""
	case v.Recurring:
		return RecurringMarker
	default:
		return strconv.FormatFloat(v.Percent, 'f', 1, 64)
	}
}

// Apportion distributes the gain from start to final across the weeks
// in proportion to each week's share of the month's logged hours. Weeks
// with no hours show nothing rather than an interpolated figure. The
// returned slice always has one entry per input week.
func Apportion(start float64, final Final, weeklyHours []float64) []WeekValue {
	out := make([]WeekValue, len(weeklyHours))

	if final.Recurring {
		for i, h := range weeklyHours {
			if h > epsilonHours {
				out[i] = WeekValue{Shown: true, Recurring: true}
			}
		}
		return out
	}

	var totalHours float64
	for _, h := range weeklyHours {
		totalHours += h
	}
	totalGain := final.Percent - start

	cumulative := start
	for i, h := range weeklyHours {
		if totalHours > 0 {
			cumulative += (h / totalHours) * totalGain
		}
		if h > epsilonHours {
			out[i] = WeekValue{Shown: true, Percent: cumulative}
		}
	}
	return out
}
