// Package reconcile turns a proposed work interval into the set of
// sub-intervals that can actually be persisted for a date: clipped to
// the workday span, split around lunch, and reduced to the time not
// already covered by existing tasks. Every rejection is an expected
// domain outcome returned as a sentinel error, never a fault.
package reconcile

import (
	"errors"
	"time"

	"github.com/ayliff/taskday/internal/interval"
	"github.com/ayliff/taskday/internal/policy"
	"github.com/ayliff/taskday/internal/task"
)

var (
	// ErrNonWorkingDay: the date is a holiday or its weekday is not in
	// the working-day set.
	ErrNonWorkingDay = errors.New("not a working day")
	// ErrOutsideWorkingHours: the proposed interval does not intersect
	// the workday span at all.
	ErrOutsideWorkingHours = errors.New("outside working hours")
	// ErrDuringLunch: the proposed interval lies wholly within lunch.
	ErrDuringLunch = errors.New("during lunch break")
	// ErrNoDurationRemaining: clipping to work hours and removing lunch
	// left nothing.
	ErrNoDurationRemaining = errors.New("no duration remaining after clipping")
	// ErrTimeFullyOccupied: existing tasks already cover every instant
	// of the proposed interval.
	ErrTimeFullyOccupied = errors.New("time span fully occupied")
	// ErrDegenerateSpan: the computed workday span has no workable
	// time; no schedule can be derived for the date.
	ErrDegenerateSpan = errors.New("workday span is degenerate")
)

// Insert reconciles a proposed interval against the date's policy and
// its existing tasks. On success it returns the non-overlapping
// sub-intervals to persist, in chronological order; the caller saves
// each as a distinct task sharing the proposal's metadata. On rejection
// it returns one of the sentinel errors above and no intervals — a
// rejected call has no partial effect.
//
// existing must be the date's tasks sorted by start; the reconciler
// relies on the stored set being pairwise non-overlapping, which its
// own output preserves.
func Insert(date time.Time, proposed interval.Interval, span policy.Span, p policy.DayPolicy, existing []task.Task) ([]interval.Interval, error) {
	if p.DayOff(date) != policy.Working {
		return nil, ErrNonWorkingDay
	}
	if span.Degenerate() {
		return nil, ErrDegenerateSpan
	}
	if !proposed.End.After(span.Start) || !proposed.Start.Before(span.End) {
		return nil, ErrOutsideWorkingHours
	}
	if span.Lunch.Valid() && span.Lunch.Contains(proposed) {
		return nil, ErrDuringLunch
	}

	clipped := proposed.Clip(span.Bounds())
	prelim := clipped.SplitAround(span.Lunch)
	if len(prelim) == 0 {
		return nil, ErrNoDurationRemaining
	}

	var out []interval.Interval
	for _, slot := range prelim {
		out = append(out, subtract(slot, existing)...)
	}
	if len(out) == 0 {
		return nil, ErrTimeFullyOccupied
	}
	return out, nil
}

// subtract removes the existing tasks from the slot with a cursor walk
// and returns the uncovered pieces in order.
func subtract(slot interval.Interval, existing []task.Task) []interval.Interval {
	var out []interval.Interval
	cursor := slot.Start

	for _, t := range existing {
		iv, err := t.Interval()
		if err != nil {
			continue
		}
		if !cursor.Before(slot.End) {
			break
		}
		if cursor.Before(iv.Start) {
			end := iv.Start
			if slot.End.Before(end) {
				end = slot.End
			}
			if cursor.Before(end) {
				out = append(out, interval.New(cursor, end))
			}
		}
		if iv.End.After(cursor) {
			cursor = iv.End
		}
	}

	if cursor.Before(slot.End) {
		out = append(out, interval.New(cursor, slot.End))
	}
	return out
}
