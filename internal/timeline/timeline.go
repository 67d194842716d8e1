// Package timeline computes the unrecorded portions of a workday span
// and the interleaved recorded/unrecorded view presented for a day.
// Inputs are a resolved workday span and the day's tasks sorted by
// start; everything here is a pure function of those.
package timeline

import (
	"sort"
	"time"

	"github.com/ayliff/taskday/internal/interval"
	"github.com/ayliff/taskday/internal/policy"
	"github.com/ayliff/taskday/internal/task"
)

// Slot is one contiguous stretch of the day view. Task is nil for
// unrecorded time.
type Slot struct {
	Interval interval.Interval
	Task     *task.Task
}

// Recorded reports whether the slot is covered by a logged task.
func (s Slot) Recorded() bool {
	return s.Task != nil
}

// Gaps returns the unrecorded intervals of the span, in chronological
// order, with lunch excluded. A cursor walks the sorted tasks from the
// span start: each stretch between the cursor and the next task is a
// gap, split around lunch before it is emitted. A degenerate span has
// no gaps.
func Gaps(span policy.Span, tasks []task.Task) []interval.Interval {
	if span.Degenerate() {
		return nil
	}

	var gaps []interval.Interval
	emit := func(iv interval.Interval) {
		for _, piece := range iv.SplitAround(span.Lunch) {
			if piece.Valid() {
				gaps = append(gaps, piece)
			}
		}
	}

	cursor := span.Start
	for _, t := range tasks {
		iv, err := t.Interval()
		if err != nil {
			continue
		}
		iv = iv.Clip(span.Bounds())
		if !iv.End.After(cursor) {
			continue
		}
		if cursor.Before(iv.Start) {
			emit(interval.New(cursor, iv.Start))
		}
		cursor = iv.End
	}
	if cursor.Before(span.End) {
		emit(interval.New(cursor, span.End))
	}
	return gaps
}

// Uncovered returns the total unrecorded duration of the span.
func Uncovered(span policy.Span, tasks []task.Task) time.Duration {
	var total time.Duration
	for _, g := range Gaps(span, tasks) {
		total += g.Duration()
	}
	return total
}

// Covered reports whether the given slot of the span is already fully
// recorded, to within the given tolerance. A prompt for a slot whose
// remaining unrecorded time is below the tolerance is pointless and is
// skipped by the scheduler.
func Covered(span policy.Span, tasks []task.Task, slot interval.Interval, tolerance time.Duration) bool {
	var uncovered time.Duration
	for _, g := range Gaps(span, tasks) {
		uncovered += g.Intersect(slot).Duration()
	}
	return uncovered < tolerance
}

// DaySlots interleaves the day's tasks with its unrecorded gaps into a
// single chronological sequence. Tasks are shown at their full logged
// extent even when they spill outside the span; gaps only exist inside
// it.
func DaySlots(span policy.Span, tasks []task.Task) []Slot {
	var slots []Slot

	for i := range tasks {
		iv, err := tasks[i].Interval()
		if err != nil {
			continue
		}
		slots = append(slots, Slot{Interval: iv, Task: &tasks[i]})
	}
	for _, g := range Gaps(span, tasks) {
		slots = append(slots, Slot{Interval: g})
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Interval.Start.Before(slots[j].Interval.Start)
	})
	return slots
}
