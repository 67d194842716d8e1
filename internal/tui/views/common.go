package views

import (
	"errors"
	"fmt"

	"github.com/ayliff/taskday/internal/reconcile"
	"github.com/ayliff/taskday/internal/service"
)

// formatHours formats a decimal-hours value for display
func formatHours(h float64) string {
	return fmt.Sprintf("%.2fh", h)
}

// rejectionMessage translates a reconciler rejection into a short
// message for the status line. Other errors come back verbatim.
func rejectionMessage(err error) string {
	switch {
	case errors.Is(err, reconcile.ErrNonWorkingDay):
		return "not a working day"
	case errors.Is(err, reconcile.ErrDegenerateSpan):
		return "no computable schedule for this day"
	case errors.Is(err, reconcile.ErrOutsideWorkingHours):
		return "outside working hours"
	case errors.Is(err, reconcile.ErrDuringLunch):
		return "entirely within the lunch break"
	case errors.Is(err, reconcile.ErrNoDurationRemaining):
		return "nothing survives clipping to the workday"
	case errors.Is(err, reconcile.ErrTimeFullyOccupied):
		return "that time is already fully logged"
	case errors.Is(err, service.ErrEmptyProject):
		return "a project code is required"
	case errors.Is(err, service.ErrInvalidInterval):
		return "end must be after start"
	default:
		return err.Error()
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
