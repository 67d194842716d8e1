package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ayliff/taskday/internal/interval"
	"github.com/ayliff/taskday/internal/reconcile"
	"github.com/ayliff/taskday/internal/service"
	"github.com/ayliff/taskday/internal/timeutil"
)

var (
	logDate       string
	logStart      string
	logEnd        string
	logProject    string
	logDesc       string
	logCategories []string
	logSoftware   []string
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log a task against the day's timeline",
	Long: `Log a task interval. The interval is reconciled against the day's
schedule before anything is stored: it is clipped to the workday span,
split around the lunch break, and the stretches already covered by
existing tasks are subtracted. Each surviving piece is stored as its
own task.

Without --start the last logged task's end is used (or the workday
start on an empty day).`,
	Example: `  taskday log -p P100 -m "Drafting layouts" -s 09:30 -e 11:00
  taskday log -p P100 -m "Site visit" -e 16:00 -c Travel
  taskday log -d 2025-03-04 -p ADMIN -m "Filing" -s 14:00 -e 15:00`,
	Run: func(cmd *cobra.Command, args []string) {
		runLog()
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.Flags().StringVarP(&logDate, "date", "d", "", "date to log on (ISO, default today)")
	logCmd.Flags().StringVarP(&logStart, "start", "s", "", "start time HH:MM (default: suggested)")
	logCmd.Flags().StringVarP(&logEnd, "end", "e", "", "end time HH:MM")
	logCmd.Flags().StringVarP(&logProject, "project", "p", "", "project code")
	logCmd.Flags().StringVarP(&logDesc, "message", "m", "", "task description")
	logCmd.Flags().StringSliceVarP(&logCategories, "category", "c", nil, "task categories (repeatable)")
	logCmd.Flags().StringSliceVar(&logSoftware, "software", nil, "software used (repeatable)")
	_ = logCmd.MarkFlagRequired("project")
	_ = logCmd.MarkFlagRequired("end")
}

// parseClockFlag parses an HH:MM or HH:MM:SS flag value.
func parseClockFlag(name, value string) (interval.Clock, bool) {
	c, err := interval.ParseClock(value)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid --%s time '%s'\n", name, value)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use HH:MM, e.g. 09:30")
		deps.Exit(1)
		return interval.Clock{}, false
	}
	return c, true
}

func runLog() {
	svc, ok := getServices()
	if !ok {
		return
	}

	var date time.Time
	if logDate == "" {
		date = timeutil.DateOnly(deps.Now())
	} else {
		var err error
		date, err = timeutil.ParseDate(logDate)
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid date '%s'\n", logDate)
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use ISO format, e.g. 2025-03-04")
			deps.Exit(1)
			return
		}
	}

	var start interval.Clock
	if logStart == "" {
		suggested, err := svc.Tasks.SuggestStart(date)
		if err != nil {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to suggest a start time")
			_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
			deps.Exit(1)
			return
		}
		start = suggested
	} else {
		var ok bool
		start, ok = parseClockFlag("start", logStart)
		if !ok {
			return
		}
	}

	end, ok := parseClockFlag("end", logEnd)
	if !ok {
		return
	}

	created, err := svc.Tasks.Log(date, start, end, logProject, logDesc, logCategories, logSoftware)
	if err != nil {
		reportLogRejection(err)
		return
	}

	for _, t := range created {
		_, _ = fmt.Fprintf(deps.Stdout, "Logged [%d] %s %s-%s %s (%.2fh)\n",
			t.ID, t.Date, t.Start[:5], t.End[:5], t.ProjectCode, t.Hours())
	}
}

// reportLogRejection explains why the reconciler refused the interval.
func reportLogRejection(err error) {
	switch {
	case errors.Is(err, reconcile.ErrNonWorkingDay):
		_, _ = fmt.Fprintln(deps.Stderr, "Error: That date is not a working day")
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check working_days and holidays in your config")
	case errors.Is(err, reconcile.ErrDegenerateSpan):
		_, _ = fmt.Fprintln(deps.Stderr, "Error: The day has no computable schedule")
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: The configured hours leave a zero-length workday")
	case errors.Is(err, reconcile.ErrOutsideWorkingHours):
		_, _ = fmt.Fprintln(deps.Stderr, "Error: The interval falls entirely outside working hours")
	case errors.Is(err, reconcile.ErrDuringLunch):
		_, _ = fmt.Fprintln(deps.Stderr, "Error: The interval falls entirely within the lunch break")
	case errors.Is(err, reconcile.ErrNoDurationRemaining):
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Nothing of the interval survives clipping to the workday")
	case errors.Is(err, reconcile.ErrTimeFullyOccupied):
		_, _ = fmt.Fprintln(deps.Stderr, "Error: That time is already fully logged")
	case errors.Is(err, service.ErrEmptyProject):
		_, _ = fmt.Fprintln(deps.Stderr, "Error: A project code is required")
	case errors.Is(err, service.ErrInvalidInterval):
		_, _ = fmt.Fprintln(deps.Stderr, "Error: The end time must be after the start time")
	default:
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to log the task")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	}
	deps.Exit(1)
}
