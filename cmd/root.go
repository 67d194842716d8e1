package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ayliff/taskday/internal/policy"
	"github.com/ayliff/taskday/internal/service"
	"github.com/ayliff/taskday/internal/timeutil"
)

var rootCmd = &cobra.Command{
	Use:   "taskday",
	Short: "A workday time tracking application",
	Long: `taskday tracks your workday as a timeline: each day gets an effective
start pinned inside a flexible window, and logged tasks fill the span
between start and end around the lunch break.

Usage:
  taskday                                        Show today's timeline
  taskday day [date]                             Show a day's timeline
  taskday log -p CODE -m 'text' -s 09:00 -e 11:00   Log a task interval
  taskday week [date]                            Weekly timesheet
  taskday month [date]                           Monthly progress report
  taskday travel [date]                          Monthly travel extract
  taskday schedule                               Today's remaining prompts
  taskday validate                               Check storage file health

Dates use ISO format (2025-03-04); omitted dates mean today.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc, ok := getServices()
		if !ok {
			return
		}
		now := deps.Now()

		// First run of the day pins the effective start; later runs
		// are no-ops.
		if err := svc.Tasks.PinDay(now); err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Warning: failed to pin today's start: %v\n", err)
		}
		if _, err := svc.RunStartupBackup(); err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Warning: startup backup failed: %v\n", err)
		}

		renderDay(svc, timeutil.DateOnly(now))
	},
}

// dayCmd represents the day command
var dayCmd = &cobra.Command{
	Use:   "day [date]",
	Short: "Show a day's timeline",
	Long:  `Show the timeline for a date: logged tasks interleaved with the unrecorded gaps of the workday span.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		date, ok := parseDateArg(args)
		if !ok {
			return
		}
		showDay(date)
	},
}

func init() {
	rootCmd.AddCommand(dayCmd)
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"taskday version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// getServices builds the service layer, reporting failure to stderr.
func getServices() (*service.Services, bool) {
	svc, err := deps.Services()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to initialize application services")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check that your config directory is accessible")
		deps.Exit(1)
		return nil, false
	}
	return svc, true
}

// parseDateArg reads an optional ISO date argument, defaulting to today.
func parseDateArg(args []string) (time.Time, bool) {
	if len(args) == 0 {
		return timeutil.DateOnly(deps.Now()), true
	}
	date, err := timeutil.ParseDate(args[0])
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid date '%s'\n", args[0])
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use ISO format, e.g. 2025-03-04")
		deps.Exit(1)
		return time.Time{}, false
	}
	return date, true
}

// showDay renders the timeline for one date.
func showDay(date time.Time) {
	svc, ok := getServices()
	if !ok {
		return
	}
	renderDay(svc, date)
}

func renderDay(svc *service.Services, date time.Time) {
	view, err := svc.Tasks.View(date)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to load the day")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "%s (%s)\n", date.Format("2006-01-02"), timeutil.WeekdayName(date))

	switch view.DayOff {
	case policy.PublicHoliday:
		_, _ = fmt.Fprintln(deps.Stdout, "Public holiday - no working hours scheduled")
	case policy.NonWorkingDay:
		_, _ = fmt.Fprintln(deps.Stdout, "Non-working day")
	}

	if view.Span.Degenerate() {
		_, _ = fmt.Fprintln(deps.Stdout, "No computable schedule for this day")
		return
	}

	origin := map[policy.StartOrigin]string{
		policy.StartPinned:      "pinned",
		policy.StartFromTask:    "from first task",
		policy.StartWindowUpper: "window default",
	}[view.StartOrigin]
	_, _ = fmt.Fprintf(deps.Stdout, "Workday: %s - %s (start %s), lunch %s\n",
		view.Span.Start.Format("15:04"), view.Span.End.Format("15:04"), origin, view.Span.Lunch)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))

	if len(view.Slots) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No tasks and no gaps")
		return
	}

	var logged float64
	for _, slot := range view.Slots {
		if slot.Recorded() {
			t := slot.Task
			_, _ = fmt.Fprintf(deps.Stdout, "[%3d] %s  %-8s %s (%.2fh)\n",
				t.ID, slot.Interval, t.ProjectCode, t.PlainDescription(), t.Hours())
			logged += t.Hours()
		} else {
			_, _ = fmt.Fprintf(deps.Stdout, "      %s  (unrecorded, %.2fh)\n",
				slot.Interval, slot.Interval.Hours())
		}
	}

	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	_, _ = fmt.Fprintf(deps.Stdout, "Logged: %.2fh of %.2fh required\n", logged, view.Policy.RequiredHours)
}
