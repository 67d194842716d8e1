package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ayliff/taskday/internal/config"
	"github.com/ayliff/taskday/internal/policy"
	"github.com/ayliff/taskday/internal/schedule"
	"github.com/ayliff/taskday/internal/timeutil"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Show today's remaining prompts and due reminders",
	Long: `Show the rest of today's prompt schedule: the instants at which the
application would ask what you worked on, skipping any stretch that is
already fully logged. Due periodic reminders and yesterday's workload
check are listed as well.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		showSchedule()
	},
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}

func showSchedule() {
	svc, ok := getServices()
	if !ok {
		return
	}

	now := deps.Now()
	today := timeutil.DateOnly(now)
	cfg := svc.Config.Get()

	prompts, err := svc.Tasks.DuePrompts(today)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to compute the prompt schedule")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "%s (%s)\n", today.Format("2006-01-02"), timeutil.WeekdayName(today))

	if prompts == nil {
		_, _ = fmt.Fprintln(deps.Stdout, "Day off - no prompts scheduled")
	} else if len(prompts) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "Everything is logged - no prompts remaining")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Remaining prompts:")
		for _, pr := range prompts {
			_, _ = fmt.Fprintf(deps.Stdout, "  %s  covering %s\n", pr.At.Format("15:04"), pr.Covers)
		}
		if next, found := schedule.NextPrompt(now, prompts); found {
			_, _ = fmt.Fprintf(deps.Stdout, "Next prompt at %s\n", next.At.Format("15:04"))
		}
	}

	p, err := policy.FromConfig(cfg)
	if err == nil {
		showReminders(today, cfg.Reminders, p)
	}

	if check, active, err := svc.Report.PreviousDayWorkload(now); err == nil && active {
		switch {
		case !check.HasTasks:
			_, _ = fmt.Fprintf(deps.Stdout, "Nothing was logged on %s\n", check.Date.Format("Monday 2006-01-02"))
		case check.Short:
			_, _ = fmt.Fprintf(deps.Stdout, "Only %.2fh of %.2fh logged on %s\n",
				check.HoursLogged, check.RequiredHours, check.Date.Format("Monday 2006-01-02"))
		}
	}
}

func showReminders(today time.Time, r config.Reminders, p policy.DayPolicy) {
	if schedule.WeeklyReminderDue(today, r) {
		_, _ = fmt.Fprintln(deps.Stdout, "Reminder: submit the weekly timesheet")
	}
	if schedule.MonthlyClaimsReminderDue(today, r, p) {
		_, _ = fmt.Fprintln(deps.Stdout, "Reminder: submit monthly claims")
	}
	if schedule.MonthlyTimesheetReminderDue(today, r, p) {
		_, _ = fmt.Fprintln(deps.Stdout, "Reminder: submit the monthly timesheet")
	}
}
