package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ayliff/taskday/internal/task"
	"github.com/ayliff/taskday/internal/timeutil"
)

var monthCmd = &cobra.Command{
	Use:   "month [date]",
	Short: "Show the monthly progress report",
	Long: `Show the design-record report for the month containing the date: one
row per (project, description) group in the configured categories, with
the final progress figure spread over the month's weeks in proportion
to the hours worked each week.

Rows marked '?' have no stored progress yet; set one with
'taskday month set'.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		date, ok := parseDateArg(args)
		if !ok {
			return
		}
		showMonth(date)
	},
}

var monthSetCmd = &cobra.Command{
	Use:   "set <project> <description> <value>",
	Short: "Store a group's end-of-month progress",
	Long: `Store the final progress figure for a (project, description) group in
the month. The value is a percentage (0-100) or '-' for recurring work
that has no completion figure. The description must match the logged
tasks exactly.`,
	Example: `  taskday month set P100 "Drafting layouts" 60
  taskday month set ADMIN "Coordination" -`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		setMonthProgress(args[0], args[1], args[2])
	},
}

var monthSetDate string

func init() {
	rootCmd.AddCommand(monthCmd)
	monthCmd.AddCommand(monthSetCmd)
	monthSetCmd.Flags().StringVarP(&monthSetDate, "date", "d", "", "month to store for (ISO date, default today)")
}

func showMonth(date time.Time) {
	svc, ok := getServices()
	if !ok {
		return
	}

	rep, err := svc.Report.Monthly(date)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to build the monthly report")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "%s\n", rep.Month.Format("January 2006"))

	if len(rep.Rows) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No reportable tasks this month")
		return
	}

	const codeWidth, descWidth = 8, 28
	header := fmt.Sprintf("%-*s  %-*s", codeWidth, "Project", descWidth, "Description")
	for w := 1; w <= rep.NumWeeks; w++ {
		header += fmt.Sprintf("  %5s", fmt.Sprintf("W%d", w))
	}
	_, _ = fmt.Fprintln(deps.Stdout, header)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", len(header)))

	needsInput := false
	for _, row := range rep.Rows {
		line := fmt.Sprintf("%-*s  %-*s", codeWidth, row.ProjectCode, descWidth, truncate(row.Description, descWidth))
		if row.NeedsInput {
			needsInput = true
			for range row.WeeklyHours {
				line += fmt.Sprintf("  %5s", "?")
			}
		} else {
			for _, cell := range row.Cells {
				line += fmt.Sprintf("  %5s", cell.String())
			}
		}
		_, _ = fmt.Fprintln(deps.Stdout, line)
	}

	if needsInput {
		_, _ = fmt.Fprintln(deps.Stdout)
		_, _ = fmt.Fprintln(deps.Stdout, "Rows marked '?' need a progress figure:")
		_, _ = fmt.Fprintln(deps.Stdout, "  taskday month set <project> \"<description>\" <value>")
	}
}

func setMonthProgress(projectCode, description, value string) {
	svc, ok := getServices()
	if !ok {
		return
	}

	date := timeutil.DateOnly(deps.Now())
	if monthSetDate != "" {
		var err error
		date, err = timeutil.ParseDate(monthSetDate)
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid date '%s'\n", monthSetDate)
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use ISO format, e.g. 2025-03-04")
			deps.Exit(1)
			return
		}
	}

	key := task.GroupKey{ProjectCode: projectCode, Description: description}
	if err := svc.Report.SetProgress(date, key, value); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid progress value '%s'\n", value)
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use a percentage 0-100, or '-' for recurring work")
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Stored %s progress for %s / %s: %s\n",
		date.Format(timeutil.MonthLayout), projectCode, description, strings.TrimSpace(value))
}
