package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ayliff/taskday/internal/report"
)

var weekCmd = &cobra.Command{
	Use:   "week [date]",
	Short: "Show the weekly timesheet",
	Long: `Show the timesheet for the week containing the date. Weeks run
Saturday through Friday. Days whose schedule was pinned use the hours
frozen at pin time; weekdays logged short of their required hours are
marked with '!'.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		date, ok := parseDateArg(args)
		if !ok {
			return
		}
		showWeek(date)
	},
}

func init() {
	rootCmd.AddCommand(weekCmd)
}

func showWeek(date time.Time) {
	svc, ok := getServices()
	if !ok {
		return
	}

	ts, err := svc.Report.Timesheet(date)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to build the timesheet")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Week %s - %s\n",
		ts.WeekStart.Format("2006-01-02"), ts.WeekEnd.Format("2006-01-02"))

	const nameWidth = 24
	header := fmt.Sprintf("%-*s", nameWidth, "Project")
	for _, d := range ts.Dates {
		header += fmt.Sprintf("  %6s", d.Format("Mon 02"))
	}
	_, _ = fmt.Fprintln(deps.Stdout, header)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", len(header)))

	for _, row := range ts.Rows {
		line := fmt.Sprintf("%-*s", nameWidth, truncate(row.DisplayName, nameWidth))
		for i := range row.Hours {
			line += fmt.Sprintf("  %6s", report.FormatHours(row.Hours[i]))
		}
		_, _ = fmt.Fprintln(deps.Stdout, line)
	}

	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", len(header)))
	total := fmt.Sprintf("%-*s", nameWidth, "Total")
	for i, h := range ts.Totals {
		cell := report.FormatHours(h)
		if ts.Shortfall[i] {
			cell += "!"
		}
		total += fmt.Sprintf("  %6s", cell)
	}
	_, _ = fmt.Fprintln(deps.Stdout, total)

	for i, holiday := range ts.Holiday {
		if holiday {
			_, _ = fmt.Fprintf(deps.Stdout, "%s is a public holiday\n", ts.Dates[i].Format("Mon 2006-01-02"))
		}
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
