package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var travelCmd = &cobra.Command{
	Use:   "travel [date]",
	Short: "Show the monthly travel extract",
	Long: `List every task in the month carrying a travel category, one row per
task, for claiming travel time.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		date, ok := parseDateArg(args)
		if !ok {
			return
		}
		showTravel(date)
	},
}

func init() {
	rootCmd.AddCommand(travelCmd)
}

func showTravel(date time.Time) {
	svc, ok := getServices()
	if !ok {
		return
	}

	rows, err := svc.Report.Travel(date)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to build the travel extract")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Travel - %s\n", date.Format("January 2006"))

	if len(rows) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No travel tasks this month")
		return
	}

	header := fmt.Sprintf("%-16s  %-13s  %-8s  %-28s  %6s", "Date", "Time", "Project", "Description", "Hours")
	_, _ = fmt.Fprintln(deps.Stdout, header)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", len(header)))

	var total float64
	for _, row := range rows {
		_, _ = fmt.Fprintf(deps.Stdout, "%-16s  %-13s  %-8s  %-28s  %6.2f\n",
			row.Date, row.Time, row.ProjectCode, truncate(row.Description, 28), row.Hours)
		total += row.Hours
	}

	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", len(header)))
	_, _ = fmt.Fprintf(deps.Stdout, "%-73s  %6.2f\n", "Total", total)
}
