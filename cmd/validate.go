package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the task store for corrupted lines",
	Long: `Scan the task store and report any line that does not parse. Corrupted
lines are skipped when reading, so a corrupt line means silently missing
tasks until it is repaired or removed.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runValidate()
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate() {
	svc, ok := getServices()
	if !ok {
		return
	}

	health, err := svc.Tasks.StorageHealth()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to validate storage")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Total lines:     %d\n", health.TotalLines)
	_, _ = fmt.Fprintf(deps.Stdout, "Valid tasks:     %d\n", health.ValidTasks)
	_, _ = fmt.Fprintf(deps.Stdout, "Corrupted lines: %d\n", health.CorruptedLines)

	if health.CorruptedLines == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "Storage is healthy")
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout)
	for _, w := range health.Warnings {
		_, _ = fmt.Fprintf(deps.Stdout, "Line %d: %s\n", w.LineNumber, w.Error)
		_, _ = fmt.Fprintf(deps.Stdout, "  %s\n", truncate(w.Content, 70))
	}
	_, _ = fmt.Fprintln(deps.Stderr, "Hint: Restore a backup with 'taskday backup restore', or repair the lines by hand")
	deps.Exit(1)
}
