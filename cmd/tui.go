package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ayliff/taskday/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive terminal interface",
	Long: `Open the interactive terminal interface with day, week, and month
views. Today's effective start is pinned on launch, like the plain
'taskday' command.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runTUI()
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI() {
	svc, ok := getServices()
	if !ok {
		return
	}
	now := deps.Now()

	if err := svc.Tasks.PinDay(now); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Warning: failed to pin today's start: %v\n", err)
	}
	if _, err := svc.RunStartupBackup(); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Warning: startup backup failed: %v\n", err)
	}

	if err := tui.Run(svc, now); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to run the terminal interface")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
	}
}
