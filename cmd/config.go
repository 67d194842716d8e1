package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or initialize configuration",
	Long: `Show the active configuration. Values are edited in the TOML file
directly; days already pinned keep the policy frozen at pin time, so
edits apply from the next pinned day onward.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runConfigShow()
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runConfigInit()
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc, ok := getServices()
		if !ok {
			return
		}
		_, _ = fmt.Fprintln(deps.Stdout, svc.Config.GetPath())
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow() {
	svc, ok := getServices()
	if !ok {
		return
	}
	cfg := svc.Config.Get()

	_, _ = fmt.Fprintf(deps.Stdout, "Config file:      %s", svc.Config.GetPath())
	if !svc.Config.Exists() {
		_, _ = fmt.Fprint(deps.Stdout, " (not written, using defaults)")
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintf(deps.Stdout, "Flexible start:   %s - %s\n", cfg.FlexibleStart.Lower, cfg.FlexibleStart.Upper)
	_, _ = fmt.Fprintf(deps.Stdout, "Working hours:    %.2fh per day\n", cfg.DailyWorkingHours)
	_, _ = fmt.Fprintf(deps.Stdout, "Lunch:            %s - %s\n", cfg.Lunch.Start, cfg.Lunch.End)
	_, _ = fmt.Fprintf(deps.Stdout, "Working days:     %s\n", strings.Join(cfg.WorkingDays, ", "))
	_, _ = fmt.Fprintf(deps.Stdout, "Holidays:         %d configured\n", len(cfg.Holidays))
	_, _ = fmt.Fprintf(deps.Stdout, "Prompt interval:  %d minutes\n", cfg.PromptIntervalMinutes)
	_, _ = fmt.Fprintf(deps.Stdout, "Backups kept:     %d\n", cfg.MaxBackupsToKeep)
}

func runConfigInit() {
	svc, ok := getServices()
	if !ok {
		return
	}
	if err := svc.Config.Init(); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to write config")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Wrote default config to %s\n", svc.Config.GetPath())
}
