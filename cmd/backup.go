package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage task store backups",
	Long: `Manage the rotating backups of the task store. A backup is made
automatically once a week on startup; these commands create, list, and
restore backups by hand.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a backup now",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runBackupCreate()
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available backups",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runBackupList()
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <number>",
	Short: "Restore a backup over the task store",
	Long: `Replace the task store with the numbered backup (1 is the most
recent). The current store is backed up first, so a restore can itself
be undone.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runBackupRestore(args[0])
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupRestoreCmd)
}

func runBackupCreate() {
	svc, ok := getServices()
	if !ok {
		return
	}
	if err := svc.CreateBackup(); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to create backup")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintln(deps.Stdout, "Backup created")
}

func runBackupList() {
	svc, ok := getServices()
	if !ok {
		return
	}
	backups := svc.ListBackups()
	if len(backups) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No backups found")
		return
	}
	for _, b := range backups {
		_, _ = fmt.Fprintf(deps.Stdout, "%d: %s\n", b.Number, b.Path)
	}
}

func runBackupRestore(arg string) {
	svc, ok := getServices()
	if !ok {
		return
	}
	num, err := strconv.Atoi(arg)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid backup number '%s'\n", arg)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use 'taskday backup list' to see available backups")
		deps.Exit(1)
		return
	}
	if err := svc.RestoreBackup(num); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to restore backup")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Restored backup %d\n", num)
}
