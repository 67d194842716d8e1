package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a logged task",
	Long:  `Delete a task by its ID. IDs are shown in the day view.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runDelete(args[0])
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(arg string) {
	svc, ok := getServices()
	if !ok {
		return
	}

	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid task ID '%s'\n", arg)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: IDs are shown in 'taskday day'")
		deps.Exit(1)
		return
	}

	deleted, err := svc.Tasks.Delete(id)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to delete the task")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Deleted [%d] %s %s-%s %s\n",
		deleted.ID, deleted.Date, deleted.Start[:5], deleted.End[:5], deleted.ProjectCode)
}
