package task

import (
	"fmt"
	"strconv"

	"github.com/felixgeelhaar/dayquest/adapter/cli"
	"github.com/felixgeelhaar/dayquest/internal/tasks/application/commands"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <task-id>",
	Short:   "Delete a task definition; existing daily items are kept",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid task id %q", args[0])
		}

		if err := app.DeleteTaskHandler.Handle(cmd.Context(), commands.DeleteTaskCommand{TaskID: id, Now: app.Now()}); err != nil {
			return fmt.Errorf("failed to delete task %d: %w", id, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Task #%d deleted.\n", id)
		return nil
	},
}
