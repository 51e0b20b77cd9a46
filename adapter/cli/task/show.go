package task

import (
	"fmt"
	"io"
	"strconv"

	"github.com/felixgeelhaar/dayquest/adapter/cli"
	"github.com/spf13/cobra"
)

var showFormat string

var showCmd = &cobra.Command{
	Use:   "show <task-id>",
	Short: "Show one task definition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid task id %q", args[0])
		}

		task, err := app.GetTaskHandler.Handle(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to load task %d: %w", id, err)
		}
		return cli.Render(cmd, showFormat, task, func(w io.Writer) {
			printTask(w, *task)
			fmt.Fprintf(w, "      created %s\n", task.CreatedAt.Format("2006-01-02"))
		})
	},
}

func init() {
	cli.AddFormatFlag(showCmd, &showFormat)
}
