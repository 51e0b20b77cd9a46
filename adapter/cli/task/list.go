package task

import (
	"fmt"
	"io"
	"strings"

	"github.com/felixgeelhaar/dayquest/adapter/cli"
	"github.com/felixgeelhaar/dayquest/internal/tasks/application/queries"
	"github.com/spf13/cobra"
)

var (
	filterCategory string
	importantOnly  bool
	listFormat     string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List active task definitions",
	Long: `List active tasks, oldest first.

Examples:
  dayquest task list
  dayquest task list --category Home
  dayquest task list --important --format yaml`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		tasks, err := app.ListTasksHandler.Handle(cmd.Context(), queries.ListTasksQuery{
			Category:      filterCategory,
			ImportantOnly: importantOnly,
		})
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		return cli.Render(cmd, listFormat, tasks, func(w io.Writer) {
			if len(tasks) == 0 {
				fmt.Fprintln(w, "No tasks found.")
				return
			}
			fmt.Fprintf(w, "Tasks (%d):\n", len(tasks))
			fmt.Fprintln(w, strings.Repeat("-", 60))
			for _, t := range tasks {
				printTask(w, t)
			}
		})
	},
}

func printTask(w io.Writer, t queries.TaskDTO) {
	marker := ""
	if t.Important {
		marker = " [IMPORTANT]"
	}
	fmt.Fprintf(w, "#%-4d %s%s\n", t.ID, t.Title, marker)

	schedule := t.Recurrence
	if t.Weekdays != "" {
		schedule += " (" + t.Weekdays + ")"
	}
	fmt.Fprintf(w, "      %s, %s priority", schedule, t.Priority)
	if t.Category != "" {
		fmt.Fprintf(w, ", %s", t.Category)
	}
	if t.GoalTime != "" {
		fmt.Fprintf(w, ", goal %s", t.GoalTime)
	}
	fmt.Fprintln(w)
}

func init() {
	listCmd.Flags().StringVar(&filterCategory, "category", "", "only tasks in this category")
	listCmd.Flags().BoolVar(&importantOnly, "important", false, "only important tasks")
	cli.AddFormatFlag(listCmd, &listFormat)
}
