package task

import (
	"fmt"
	"strconv"

	"github.com/felixgeelhaar/dayquest/adapter/cli"
	"github.com/felixgeelhaar/dayquest/internal/tasks/application/commands"
	"github.com/felixgeelhaar/dayquest/internal/tasks/domain"
	"github.com/spf13/cobra"
)

type definitionFlags struct {
	title      string
	category   string
	priority   string
	important  bool
	recurrence string
	weekdays   string
	goalTime   string
}

func (f *definitionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "task title")
	cmd.Flags().StringVar(&f.category, "category", "", "free-form category")
	cmd.Flags().StringVarP(&f.priority, "priority", "p", "", "priority (low, medium, high)")
	cmd.Flags().BoolVar(&f.important, "important", false, "count toward the important quest")
	cmd.Flags().StringVarP(&f.recurrence, "repeat", "r", "daily", "recurrence (daily, weekly, monthly, custom)")
	cmd.Flags().StringVar(&f.weekdays, "days", "", "weekdays for weekly/custom, e.g. mon,wed,fri")
	cmd.Flags().StringVar(&f.goalTime, "goal", "", "goal time HH:MM (empty to clear)")
}

var addFlags definitionFlags

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a task definition",
	Long: `Add a recurring task.

Examples:
  dayquest task add "Stretch" --goal 07:30
  dayquest task add "Gym" --repeat custom --days mon,wed,fri --important
  dayquest task add "Pay rent" --repeat monthly --category Home`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		if len(args) == 1 {
			addFlags.title = args[0]
		}
		mask, err := domain.ParseWeekdayMask(addFlags.weekdays)
		if err != nil {
			return err
		}

		result, err := app.SaveTaskHandler.Handle(cmd.Context(), commands.SaveTaskCommand{
			Title:      addFlags.title,
			Category:   addFlags.category,
			Priority:   addFlags.priority,
			Important:  addFlags.important,
			Recurrence: addFlags.recurrence,
			Mask:       mask,
			GoalTime:   addFlags.goalTime,
			Now:        app.Now(),
		})
		if err != nil {
			return fmt.Errorf("failed to add task: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Task #%d added.\n", result.TaskID)
		return nil
	},
}

var editFlags definitionFlags

var editCmd = &cobra.Command{
	Use:   "edit <task-id>",
	Short: "Edit a task definition; omitted flags keep their value",
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

		current, err := app.GetTaskHandler.Handle(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to load task %d: %w", id, err)
		}

		save := commands.SaveTaskCommand{
			TaskID:     id,
			Title:      current.Title,
			Category:   current.Category,
			Priority:   current.Priority,
			Important:  current.Important,
			Recurrence: current.Recurrence,
			GoalTime:   current.GoalTime,
			Now:        app.Now(),
		}
		weekdays := current.Weekdays

		flags := cmd.Flags()
		if flags.Changed("title") {
			save.Title = editFlags.title
		}
		if flags.Changed("category") {
			save.Category = editFlags.category
		}
		if flags.Changed("priority") {
			save.Priority = editFlags.priority
		}
		if flags.Changed("important") {
			save.Important = editFlags.important
		}
		if flags.Changed("repeat") {
			save.Recurrence = editFlags.recurrence
		}
		if flags.Changed("days") {
			weekdays = editFlags.weekdays
		}
		if flags.Changed("goal") {
			save.GoalTime = editFlags.goalTime
		}
		if save.Mask, err = domain.ParseWeekdayMask(weekdays); err != nil {
			return err
		}

		if _, err := app.SaveTaskHandler.Handle(cmd.Context(), save); err != nil {
			return fmt.Errorf("failed to update task %d: %w", id, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Task #%d updated.\n", id)
		return nil
	},
}

func init() {
	addFlags.register(addCmd)
	editFlags.register(editCmd)
}
