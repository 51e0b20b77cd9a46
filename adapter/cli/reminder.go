package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/felixgeelhaar/dayquest/internal/reminders/domain"
	"github.com/spf13/cobra"
)

var (
	reminderFormat string
	reminderDays   int
)

var reminderCmd = &cobra.Command{
	Use:   "reminder",
	Short: "Inspect scheduled reminders",
}

var reminderNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the next reminder and how long until it fires",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}

		next, delay, err := app.ReminderPlanner.Next(cmd.Context(), app.Now())
		if err != nil {
			return fmt.Errorf("failed to plan reminders: %w", err)
		}

		payload := map[string]any{"reminder": next, "in_seconds": int64(delay / time.Second)}
		return Render(cmd, reminderFormat, payload, func(w io.Writer) {
			if next == nil {
				fmt.Fprintln(w, "No reminders scheduled.")
				return
			}
			fmt.Fprintf(w, "%s  %s  (in %s)\n", next.At.Format("2006-01-02 15:04"), describe(*next), delay.Round(time.Minute))
		})
	},
}

var reminderListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List upcoming reminders",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}

		upcoming, err := app.ReminderPlanner.Upcoming(cmd.Context(), app.Now(), reminderDays)
		if err != nil {
			return fmt.Errorf("failed to plan reminders: %w", err)
		}
		if upcoming == nil {
			upcoming = []domain.Reminder{}
		}

		return Render(cmd, reminderFormat, upcoming, func(w io.Writer) {
			if len(upcoming) == 0 {
				fmt.Fprintln(w, "No reminders scheduled.")
				return
			}
			for _, r := range upcoming {
				fmt.Fprintf(w, "%s  %s\n", r.At.Format("2006-01-02 15:04"), describe(r))
			}
		})
	},
}

func describe(r domain.Reminder) string {
	if r.Kind == domain.KindGoal {
		return fmt.Sprintf("goal: %s", r.Title)
	}
	return r.Title
}

func init() {
	AddFormatFlag(reminderNextCmd, &reminderFormat)
	AddFormatFlag(reminderListCmd, &reminderFormat)
	reminderListCmd.Flags().IntVar(&reminderDays, "days", 1, "number of calendar days to plan")
	reminderCmd.AddCommand(reminderNextCmd)
	reminderCmd.AddCommand(reminderListCmd)
	rootCmd.AddCommand(reminderCmd)
}
