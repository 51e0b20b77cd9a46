package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var streakFormat string

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the current and best streak",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}

		streak, err := app.GetStreakHandler.Handle(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load streak: %w", err)
		}

		return Render(cmd, streakFormat, streak, func(w io.Writer) {
			fmt.Fprintf(w, "Current streak: %s\n", days(streak.Current))
			fmt.Fprintf(w, "Best streak:    %s\n", days(streak.Best))
			if streak.LastAchieved != "" {
				fmt.Fprintf(w, "Last achieved:  %s\n", streak.LastAchieved)
			}
		})
	},
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func init() {
	AddFormatFlag(streakCmd, &streakFormat)
	rootCmd.AddCommand(streakCmd)
}
