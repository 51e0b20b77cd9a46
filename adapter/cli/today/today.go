// Package today implements the "dayquest today" command group.
package today

import (
	"fmt"
	"io"
	"strings"

	"github.com/felixgeelhaar/dayquest/adapter/cli"
	todayQueries "github.com/felixgeelhaar/dayquest/internal/today/application/queries"
	"github.com/felixgeelhaar/dayquest/internal/today/domain"
	"github.com/spf13/cobra"
)

var (
	dateFlag   string
	formatFlag string
)

// Cmd shows the checklist for a date, generating it first when needed.
var Cmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's checklist, quests and streak",
	Long: `Materialize the items for the day from your task definitions, bring the
daily quests up to date and print the checklist.

Examples:
  dayquest today
  dayquest today --date 2026-02-14 --format json
  dayquest today done 12
  dayquest today defer 12 --to 2026-02-20`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		date, err := resolveDate(app)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if _, err := app.Refresher.EnsureTodayReady(ctx, date, app.Now()); err != nil {
			return fmt.Errorf("failed to prepare %s: %w", date, err)
		}
		view, err := app.TodayTasksHandler.Handle(ctx, date)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", date, err)
		}

		return cli.Render(cmd, formatFlag, view, func(w io.Writer) {
			printView(w, view)
		})
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Generate items and resync quests and streak without printing the list",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		date, err := resolveDate(app)
		if err != nil {
			return err
		}

		result, err := app.Refresher.EnsureTodayReady(cmd.Context(), date, app.Now())
		if err != nil {
			return fmt.Errorf("failed to refresh %s: %w", date, err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d item(s) generated\n", result.Date, result.Generated)
		for _, q := range result.Achieved {
			fmt.Fprintf(out, "Quest complete: %s\n", q.Title)
		}
		fmt.Fprintf(out, "Streak: %d (best %d)\n", result.Streak.Current, result.Streak.Best)
		return nil
	},
}

func resolveDate(app *cli.App) (domain.DateKey, error) {
	if dateFlag == "" {
		return app.Today(), nil
	}
	date, err := domain.ParseDateKey(dateFlag)
	if err != nil {
		return "", fmt.Errorf("invalid --date, use YYYY-MM-DD: %w", err)
	}
	return date, nil
}

func printView(w io.Writer, view *todayQueries.TodayView) {
	fmt.Fprintf(w, "%s  (%d/%d done)\n", view.Date, view.Done, view.Total)
	fmt.Fprintln(w, strings.Repeat("-", 48))
	if len(view.Items) == 0 {
		fmt.Fprintln(w, "Nothing scheduled. Add a task with \"dayquest task add\".")
	}
	for _, row := range view.Items {
		fmt.Fprintf(w, "%s #%-4d %s%s\n", statusIcon(row.Status), row.ItemID, row.Title, details(row))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Quests:")
	for _, q := range view.Quests {
		mark := "[ ]"
		if q.Achieved {
			mark = "[x]"
		}
		fmt.Fprintf(w, "  %s %s  %d/%d\n", mark, q.Title, q.Progress, q.Target)
	}

	fmt.Fprintf(w, "\nStreak: %d (best %d)\n", view.Streak.Current, view.Streak.Best)
}

func statusIcon(status domain.ItemStatus) string {
	switch status {
	case domain.StatusDone:
		return "[x]"
	case domain.StatusDeferred:
		return "[>]"
	case domain.StatusSkipped:
		return "[-]"
	default:
		return "[ ]"
	}
}

func details(row domain.TaskRow) string {
	var parts []string
	if row.Important {
		parts = append(parts, "important")
	}
	if row.Category != "" {
		parts = append(parts, row.Category)
	}
	if row.GoalTime != "" {
		parts = append(parts, "at "+row.GoalTime)
	}
	if row.Status == domain.StatusDeferred && row.DeferredTo != "" {
		parts = append(parts, "deferred to "+row.DeferredTo.String())
	}
	if len(parts) == 0 {
		return ""
	}
	return "  (" + strings.Join(parts, ", ") + ")"
}

func init() {
	Cmd.PersistentFlags().StringVar(&dateFlag, "date", "", "date to operate on (YYYY-MM-DD), defaults to today")
	cli.AddFormatFlag(Cmd, &formatFlag)

	Cmd.AddCommand(refreshCmd)
	Cmd.AddCommand(doneCmd)
	Cmd.AddCommand(undoCmd)
	Cmd.AddCommand(skipCmd)
	Cmd.AddCommand(deferCmd)
}
