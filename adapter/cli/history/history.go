// Package history implements the "dayquest history" command.
package history

import (
	"fmt"
	"io"
	"strings"

	"github.com/felixgeelhaar/dayquest/adapter/cli"
	"github.com/felixgeelhaar/dayquest/internal/history/application/queries"
	"github.com/felixgeelhaar/dayquest/internal/history/domain"
	"github.com/spf13/cobra"
)

var (
	periodDays int
	activeOnly bool
	format     string
)

const barWidth = 20

// Cmd prints completion statistics.
var Cmd = &cobra.Command{
	Use:   "history",
	Short: "Show completion rates for today, this week and recent days",
	Long: `Show how many items were done today and this week, followed by a
per-day timeline. The period defaults to the preferences file value.

Examples:
  dayquest history
  dayquest history --days 30 --active-only
  dayquest history --format yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		days := periodDays
		if !cmd.Flags().Changed("days") && app.Preferences != nil {
			prefs, err := app.Preferences.Load()
			if err != nil {
				return fmt.Errorf("failed to read preferences: %w", err)
			}
			days = prefs.HistoryPeriodDays
		}

		summary, err := app.HistorySummaryHandler.Handle(cmd.Context(), queries.HistorySummaryQuery{
			Today:      app.Today(),
			PeriodDays: days,
			ActiveOnly: activeOnly,
		})
		if err != nil {
			return fmt.Errorf("failed to build history: %w", err)
		}

		return cli.Render(cmd, format, summary, func(w io.Writer) {
			printSummary(w, summary, days)
		})
	},
}

func printSummary(w io.Writer, s *queries.HistorySummary, days int) {
	fmt.Fprintf(w, "Today:     %d/%d done (%d%%)\n", s.Today.Done, s.Today.Total, domain.CompletionRate(s.Today.Done, s.Today.Total))
	fmt.Fprintf(w, "This week: %d/%d done (%d%%), %d deferred\n", s.Week.Done, s.Week.Total, s.WeekRate, s.Week.Deferred)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Last %d days:\n", days)
	if len(s.Timeline) == 0 {
		fmt.Fprintln(w, "  no activity")
		return
	}
	for _, d := range s.Timeline {
		filled := d.Rate * barWidth / 100
		bar := strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled)
		fmt.Fprintf(w, "  %s  %s  %3d%%  %d/%d\n", d.Date, bar, d.Rate, d.Done, d.Total)
	}
}

func init() {
	Cmd.Flags().IntVarP(&periodDays, "days", "d", 7, "number of days in the timeline")
	Cmd.Flags().BoolVar(&activeOnly, "active-only", false, "hide days without items")
	cli.AddFormatFlag(Cmd, &format)
}
