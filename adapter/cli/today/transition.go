package today

import (
	"fmt"
	"strconv"

	"github.com/felixgeelhaar/dayquest/adapter/cli"
	"github.com/felixgeelhaar/dayquest/internal/today/application/services"
	"github.com/felixgeelhaar/dayquest/internal/today/domain"
	"github.com/spf13/cobra"
)

var deferTo string

var doneCmd = transitionCommand("done", "Mark an item done", domain.StatusDone)
var undoCmd = transitionCommand("undo", "Move an item back to TODO", domain.StatusTodo)
var skipCmd = transitionCommand("skip", "Skip an item for the day", domain.StatusSkipped)
var deferCmd = transitionCommand("defer", "Push an item to a later day (tomorrow by default)", domain.StatusDeferred)

func transitionCommand(use, short string, to domain.ItemStatus) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <item-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransition(cmd, args[0], to)
		},
	}
}

func runTransition(cmd *cobra.Command, rawID string, to domain.ItemStatus) error {
	app, err := cli.RequireApp()
	if err != nil {
		return err
	}
	itemID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid item id %q", rawID)
	}

	command := services.TransitionCommand{ItemID: itemID, To: to, Now: app.Now()}
	if to == domain.StatusDeferred && deferTo != "" {
		target, err := domain.ParseDateKey(deferTo)
		if err != nil {
			return fmt.Errorf("invalid --to, use YYYY-MM-DD: %w", err)
		}
		command.DeferTo = target
	}

	outcome, err := app.Refresher.ApplyStatusTransition(cmd.Context(), command)
	if err != nil {
		return fmt.Errorf("failed to update item %d: %w", itemID, err)
	}

	out := cmd.OutOrStdout()
	item := outcome.Item
	if item.Status == domain.StatusDeferred {
		fmt.Fprintf(out, "Item #%d deferred to %s\n", item.ID, item.DeferredTo)
		if !outcome.DeferredItemCreated {
			fmt.Fprintf(out, "  (the task already had an item on %s)\n", item.DeferredTo)
		}
	} else {
		fmt.Fprintf(out, "Item #%d: %s -> %s\n", item.ID, outcome.Previous, item.Status)
	}
	for _, q := range outcome.Achieved {
		fmt.Fprintf(out, "Quest complete: %s\n", q.Title)
	}
	fmt.Fprintf(out, "Streak: %d (best %d)\n", outcome.Streak.Current, outcome.Streak.Best)
	return nil
}

func init() {
	deferCmd.Flags().StringVar(&deferTo, "to", "", "target date (YYYY-MM-DD), defaults to the next day")
}
