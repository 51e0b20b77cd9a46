// Package settings implements the "dayquest settings" command group backed
// by the preferences file.
package settings

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/felixgeelhaar/dayquest/adapter/cli"
	"github.com/felixgeelhaar/dayquest/internal/reminders/domain"
	"github.com/felixgeelhaar/dayquest/pkg/config"
	"github.com/spf13/cobra"
)

var settingsFormat string

var Cmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage notification and history preferences",
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := preferences()
		if err != nil {
			return err
		}
		prefs, err := store.Load()
		if err != nil {
			return err
		}
		return cli.Render(cmd, settingsFormat, prefs, func(w io.Writer) {
			printPreferences(w, store.Path(), prefs)
		})
	},
}

var notificationsCmd = &cobra.Command{
	Use:       "notifications <on|off>",
	Short:     "Turn all notifications on or off",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		on, err := parseSwitch(args[0])
		if err != nil {
			return err
		}
		return update(cmd, func(p *config.Preferences) { p.NotificationsEnabled = on })
	},
}

var goalRemindersCmd = &cobra.Command{
	Use:       "goal-reminders <on|off>",
	Short:     "Turn reminders at task goal times on or off",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		on, err := parseSwitch(args[0])
		if err != nil {
			return err
		}
		return update(cmd, func(p *config.Preferences) { p.GoalRemindersEnabled = on })
	},
}

var historyDaysCmd = &cobra.Command{
	Use:   "history-days <n>",
	Short: "Set the default history period",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		days, err := strconv.Atoi(args[0])
		if err != nil || days < 1 {
			return fmt.Errorf("history period must be a positive number of days")
		}
		return update(cmd, func(p *config.Preferences) { p.HistoryPeriodDays = days })
	},
}

var fixedRemindersCmd = &cobra.Command{
	Use:   "fixed-reminders <HH:MM>...",
	Short: "Replace the fixed daily reminder times",
	Long: `Replace the fixed daily reminder times.

Example:
  dayquest settings fixed-reminders 07:00 12:30 21:00`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fixed := make([]config.FixedReminder, 0, len(args))
		for _, arg := range args {
			tod, err := parseTimeOfDay(arg)
			if err != nil {
				return err
			}
			fixed = append(fixed, config.FixedReminder{
				ID:     fmt.Sprintf("fixed_%02d%02d", tod.Hour, tod.Minute),
				Hour:   tod.Hour,
				Minute: tod.Minute,
			})
		}
		return update(cmd, func(p *config.Preferences) { p.FixedReminders = fixed })
	},
}

var confirmReset bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all tasks, history and streak and restore default preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmReset {
			return errors.New("refusing to delete all data without --yes")
		}
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		if app.ResetData == nil {
			return errors.New("reset requires database connection")
		}
		if err := app.ResetData(cmd.Context()); err != nil {
			return fmt.Errorf("failed to reset data: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "All local data deleted.")
		return nil
	},
}

func preferences() (*config.PreferencesStore, error) {
	app, err := cli.RequireApp()
	if err != nil {
		return nil, err
	}
	if app.Preferences == nil {
		return nil, errors.New("preferences not configured")
	}
	return app.Preferences, nil
}

func update(cmd *cobra.Command, fn func(*config.Preferences)) error {
	store, err := preferences()
	if err != nil {
		return err
	}
	prefs, err := store.Update(fn)
	if err != nil {
		return err
	}
	return cli.Render(cmd, settingsFormat, prefs, func(w io.Writer) {
		fmt.Fprintln(w, "Preferences saved.")
	})
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes":
		return true, nil
	case "off", "false", "no":
		return false, nil
	default:
		return false, fmt.Errorf("expected on or off, got %q", s)
	}
}

func parseTimeOfDay(s string) (domain.TimeOfDay, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return domain.TimeOfDay{}, fmt.Errorf("invalid time %q, use HH:MM", s)
	}
	hour, err1 := strconv.Atoi(hh)
	minute, err2 := strconv.Atoi(mm)
	if err1 != nil || err2 != nil {
		return domain.TimeOfDay{}, fmt.Errorf("invalid time %q, use HH:MM", s)
	}
	return domain.NewTimeOfDay(hour, minute)
}

func printPreferences(w io.Writer, path string, p config.Preferences) {
	fmt.Fprintf(w, "File:            %s\n", path)
	fmt.Fprintf(w, "Notifications:   %s\n", onOff(p.NotificationsEnabled))
	fmt.Fprintf(w, "Goal reminders:  %s\n", onOff(p.GoalRemindersEnabled))
	fmt.Fprintf(w, "History period:  %d days\n", p.HistoryPeriodDays)
	times := make([]string, 0, len(p.FixedReminders))
	for _, f := range p.FixedReminders {
		times = append(times, fmt.Sprintf("%02d:%02d", f.Hour, f.Minute))
	}
	fmt.Fprintf(w, "Fixed reminders: %s\n", strings.Join(times, ", "))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func init() {
	Cmd.PersistentFlags().StringVarP(&settingsFormat, "format", "o", cli.FormatText, "output format (text, json, yaml)")
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(notificationsCmd)
	Cmd.AddCommand(goalRemindersCmd)
	Cmd.AddCommand(historyDaysCmd)
	Cmd.AddCommand(fixedRemindersCmd)

	resetCmd.Flags().BoolVar(&confirmReset, "yes", false, "confirm deleting all data")
	Cmd.AddCommand(resetCmd)
}
