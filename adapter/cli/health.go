package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/felixgeelhaar/dayquest/pkg/observability"
	"github.com/spf13/cobra"
)

var healthFormat string

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check database, lock and broker connectivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}
		if app.Health == nil {
			return fmt.Errorf("health checks not configured")
		}

		health := app.Health.Check(cmd.Context())
		err = Render(cmd, healthFormat, health, func(w io.Writer) {
			fmt.Fprintf(w, "status: %s\n", health.Status)
			names := make([]string, 0, len(health.Checks))
			for name := range health.Checks {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				check := health.Checks[name]
				fmt.Fprintf(w, "  %-10s %s %s\n", name, check.Status, check.Message)
			}
		})
		if err != nil {
			return err
		}
		if health.Status == observability.HealthStatusUnhealthy {
			return fmt.Errorf("unhealthy")
		}
		return nil
	},
}

func init() {
	AddFormatFlag(healthCmd, &healthFormat)
	rootCmd.AddCommand(healthCmd)
}
