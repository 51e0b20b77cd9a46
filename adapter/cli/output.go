package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// AddFormatFlag registers --format on cmd.
func AddFormatFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "format", "o", FormatText, "output format (text, json, yaml)")
}

// Render writes v as JSON or YAML, or calls text for the human format.
func Render(cmd *cobra.Command, format string, v any, text func(w io.Writer)) error {
	w := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "", FormatText:
		text(w)
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown format %q, use text, json or yaml", format)
	}
}

// RequireApp returns the application or an error when it is not wired.
func RequireApp() (*App, error) {
	a := GetApp()
	if a == nil {
		return nil, fmt.Errorf("application not initialized - database connection required")
	}
	return a, nil
}
