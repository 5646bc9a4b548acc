package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/tztail/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a tztail configuration file without reading any logs.

Checks:
  - YAML syntax
  - Timezone names (timezone, source_timezone)
  - strftime format validity
  - Pattern regex validity and layouts
  - Color mode`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Validating %s...\n", configPath)

	// Load and validate config
	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	// Report what we found
	fmt.Fprintf(w, "\nConfiguration valid!\n")
	if cfg.Timezone != "" {
		fmt.Fprintf(w, "  Timezone:        %s\n", cfg.Location())
	} else {
		fmt.Fprintf(w, "  Timezone:        (not set, pass --timezone or set %s)\n", config.EnvTimezone)
	}
	fmt.Fprintf(w, "  Source timezone: %s\n", cfg.SourceLocation())
	fmt.Fprintf(w, "  Color:           %s\n", cfg.Color)

	if cfg.Format != "" {
		fmt.Fprintf(w, "  Format:          %s (fixed)\n", cfg.Format)
		if len(cfg.Patterns) > 0 {
			fmt.Fprintf(w, "\nWarning: patterns are ignored when format is set\n")
		}
		return nil
	}

	fmt.Fprintf(w, "  Format:          auto-detect\n")
	fmt.Fprintf(w, "  Patterns:        %d\n", len(cfg.Patterns))

	if len(cfg.Patterns) > 0 {
		fmt.Fprintf(w, "\nPatterns (tried before the built-in formats):\n")
		for i, f := range cfg.CompiledPatterns() {
			fmt.Fprintf(w, "  %d. %s\n", i+1, f.Name)
			fmt.Fprintf(w, "     pattern: '%s'\n", f.PatternStr)
			fmt.Fprintf(w, "     layout:  \"%s\"\n", f.Layout)
		}
	}

	return nil
}
