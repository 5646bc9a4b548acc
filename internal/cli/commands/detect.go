package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/tztail/pkg/config"
	"github.com/ccollicutt/tztail/pkg/detector"
	"github.com/ccollicutt/tztail/pkg/output"
	"github.com/ccollicutt/tztail/pkg/parser"
	"github.com/ccollicutt/tztail/pkg/timestamp"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	Output         string
	SampleSize     int
	ShowAll        bool
	Quiet          bool
	WriteConfig    string
	Timezone       string
	SourceTimezone string
	ConfigFile     string
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect <log-file>",
		Short: "Detect timestamp format in a log file",
		Long: `Analyze a log file to find out which timestamps tztail would rewrite.

Samples lines from the file and credits each one to the format tztail would
recognize on it. Reports the detected format with confidence score and a
ready-to-use YAML configuration snippet. With --timezone, also shows the
sample line as tztail would print it.

Formats whose day and month order is ambiguous (01/05/2024) are reported but
never rewritten; add a pattern with an explicit layout for them.

Optionally generates a starter config file with --write-config.

Example:
  tztail detect /var/log/myapp.log
  tztail detect -t America/New_York /var/log/myapp.log
  tztail detect --sample 500 --all /var/log/large.log
  tztail detect -w tztail.yaml -t Europe/Berlin /var/log/app.log`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", detector.DefaultSampleSize, "Number of lines to sample")
	cmd.Flags().BoolVar(&opts.ShowAll, "all", false, "Show all detected formats, not just the best match")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Print only the best match")
	cmd.Flags().StringVarP(&opts.WriteConfig, "write-config", "w", "", "Write starter config to file (will not overwrite)")
	cmd.Flags().StringVarP(&opts.Timezone, "timezone", "t", "", "Preview the sample line rewritten into this timezone")
	cmd.Flags().StringVarP(&opts.SourceTimezone, "source-timezone", "s", "", "Timezone of timestamps without an offset (default UTC)")
	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "YAML config file whose patterns are included")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, opts *DetectOptions) error {
	logFile := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	w := cmd.OutOrStdout()

	// Check file exists
	if logFile != parser.StdinName {
		if _, err := os.Stat(logFile); os.IsNotExist(err) {
			return fmt.Errorf("log file not found: %s", logFile)
		}
	}

	formatter, err := output.NewFormatter(opts.Output, output.FormatOptions{
		ShowAll: opts.ShowAll,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return err
	}

	cfg, err := loadConfig(ctx, opts.ConfigFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("timezone") {
		cfg.Timezone = opts.Timezone
	}
	if cmd.Flags().Changed("source-timezone") {
		cfg.SourceTimezone = opts.SourceTimezone
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	auto := timestamp.NewAutoParser(
		timestamp.WithSourceLocation(cfg.SourceLocation()),
		timestamp.WithFormats(cfg.CompiledPatterns()...),
	)
	d := detector.New(
		detector.WithSampleSize(opts.SampleSize),
		detector.WithParser(auto),
	)

	// Run detection
	result, err := d.DetectFromFile(ctx, logFile)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	report := output.NewReport(result, logFile)
	if cfg.Location() != nil {
		rw := timestamp.NewRewriter(auto, cfg.Location())
		report.AddPreview(cfg.Location().String(), rw.Rewrite)
	}

	// Write config file if requested
	if opts.WriteConfig != "" {
		if err := writeStarterConfig(result, logFile, cfg, opts.WriteConfig); err != nil {
			return err
		}
		if opts.Output != "json" {
			fmt.Fprintf(w, "Wrote starter config to: %s\n\n", opts.WriteConfig)
		}
	}

	if err := formatter.Format(ctx, report, w); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}
	return nil
}

// writeStarterConfig generates a starter config file with the detected format.
func writeStarterConfig(result *detector.DetectionResult, logFile string, cfg *config.Config, configPath string) error {
	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s (will not overwrite)", configPath)
	}

	// Need a detected format to generate config
	if !result.HasMatch() {
		return fmt.Errorf("cannot generate config: no timestamp format detected")
	}

	content := generateStarterConfig(logFile, result.BestMatch(), cfg)

	// #nosec G306 - config file doesn't need restrictive permissions
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// generateStarterConfig creates a YAML config template.
func generateStarterConfig(logFile string, match *detector.FormatMatch, cfg *config.Config) string {
	timezone := "UTC"
	if cfg != nil && cfg.Timezone != "" {
		timezone = cfg.Timezone
	}
	sourceTimezone := config.DefaultSourceTimezone
	if cfg != nil && cfg.SourceTimezone != "" {
		sourceTimezone = cfg.SourceTimezone
	}

	var b strings.Builder
	fmt.Fprintf(&b, `# tztail configuration
# Generated by: tztail detect %s
# Detected format: %s (%.0f%% confidence)

# Destination timezone (IANA name, UTC or Local)
timezone: %s

# Timezone assumed for timestamps without an offset
source_timezone: %s

# Highlight rewritten timestamps: auto, always, never
color: auto

# Fixed strftime format. When set, only this format is rewritten and
# patterns below are ignored.
# format: "%%Y/%%m/%%d %%H:%%M:%%S"

# Extra formats, tried before the built-in ones.
patterns:
`, logFile, match.Format.Name, match.Confidence*100, timezone, sourceTimezone)

	if match.Format.Ambiguous {
		b.WriteString("  # Check the day and month order of this layout against your logs.\n")
	}
	fmt.Fprintf(&b, "  - name: %q\n", match.Format.Name)
	fmt.Fprintf(&b, "    pattern: '%s'\n", match.Format.PatternStr)
	fmt.Fprintf(&b, "    layout: \"%s\"\n", match.Format.Layout)

	return b.String()
}
