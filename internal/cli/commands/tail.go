package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/tztail/pkg/config"
	"github.com/ccollicutt/tztail/pkg/output"
	"github.com/ccollicutt/tztail/pkg/parser"
	"github.com/ccollicutt/tztail/pkg/timestamp"
)

// TailOptions holds command-line options for rewriting log lines.
type TailOptions struct {
	Timezone       string
	SourceTimezone string
	Format         string
	ConfigFile     string
	Color          config.ColorMode
	Verbose        bool
}

// NewTailCommand creates the command that rewrites timestamps in its input.
// It is the root command of tztail.
func NewTailCommand() *cobra.Command {
	opts := &TailOptions{Color: config.DefaultColor}

	cmd := &cobra.Command{
		Use:   "tztail [FILE...]",
		Short: "Rewrite log timestamps into another timezone",
		Long: `tztail reads log lines from files or standard input and rewrites the first
timestamp on each line into the requested timezone. Everything else on the
line is printed unchanged, in the original order.

Without --format, common timestamp formats are detected automatically
(RFC 3339, ISO 8601, syslog, Apache/NGINX, Python logging, Unix epochs, ...)
and rewritten as RFC 3339. With --format, only timestamps in that strftime
format are recognized, and they keep that format.

Timestamps without an offset are read as UTC unless --source-timezone says
otherwise. Lines without a recognizable timestamp are printed as they are.

Only the leftmost timestamp on a line is rewritten. A bare 10 or 13 digit
number between 1970 and 2100 counts as a Unix epoch, so an id such as
"user=1234567890" ahead of the real timestamp is the one rewritten. Use
--format or a config pattern for such logs.

FILE may be "-" for standard input, or a glob pattern such as "logs/**/*.log".
Files named detect, validate or version are taken as subcommands; write them
with a directory, e.g. ./detect.

Environment:
  TZTAIL_TIMEZONE, TZTAIL_SOURCE_TIMEZONE, TZTAIL_FORMAT override the config
  file; flags override both.

Example:
  kubectl logs my-pod | tztail -t America/New_York
  tztail -t Europe/Berlin /var/log/app.log
  tztail -t UTC -s Asia/Tokyo --format "%Y/%m/%d %H:%M:%S" batch.log
  tztail -c tztail.yaml "logs/**/*.log"`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTail(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Timezone, "timezone", "t", "", "Destination timezone (IANA name, UTC or Local)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "strftime format of the timestamps, e.g. \"%Y/%m/%d %H:%M:%S\"")
	cmd.Flags().StringVarP(&opts.SourceTimezone, "source-timezone", "s", "", "Timezone of timestamps without an offset (default UTC)")
	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "YAML config file")
	cmd.Flags().Var(&opts.Color, "color", "Highlight rewritten timestamps: auto, always, never")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Print diagnostics to stderr")

	return cmd
}

func runTail(cmd *cobra.Command, args []string, opts *TailOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)

	cfg, err := loadConfig(ctx, opts.ConfigFile)
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, cfg, opts)

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.RequireTimezone(); err != nil {
		return err
	}

	p, err := newParser(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	colorize := colorEnabled(cfg.Color, out)

	rw := timestamp.NewRewriter(p, cfg.Location(),
		timestamp.WithHighlight(output.Highlighter(colorize)),
		timestamp.WithSkipHook(func(value string, err error) {
			logger.Debug("timestamp left unchanged", "value", value, "err", err)
		}),
	)

	var source parser.LineSource
	if len(args) == 0 {
		source = parser.NewReaderSource(cmd.InOrStdin())
	} else {
		files, err := parser.ExpandGlobs(args)
		if err != nil {
			return err
		}
		logger.Debug("inputs", "files", files)
		source = parser.NewFileSource(files, parser.WithStdin(cmd.InOrStdin()))
	}
	defer source.Close()

	logger.Debug("rewriting",
		"timezone", cfg.Location(),
		"source_timezone", cfg.SourceLocation(),
		"policy", policyName(cfg),
		"color", colorize)

	start := time.Now()
	var lines, rewritten int
	for {
		line, err := source.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		text, changed := rw.RewriteLine(line.Content)
		if _, err := fmt.Fprintln(out, text); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}

		lines++
		if changed {
			rewritten++
		}
	}

	logger.Debug("done", "lines", lines, "rewritten", rewritten, "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

// loadConfig reads the config file if one was given, otherwise starts from
// defaults with environment overrides. The result is not validated yet so
// flags can still override it.
func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	if path == "" {
		return config.FromEnvironment(), nil
	}
	cfg, err := config.Read(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// applyFlagOverrides copies explicitly set flags over the configuration.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config, opts *TailOptions) {
	flags := cmd.Flags()
	if flags.Changed("timezone") {
		cfg.Timezone = opts.Timezone
	}
	if flags.Changed("source-timezone") {
		cfg.SourceTimezone = opts.SourceTimezone
	}
	if flags.Changed("format") {
		cfg.Format = opts.Format
	}
	if flags.Changed("color") {
		cfg.Color = opts.Color
	}
}

// newParser selects the fixed-format policy when a format is configured and
// auto-detection otherwise.
func newParser(cfg *config.Config) (timestamp.Parser, error) {
	popts := []timestamp.Option{timestamp.WithSourceLocation(cfg.SourceLocation())}

	if cfg.Format != "" {
		p, err := timestamp.NewFixedParser(cfg.Format, popts...)
		if err != nil {
			return nil, fmt.Errorf("invalid --format: %w", err)
		}
		return p, nil
	}

	popts = append(popts, timestamp.WithFormats(cfg.CompiledPatterns()...))
	return timestamp.NewAutoParser(popts...), nil
}

func policyName(cfg *config.Config) string {
	if cfg.Format != "" {
		return "fixed " + cfg.Format
	}
	return fmt.Sprintf("auto (%d custom patterns)", len(cfg.CompiledPatterns()))
}

// colorEnabled resolves the color mode. Auto only colors a real terminal on
// standard output.
func colorEnabled(mode config.ColorMode, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if f, ok := w.(*os.File); !ok || f != os.Stdout {
		return false
	}
	return term.FromEnv().IsColorEnabled()
}
