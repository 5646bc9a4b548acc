package output

import (
	"context"
	"fmt"
	"io"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	best := report.Best()
	if best == nil {
		fmt.Fprintf(w, "%s: no timestamp format detected\n", report.File)
		return nil
	}
	fmt.Fprintf(w, "%s: %s (%.1f%% confidence)\n", report.File, best.Name, best.Confidence*100)
	return nil
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	// Header
	fmt.Fprintln(w, "=== Timestamp Format Detection ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "File: %s\n", report.File)
	fmt.Fprintf(w, "Lines sampled: %d\n", report.SampledLines)
	fmt.Fprintf(w, "Lines tztail would rewrite: %d\n", report.ParsedLines)
	fmt.Fprintln(w)

	best := report.Best()
	if best == nil {
		fmt.Fprintln(w, "No timestamp format detected.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Tip: The file may use an uncommon format.")
		fmt.Fprintln(w, "Add it under patterns: in a config file, or pass --format.")
		return nil
	}

	fmt.Fprintf(w, "Detected Format: %s\n", best.Name)
	fmt.Fprintf(w, "Confidence: %.1f%% (%d/%d lines matched)\n",
		best.Confidence*100, best.MatchCount, report.SampledLines)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Sample match:\n  %s\n", best.SampleLine)
	fmt.Fprintf(w, "Timestamp: %s\n", best.Timestamp)
	fmt.Fprintf(w, "Parsed as: %s\n", best.ParsedTime.Format("2006-01-02 15:04:05 MST"))
	if best.Preview != "" {
		fmt.Fprintf(w, "Rewritten (%s):\n  %s\n", report.Timezone, best.Preview)
	}
	fmt.Fprintln(w)

	if report.AmbiguityNote != "" {
		fmt.Fprintf(w, "Note: %s\n", report.AmbiguityNote)
		fmt.Fprintln(w)
	}

	// YAML snippet
	fmt.Fprintln(w, "--- Configuration snippet (copy to your config file) ---")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "patterns:")
	fmt.Fprintf(w, "  - name: %q\n", best.Name)
	fmt.Fprintf(w, "    pattern: '%s'\n", best.Pattern)
	fmt.Fprintf(w, "    layout: \"%s\"\n", best.Layout)
	fmt.Fprintln(w)

	// Show alternatives if requested
	matches := report.visibleMatches(f.opts)
	if len(matches) > 1 {
		fmt.Fprintln(w, "--- Alternative formats detected ---")
		for i, m := range matches[1:] {
			fmt.Fprintf(w, "%d. %s (%.1f%% confidence)\n", i+2, m.Name, m.Confidence*100)
			fmt.Fprintf(w, "   pattern: '%s'\n", m.Pattern)
			fmt.Fprintf(w, "   layout: \"%s\"\n", m.Layout)
		}
		fmt.Fprintln(w)
	}

	return nil
}
