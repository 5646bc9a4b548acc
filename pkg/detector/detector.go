// Package detector samples a log file and reports which timestamp formats
// tztail would recognize in it.
package detector

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/ccollicutt/tztail/pkg/parser"
	"github.com/ccollicutt/tztail/pkg/timestamp"
)

// DefaultSampleSize is the number of non-blank lines sampled by default.
const DefaultSampleSize = 100

// DetectionResult holds the result of analyzing a log file.
type DetectionResult struct {
	Matches       []FormatMatch // Formats that matched, sorted by confidence descending
	SampledLines  int           // Number of lines sampled
	ParsedLines   int           // Number of lines tztail would rewrite
	AmbiguityNote string        // Warning about date ordering if applicable
}

// FormatMatch represents a format that matched with its confidence score.
type FormatMatch struct {
	Format     *timestamp.Format
	Confidence float64   // 0.0 to 1.0 (percentage of lines matched)
	MatchCount int       // Number of lines that matched
	SampleLine string    // Example line that matched
	Timestamp  string    // Timestamp text found in SampleLine
	ParsedTime time.Time // Parsed timestamp from sample

	priority int
}

// Detector analyzes log files to identify timestamp formats.
type Detector struct {
	parser     *timestamp.AutoParser
	ambiguous  []*timestamp.Format
	sampleSize int
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of lines to sample (default 100).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// WithParser replaces the auto-detect parser, for example to include
// patterns from a config file or a different source timezone.
func WithParser(p *timestamp.AutoParser) Option {
	return func(d *Detector) {
		if p != nil {
			d.parser = p
		}
	}
}

// New creates a new Detector with default formats.
func New(opts ...Option) *Detector {
	d := &Detector{
		parser:     timestamp.NewAutoParser(),
		ambiguous:  timestamp.AmbiguousFormats(),
		sampleSize: DefaultSampleSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectFromFile analyzes a log file ("-" for standard input) and returns
// detected formats.
func (d *Detector) DetectFromFile(ctx context.Context, path string) (*DetectionResult, error) {
	source := parser.NewFileSource([]string{path})
	defer source.Close()

	lines, err := d.sample(ctx, source)
	if err != nil {
		return nil, err
	}
	return d.DetectFromLines(lines), nil
}

// DetectFromLines analyzes a slice of log lines. Each line is credited to the
// format the auto-detect policy would rewrite it with. Lines it would leave
// alone are checked against the ambiguous formats.
func (d *Detector) DetectFromLines(lines []string) *DetectionResult {
	result := &DetectionResult{}

	stats := make(map[*timestamp.Format]*FormatMatch)
	priority := make(map[*timestamp.Format]int)
	for i, f := range d.parser.Formats() {
		priority[f] = i
	}
	for i, f := range d.ambiguous {
		priority[f] = len(priority) + i
	}

	record := func(f *timestamp.Format, line, value string, parsed time.Time) {
		m := stats[f]
		if m == nil {
			m = &FormatMatch{
				Format:     f,
				SampleLine: line,
				Timestamp:  value,
				ParsedTime: parsed,
				priority:   priority[f],
			}
			stats[f] = m
		}
		m.MatchCount++
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		result.SampledLines++

		if span, ok := d.parser.Locate(line); ok {
			value := span.Text(line)
			if parsed, err := d.parser.Parse(value, span); err == nil {
				record(span.Format, line, value, parsed)
				result.ParsedLines++
				continue
			}
		}

		for _, f := range d.ambiguous {
			start, end, ok := f.Find(line)
			if !ok {
				continue
			}
			value := line[start:end]
			if parsed, err := f.Parse(value, time.UTC); err == nil {
				record(f, line, value, parsed)
				break
			}
		}
	}

	if result.SampledLines == 0 {
		return result
	}

	for _, m := range stats {
		m.Confidence = float64(m.MatchCount) / float64(result.SampledLines)
		result.Matches = append(result.Matches, *m)
	}

	// Sort by confidence descending, then by priority order
	sort.Slice(result.Matches, func(i, j int) bool {
		if result.Matches[i].Confidence != result.Matches[j].Confidence {
			return result.Matches[i].Confidence > result.Matches[j].Confidence
		}
		return result.Matches[i].priority < result.Matches[j].priority
	})

	// Check for ambiguity in top match
	if len(result.Matches) > 0 && result.Matches[0].Format.Ambiguous {
		result.AmbiguityNote = "This format has date ordering ambiguity (MM/DD vs DD/MM) " +
			"and is left unchanged. Add a pattern with an explicit layout to the config file. " +
			"For European format (DD/MM/YYYY), use layout: \"02/01/2006 15:04:05\""
	}

	return result
}

// sample reads up to sampleSize non-blank, non-comment lines.
// Uses simple head sampling for efficiency.
func (d *Detector) sample(ctx context.Context, source parser.LineSource) ([]string, error) {
	var lines []string

	for len(lines) < d.sampleSize {
		line, err := source.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		trimmed := strings.TrimSpace(line.Content)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			lines = append(lines, line.Content)
		}
	}

	return lines, nil
}

// BestMatch returns the highest confidence match, or nil if none found.
func (r *DetectionResult) BestMatch() *FormatMatch {
	if len(r.Matches) == 0 {
		return nil
	}
	return &r.Matches[0]
}

// HasMatch returns true if at least one format matched.
func (r *DetectionResult) HasMatch() bool {
	return len(r.Matches) > 0
}
