// Package output provides formatting for detection results and terminal
// highlighting for rewritten timestamps.
package output

import (
	"time"

	"github.com/ccollicutt/tztail/pkg/detector"
)

// Report is the complete detection output for one file.
type Report struct {
	// File is the log file that was sampled.
	File string `json:"file"`

	// SampledLines is the number of non-blank lines examined.
	SampledLines int `json:"sampled_lines"`

	// ParsedLines is the number of lines tztail would rewrite.
	ParsedLines int `json:"parsed_lines"`

	// Matches lists detected formats, best first.
	Matches []Match `json:"matches"`

	// AmbiguityNote warns about date ordering, if applicable.
	AmbiguityNote string `json:"ambiguity_note,omitempty"`

	// Timezone is the preview destination timezone, if any.
	Timezone string `json:"timezone,omitempty"`
}

// Match describes one detected format.
type Match struct {
	Name       string    `json:"name"`
	Pattern    string    `json:"pattern"`
	Layout     string    `json:"layout"`
	Confidence float64   `json:"confidence"`
	MatchCount int       `json:"match_count"`
	SampleLine string    `json:"sample_line"`
	Timestamp  string    `json:"timestamp"`
	ParsedTime time.Time `json:"parsed_time"`
	Ambiguous  bool      `json:"ambiguous,omitempty"`

	// Preview is SampleLine as tztail would print it.
	Preview string `json:"preview,omitempty"`
}

// NewReport creates a Report from detection results.
func NewReport(result *detector.DetectionResult, file string) *Report {
	report := &Report{
		File:          file,
		SampledLines:  result.SampledLines,
		ParsedLines:   result.ParsedLines,
		AmbiguityNote: result.AmbiguityNote,
		Matches:       make([]Match, 0, len(result.Matches)),
	}

	for _, m := range result.Matches {
		report.Matches = append(report.Matches, Match{
			Name:       m.Format.Name,
			Pattern:    m.Format.PatternStr,
			Layout:     m.Format.Layout,
			Confidence: m.Confidence,
			MatchCount: m.MatchCount,
			SampleLine: m.SampleLine,
			Timestamp:  m.Timestamp,
			ParsedTime: m.ParsedTime,
			Ambiguous:  m.Format.Ambiguous,
		})
	}

	return report
}

// AddPreview fills in each match's Preview using rewrite, typically a
// timestamp.Rewriter for the given timezone.
func (r *Report) AddPreview(timezone string, rewrite func(string) string) {
	r.Timezone = timezone
	for i := range r.Matches {
		r.Matches[i].Preview = rewrite(r.Matches[i].SampleLine)
	}
}

// Best returns the highest confidence match, or nil if none found.
func (r *Report) Best() *Match {
	if len(r.Matches) == 0 {
		return nil
	}
	return &r.Matches[0]
}

// HasMatch returns true if at least one format matched.
func (r *Report) HasMatch() bool {
	return len(r.Matches) > 0
}

// visibleMatches returns the matches a formatter should show.
func (r *Report) visibleMatches(opts FormatOptions) []Match {
	if !opts.ShowAll && len(r.Matches) > 1 {
		return r.Matches[:1]
	}
	return r.Matches
}
