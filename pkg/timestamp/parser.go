// Package timestamp locates timestamps in log lines and rewrites them into
// another timezone.
package timestamp

import (
	"fmt"
	"time"
)

// Span is the location of a recognized timestamp within a line.
type Span struct {
	// Start and End are byte offsets; line[Start:End] is the timestamp text.
	Start int
	End   int

	// Format is the format that recognized the timestamp.
	Format *Format
}

// Text returns the timestamp text of line covered by the span.
func (s Span) Text(line string) string {
	return line[s.Start:s.End]
}

// Parser recognizes, parses and renders timestamps under one policy.
// Implementations are immutable after construction and safe for concurrent use.
type Parser interface {
	// Locate returns the leftmost timestamp in line.
	// A line without a timestamp returns false; that is not an error.
	Locate(line string) (Span, bool)

	// Parse converts the text recognized by span into an instant.
	Parse(value string, span Span) (time.Time, error)

	// Render formats an instant that is already in the destination timezone.
	Render(t time.Time) string
}

// Option configures a Parser.
type Option func(*options)

type options struct {
	source  *time.Location
	year    int
	formats []*Format
}

func defaultOptions() options {
	return options{
		source: time.UTC,
		year:   time.Now().Year(),
	}
}

// WithSourceLocation sets the timezone assumed for timestamps that carry no
// offset (default UTC).
func WithSourceLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.source = loc
		}
	}
}

// WithReferenceYear sets the year given to timestamps whose format has no
// year, such as BSD syslog (default: the current year at construction).
func WithReferenceYear(year int) Option {
	return func(o *options) {
		if year > 0 {
			o.year = year
		}
	}
}

// WithFormats adds formats that are tried before the built-in ones.
// It only affects the auto-detect policy.
func WithFormats(formats ...*Format) Option {
	return func(o *options) {
		o.formats = append(o.formats, formats...)
	}
}

// fillYear moves a year-less parse result into the reference year,
// keeping its wall clock. Dates that do not exist in that year, such as
// Feb 29 in a common year, are an error.
func fillYear(t time.Time, year int) (time.Time, error) {
	filled := time.Date(year, t.Month(), t.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if filled.Month() != t.Month() || filled.Day() != t.Day() {
		return time.Time{}, fmt.Errorf("%s %d does not exist in %d", t.Month(), t.Day(), year)
	}
	return filled, nil
}
