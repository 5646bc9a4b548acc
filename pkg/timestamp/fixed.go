package timestamp

import (
	"fmt"
	"time"

	"github.com/ncruces/go-strftime"
)

// FixedParser recognizes and renders timestamps with a single strftime
// format supplied by the user.
type FixedParser struct {
	format string
	f      *Format
	source *time.Location
	year   int
}

// NewFixedParser compiles a strftime format such as "%Y/%m/%d %H:%M:%S".
// The same format is used to find, parse and render timestamps.
func NewFixedParser(format string, opts ...Option) (*FixedParser, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	re, fields, err := compileStrftime(format)
	if err != nil {
		return nil, err
	}

	layout, err := strftime.Layout(format)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidFormat, format, err)
	}

	return &FixedParser{
		format: format,
		f: &Format{
			Name:       "custom",
			Pattern:    re,
			PatternStr: re.String(),
			Layout:     layout,
			Examples:   []string{strftime.Format(format, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC))},
			NoYear:     fields&fieldYear == 0,
		},
		source: o.source,
		year:   o.year,
	}, nil
}

// Format returns the strftime format.
func (p *FixedParser) Format() string {
	return p.format
}

// Layout returns the Go time layout equivalent of the format.
func (p *FixedParser) Layout() string {
	return p.f.Layout
}

// Locate returns the leftmost text matching the format.
func (p *FixedParser) Locate(line string) (Span, bool) {
	start, end, ok := p.f.Find(line)
	if !ok {
		return Span{}, false
	}
	return Span{Start: start, End: end, Format: p.f}, true
}

// Parse parses value in the source location.
func (p *FixedParser) Parse(value string, span Span) (time.Time, error) {
	t, err := span.Format.Parse(value, p.source)
	if err != nil {
		return time.Time{}, err
	}
	if span.Format.NoYear {
		return fillYear(t, p.year)
	}
	return t, nil
}

// Render formats t with the strftime format.
func (p *FixedParser) Render(t time.Time) string {
	return strftime.Format(p.format, t)
}
