package timestamp

import (
	"time"
)

// AutoParser tries an ordered list of common timestamp formats and renders
// every match in CanonicalLayout.
type AutoParser struct {
	formats []*Format
	source  *time.Location
	year    int
}

// NewAutoParser creates an auto-detecting parser. Formats given through
// WithFormats take priority over DefaultFormats.
func NewAutoParser(opts ...Option) *AutoParser {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	formats := make([]*Format, 0, len(o.formats)+len(DefaultFormats()))
	formats = append(formats, o.formats...)
	formats = append(formats, DefaultFormats()...)

	return &AutoParser{
		formats: formats,
		source:  o.source,
		year:    o.year,
	}
}

// Formats returns the candidate formats in priority order.
func (p *AutoParser) Formats() []*Format {
	return p.formats
}

// Locate returns the leftmost span matched by any format. When several
// formats match at the same offset the earliest in priority order wins.
func (p *AutoParser) Locate(line string) (Span, bool) {
	var best Span
	found := false

	for _, f := range p.formats {
		start, end, ok := f.Find(line)
		if !ok {
			continue
		}
		if !found || start < best.Start {
			best = Span{Start: start, End: end, Format: f}
			found = true
		}
		if start == 0 {
			// Nothing can match further left.
			break
		}
	}

	return best, found
}

// Parse parses value with the span's format in the source location.
func (p *AutoParser) Parse(value string, span Span) (time.Time, error) {
	t, err := span.Format.Parse(value, p.source)
	if err != nil {
		return time.Time{}, err
	}
	if span.Format.NoYear {
		return fillYear(t, p.year)
	}
	return t, nil
}

// Render formats t in CanonicalLayout.
func (p *AutoParser) Render(t time.Time) string {
	return t.Format(CanonicalLayout)
}
