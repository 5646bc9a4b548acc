package timestamp

import (
	"strings"
	"time"
)

// Rewriter replaces the first timestamp of a line with the same instant
// expressed in a destination timezone.
type Rewriter struct {
	parser    Parser
	location  *time.Location
	highlight func(string) string
	onSkip    func(value string, err error)
}

// RewriterOption configures a Rewriter.
type RewriterOption func(*Rewriter)

// WithHighlight wraps every rendered timestamp, e.g. in terminal colors.
func WithHighlight(fn func(string) string) RewriterOption {
	return func(r *Rewriter) {
		if fn != nil {
			r.highlight = fn
		}
	}
}

// WithSkipHook is called when a located timestamp fails to parse.
// The line is still passed through unchanged.
func WithSkipHook(fn func(value string, err error)) RewriterOption {
	return func(r *Rewriter) {
		r.onSkip = fn
	}
}

// NewRewriter creates a Rewriter converting into loc.
func NewRewriter(p Parser, loc *time.Location, opts ...RewriterOption) *Rewriter {
	if loc == nil {
		loc = time.UTC
	}
	r := &Rewriter{
		parser:    p,
		location:  loc,
		highlight: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Location returns the destination timezone.
func (r *Rewriter) Location() *time.Location {
	return r.location
}

// Rewrite returns line with its first timestamp converted. Lines without a
// parsable timestamp are returned unchanged.
func (r *Rewriter) Rewrite(line string) string {
	out, _ := r.RewriteLine(line)
	return out
}

// RewriteLine is like Rewrite and also reports whether a timestamp was
// replaced.
func (r *Rewriter) RewriteLine(line string) (string, bool) {
	span, ok := r.parser.Locate(line)
	if !ok {
		return line, false
	}

	value := span.Text(line)
	t, err := r.parser.Parse(value, span)
	if err != nil {
		if r.onSkip != nil {
			r.onSkip(value, err)
		}
		return line, false
	}

	rendered := r.highlight(r.parser.Render(t.In(r.location)))

	var sb strings.Builder
	sb.Grow(len(line) - len(value) + len(rendered))
	sb.WriteString(line[:span.Start])
	sb.WriteString(rendered)
	sb.WriteString(line[span.End:])
	return sb.String(), true
}
