package timestamp

import (
	"errors"
	"testing"
	"time"
)

func TestNewFixedParser_InvalidFormat(t *testing.T) {
	tests := []struct {
		name   string
		format string
	}{
		{"empty", ""},
		{"no directives", "hello"},
		{"unsupported directive", "%Y-%m-%d %H:%M:%Q"},
		{"trailing percent", "%Y-%m-%d %H:%M:%"},
		{"date only", "%Y-%m-%d"},
		{"time only", "%H:%M:%S"},
		{"bad colon directive", "%Y-%m-%d %H:%M %:q"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFixedParser(tt.format)
			if err == nil {
				t.Fatalf("NewFixedParser(%q) expected error", tt.format)
			}
			if !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("NewFixedParser(%q) error = %v, want ErrInvalidFormat", tt.format, err)
			}
		})
	}
}

func TestCompileStrftime(t *testing.T) {
	tests := []struct {
		format     string
		wantRegex  string
		wantFields fieldSet
	}{
		{
			format:     "%Y-%m-%dT%H:%M:%S",
			wantRegex:  `\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}`,
			wantFields: fieldYear | fieldMonth | fieldDay | fieldHour,
		},
		{
			format:     "[%F %T]",
			wantRegex:  `\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\]`,
			wantFields: fieldYear | fieldMonth | fieldDay | fieldHour,
		},
		{
			format:     "%b %e %H:%M:%S",
			wantRegex:  `[A-Z][a-z]{2} [ \d]\d \d{2}:\d{2}:\d{2}`,
			wantFields: fieldMonth | fieldDay | fieldHour,
		},
		{
			format:     "100%% %Y.%m.%d %R",
			wantRegex:  `100% \d{4}\.\d{2}\.\d{2} \d{2}:\d{2}`,
			wantFields: fieldYear | fieldMonth | fieldDay | fieldHour,
		},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			re, fields, err := compileStrftime(tt.format)
			if err != nil {
				t.Fatalf("compileStrftime() error = %v", err)
			}
			if re.String() != tt.wantRegex {
				t.Errorf("regex = %q, want %q", re.String(), tt.wantRegex)
			}
			if fields != tt.wantFields {
				t.Errorf("fields = %b, want %b", fields, tt.wantFields)
			}
		})
	}
}

func TestFixedParser_Rewrite(t *testing.T) {
	tests := []struct {
		name   string
		format string
		zone   string
		line   string
		want   string
	}{
		{
			name:   "same zone keeps text",
			format: "%Y/%m/%d %H:%M:%S",
			zone:   "UTC",
			line:   "2021/03/05 10:00:00 ERROR disk full",
			want:   "2021/03/05 10:00:00 ERROR disk full",
		},
		{
			name:   "converted to standard time",
			format: "%Y/%m/%d %H:%M:%S",
			zone:   "America/New_York",
			line:   "2021/03/05 10:00:00 ERROR disk full",
			want:   "2021/03/05 05:00:00 ERROR disk full",
		},
		{
			name:   "prefix preserved",
			format: "%Y-%m-%d %H:%M:%S",
			zone:   "Asia/Tokyo",
			line:   "web-1 | 2024-01-15 20:00:00 | GET /",
			want:   "web-1 | 2024-01-16 05:00:00 | GET /",
		},
		{
			name:   "embedded offset",
			format: "%Y-%m-%d %H:%M:%S %z",
			zone:   "UTC",
			line:   "2024-01-15 10:30:00 +0100 started",
			want:   "2024-01-15 09:30:00 +0000 started",
		},
		{
			name:   "format not present",
			format: "%Y/%m/%d %H:%M:%S",
			zone:   "America/New_York",
			line:   "INFO 2020-06-01T12:00:00Z request handled",
			want:   "INFO 2020-06-01T12:00:00Z request handled",
		},
		{
			name:   "invalid calendar date",
			format: "%Y/%m/%d %H:%M:%S",
			zone:   "America/New_York",
			line:   "2021/02/30 10:00:00 ERROR",
			want:   "2021/02/30 10:00:00 ERROR",
		},
		{
			name:   "zone name unknown to source",
			format: "%Y-%m-%d %H:%M:%S %Z",
			zone:   "UTC",
			line:   "2024-01-15 10:30:00 EST x",
			want:   "2024-01-15 10:30:00 EST x",
		},
		{
			name:   "zone name utc",
			format: "%Y-%m-%d %H:%M:%S %Z",
			zone:   "Asia/Tokyo",
			line:   "2024-01-15 10:30:00 UTC x",
			want:   "2024-01-15 19:30:00 JST x",
		},
		{
			name:   "only first occurrence",
			format: "%Y/%m/%d %H:%M:%S",
			zone:   "Asia/Tokyo",
			line:   "2021/03/05 10:00:00 retry of 2021/03/05 09:00:00",
			want:   "2021/03/05 19:00:00 retry of 2021/03/05 09:00:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewFixedParser(tt.format)
			if err != nil {
				t.Fatalf("NewFixedParser(%q) error = %v", tt.format, err)
			}
			rw := NewRewriter(p, mustLoad(t, tt.zone))
			if got := rw.Rewrite(tt.line); got != tt.want {
				t.Errorf("Rewrite(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestFixedParser_NoYear(t *testing.T) {
	p, err := NewFixedParser("%b %d %H:%M:%S", WithReferenceYear(2023))
	if err != nil {
		t.Fatalf("NewFixedParser() error = %v", err)
	}

	line := "Jun 14 15:16:01 host kernel: up"
	span, ok := p.Locate(line)
	if !ok {
		t.Fatal("Locate() did not match")
	}
	got, err := p.Parse(span.Text(line), span)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := time.Date(2023, 6, 14, 15, 16, 1, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Parse() = %v, want %v", got, want)
	}

	rw := NewRewriter(p, mustLoad(t, "Asia/Tokyo"))
	if got := rw.Rewrite(line); got != "Jun 15 00:16:01 host kernel: up" {
		t.Errorf("Rewrite() = %q", got)
	}

	leap := "Feb 29 10:00:00 host kernel: up"
	if got := rw.Rewrite(leap); got != leap {
		t.Errorf("Rewrite(%q) = %q, want unchanged in 2023", leap, got)
	}
}

func TestFixedParser_ZoneName(t *testing.T) {
	p, err := NewFixedParser("%Y-%m-%d %H:%M:%S %Z", WithSourceLocation(mustLoad(t, "America/New_York")))
	if err != nil {
		t.Fatalf("NewFixedParser() error = %v", err)
	}

	// Abbreviations the source timezone defines carry their real offset.
	rw := NewRewriter(p, time.UTC)
	if got := rw.Rewrite("2024-01-15 10:30:00 EST x"); got != "2024-01-15 15:30:00 UTC x" {
		t.Errorf("Rewrite() = %q", got)
	}

	line := "2024-01-15 10:30:00 CET x"
	span, ok := p.Locate(line)
	if !ok {
		t.Fatal("Locate() did not match")
	}
	if _, err := p.Parse(span.Text(line), span); err == nil {
		t.Errorf("Parse(%q) succeeded, want unknown zone error", span.Text(line))
	}
}

func TestFixedParser_Accessors(t *testing.T) {
	p, err := NewFixedParser("%Y/%m/%d %H:%M:%S")
	if err != nil {
		t.Fatalf("NewFixedParser() error = %v", err)
	}
	if p.Format() != "%Y/%m/%d %H:%M:%S" {
		t.Errorf("Format() = %q", p.Format())
	}
	if p.Layout() != "2006/01/02 15:04:05" {
		t.Errorf("Layout() = %q, want %q", p.Layout(), "2006/01/02 15:04:05")
	}
}
