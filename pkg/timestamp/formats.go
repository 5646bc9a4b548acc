package timestamp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Sentinel layouts for numeric epoch timestamps.
const (
	LayoutUnixSeconds = "UNIX_SECONDS"
	LayoutUnixMillis  = "UNIX_MILLIS"
)

// CanonicalLayout is the output layout used by the auto-detect policy.
const CanonicalLayout = time.RFC3339Nano

// maxUnixSeconds bounds epoch values to 2100-01-01.
const maxUnixSeconds = 4102444800

// Format is a recognizable timestamp shape.
type Format struct {
	Name       string         // Human-readable name
	Pattern    *regexp.Regexp // Compiled regex
	PatternStr string         // Pattern source
	Layout     string         // Go time layout, or one of the Unix sentinels
	Examples   []string       // Example timestamps
	Ambiguous  bool           // True if format has date ordering ambiguity (MM/DD vs DD/MM)
	NoYear     bool           // True if the layout carries no year
}

// NewFormat compiles a format from a regex and a Go layout.
// If the regex has capture groups, the first one delimits the timestamp.
func NewFormat(name, pattern, layout string) (*Format, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}
	if layout == "" {
		return nil, fmt.Errorf("layout is required")
	}
	return &Format{
		Name:       name,
		Pattern:    re,
		PatternStr: pattern,
		Layout:     layout,
		NoYear:     !layoutHasYear(layout),
	}, nil
}

// Find returns the byte offsets of the leftmost timestamp in line.
func (f *Format) Find(line string) (start, end int, ok bool) {
	loc := f.Pattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return 0, 0, false
	}
	if len(loc) >= 4 && loc[2] >= 0 {
		return loc[2], loc[3], true
	}
	return loc[0], loc[1], true
}

// Parse interprets value using the format's layout. Values that carry no
// offset are read in loc.
func (f *Format) Parse(value string, loc *time.Location) (time.Time, error) {
	switch f.Layout {
	case LayoutUnixSeconds:
		secs, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return time.Time{}, err
		}
		if secs < 0 || secs > maxUnixSeconds {
			return time.Time{}, fmt.Errorf("epoch %d out of range", secs)
		}
		return time.Unix(secs, 0).UTC(), nil

	case LayoutUnixMillis:
		millis, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return time.Time{}, err
		}
		if secs := millis / 1000; secs < 0 || secs > maxUnixSeconds {
			return time.Time{}, fmt.Errorf("epoch %d out of range", millis)
		}
		return time.UnixMilli(millis).UTC(), nil

	default:
		t, err := time.ParseInLocation(f.Layout, value, loc)
		if err != nil {
			return time.Time{}, err
		}
		if strings.Contains(f.Layout, "MST") {
			if err := checkZoneName(t, loc); err != nil {
				return time.Time{}, err
			}
		}
		return t, nil
	}
}

// checkZoneName rejects zone abbreviations that loc does not define.
// time.ParseInLocation gives those a fabricated zone with offset 0.
func checkZoneName(t time.Time, loc *time.Location) error {
	name, offset := t.Zone()
	if offset != 0 || t.Location() == loc {
		return nil
	}
	if name == "UTC" || name == "Z" || strings.HasPrefix(name, "GMT") {
		return nil
	}
	return fmt.Errorf("unknown zone abbreviation %q in %s", name, loc)
}

func layoutHasYear(layout string) bool {
	switch layout {
	case LayoutUnixSeconds, LayoutUnixMillis:
		return true
	}
	return time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC).Format(layout) !=
		time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC).Format(layout)
}

// DefaultFormats returns the built-in timestamp formats in priority order.
// Formats are ordered by specificity: when two formats match at the same
// offset, the one listed first wins.
func DefaultFormats() []*Format {
	formats := []*Format{
		{
			Name:       "RFC 3339",
			PatternStr: `\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d{1,9})?(?:Z|[+-]\d{2}:\d{2})`,
			Layout:     time.RFC3339,
			Examples:   []string{"2024-01-15T10:30:00Z", "2024-01-15T10:30:00.123-05:00"},
		},
		{
			Name:       "ISO 8601 with numeric offset",
			PatternStr: `\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d{1,9})?[+-]\d{4}`,
			Layout:     "2006-01-02T15:04:05-0700",
			Examples:   []string{"2024-01-15T10:30:00+0100"},
		},
		{
			Name:       "ISO 8601",
			PatternStr: `\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d{1,9})?`,
			Layout:     "2006-01-02T15:04:05",
			Examples:   []string{"2024-01-15T10:30:00", "2024-01-15T10:30:00.123"},
		},
		// Python logging default (comma for milliseconds)
		{
			Name:       "Python logging",
			PatternStr: `\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2},\d{3}`,
			Layout:     "2006-01-02 15:04:05,000",
			Examples:   []string{"2024-01-15 10:30:00,123"},
		},
		{
			Name:       "Datetime with numeric offset",
			PatternStr: `\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(?:\.\d{1,9})? [+-]\d{4}`,
			Layout:     "2006-01-02 15:04:05 -0700",
			Examples:   []string{"2024-01-15 10:30:00 +0000"},
		},
		{
			Name:       "Datetime (space-separated)",
			PatternStr: `\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(?:\.\d{1,9})?`,
			Layout:     time.DateTime,
			Examples:   []string{"2024-01-15 10:30:00", "2024-01-15 10:30:00.123"},
		},
		// Go log package default
		{
			Name:       "Slash datetime",
			PatternStr: `\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2}(?:\.\d{1,9})?`,
			Layout:     "2006/01/02 15:04:05",
			Examples:   []string{"2024/01/15 10:30:00"},
		},
		{
			Name:       "Apache/NGINX CLF",
			PatternStr: `\d{2}/[A-Z][a-z]{2}/\d{4}:\d{2}:\d{2}:\d{2} [+-]\d{4}`,
			Layout:     "02/Jan/2006:15:04:05 -0700",
			Examples:   []string{"15/Jun/2024:10:30:00 +0000"},
		},
		{
			Name:       "RFC 1123 with numeric zone",
			PatternStr: `[A-Z][a-z]{2}, \d{2} [A-Z][a-z]{2} \d{4} \d{2}:\d{2}:\d{2} [+-]\d{4}`,
			Layout:     time.RFC1123Z,
			Examples:   []string{"Mon, 15 Jan 2024 10:30:00 +0000"},
		},
		{
			Name:       "RFC 1123",
			PatternStr: `[A-Z][a-z]{2}, \d{2} [A-Z][a-z]{2} \d{4} \d{2}:\d{2}:\d{2} (?:GMT|UTC)`,
			Layout:     time.RFC1123,
			Examples:   []string{"Mon, 15 Jan 2024 10:30:00 GMT"},
		},
		// Also the Apache error log format [Day Mon DD HH:MM:SS YYYY]
		{
			Name:       "ANSI C",
			PatternStr: `[A-Z][a-z]{2} [A-Z][a-z]{2} [ \d]\d \d{2}:\d{2}:\d{2} \d{4}`,
			Layout:     time.ANSIC,
			Examples:   []string{"Sun Dec  4 04:47:44 2005", "Sun Dec 04 04:47:44 2005"},
		},
		{
			Name:       "Syslog with year",
			PatternStr: `[A-Z][a-z]{2} {1,2}\d{1,2} \d{4} \d{2}:\d{2}:\d{2}`,
			Layout:     "Jan _2 2006 15:04:05",
			Examples:   []string{"Jun 14 2024 15:16:01"},
		},
		{
			Name:       "Syslog (BSD)",
			PatternStr: `[A-Z][a-z]{2} {1,2}\d{1,2} \d{2}:\d{2}:\d{2}`,
			Layout:     time.Stamp,
			Examples:   []string{"Jun 14 15:16:01", "Jan  5 09:30:00"},
			NoYear:     true,
		},
		{
			Name:       "Unix timestamp (milliseconds)",
			PatternStr: `\b(\d{13})\b`,
			Layout:     LayoutUnixMillis,
			Examples:   []string{"1705315800000"},
		},
		{
			Name:       "Unix timestamp (seconds)",
			PatternStr: `\b(\d{10})\b`,
			Layout:     LayoutUnixSeconds,
			Examples:   []string{"1705315800"},
		},
	}

	for _, f := range formats {
		f.Pattern = regexp.MustCompile(f.PatternStr)
	}

	return formats
}

// AmbiguousFormats returns timestamp shapes whose day and month order can't
// be told apart. They are never rewritten; detection uses them to explain
// why a file's timestamps were left alone.
func AmbiguousFormats() []*Format {
	formats := []*Format{
		{
			Name:       "Slash date (MM/DD or DD/MM)",
			PatternStr: `\b\d{2}/\d{2}/\d{4} \d{2}:\d{2}:\d{2}`,
			Layout:     "01/02/2006 15:04:05",
			Examples:   []string{"01/05/2024 10:30:00"},
			Ambiguous:  true,
		},
		// Spark/Hadoop short date YY/MM/DD HH:MM:SS
		{
			Name:       "Short slash date",
			PatternStr: `\b\d{2}/\d{2}/\d{2} \d{2}:\d{2}:\d{2}`,
			Layout:     "06/01/02 15:04:05",
			Examples:   []string{"17/06/09 20:10:40"},
			Ambiguous:  true,
		},
	}

	for _, f := range formats {
		f.Pattern = regexp.MustCompile(f.PatternStr)
	}

	return formats
}
