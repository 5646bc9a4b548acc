package timestamp

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidFormat is returned for format strings that cannot be used to
// recognize timestamps.
var ErrInvalidFormat = errors.New("invalid format")

type fieldSet uint8

const (
	fieldYear fieldSet = 1 << iota
	fieldMonth
	fieldDay
	fieldHour
)

type directive struct {
	pattern string
	fields  fieldSet
}

// directives maps strftime conversion specifiers to the text they match.
var directives = map[string]directive{
	"Y":  {`\d{4}`, fieldYear},
	"y":  {`\d{2}`, fieldYear},
	"m":  {`\d{2}`, fieldMonth},
	"b":  {`[A-Z][a-z]{2}`, fieldMonth},
	"h":  {`[A-Z][a-z]{2}`, fieldMonth},
	"B":  {`[A-Z][a-z]{2,8}`, fieldMonth},
	"d":  {`\d{2}`, fieldDay},
	"e":  {`[ \d]\d`, fieldDay},
	"j":  {`\d{3}`, fieldMonth | fieldDay},
	"a":  {`[A-Z][a-z]{2}`, 0},
	"A":  {`[A-Z][a-z]{5,8}`, 0},
	"H":  {`\d{2}`, fieldHour},
	"I":  {`\d{2}`, fieldHour},
	"M":  {`\d{2}`, 0},
	"S":  {`\d{2}`, 0},
	"L":  {`\d{3}`, 0},
	"f":  {`\d{6}`, 0},
	"N":  {`\d{9}`, 0},
	"p":  {`[AP]M`, 0},
	"z":  {`[+-]\d{4}`, 0},
	":z": {`[+-]\d{2}:\d{2}`, 0},
	"Z":  {`[A-Z]{3,5}`, 0},
	"F":  {`\d{4}-\d{2}-\d{2}`, fieldYear | fieldMonth | fieldDay},
	"D":  {`\d{2}/\d{2}/\d{2}`, fieldYear | fieldMonth | fieldDay},
	"T":  {`\d{2}:\d{2}:\d{2}`, fieldHour},
	"R":  {`\d{2}:\d{2}`, fieldHour},
	"t":  {`\t`, 0},
	"%":  {`%`, 0},
}

// compileStrftime builds a regex that matches text produced by format and
// reports which calendar fields the format carries.
func compileStrftime(format string) (*regexp.Regexp, fieldSet, error) {
	var (
		sb      strings.Builder
		literal strings.Builder
		fields  fieldSet
	)

	flush := func() {
		if literal.Len() > 0 {
			sb.WriteString(regexp.QuoteMeta(literal.String()))
			literal.Reset()
		}
	}

	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			literal.WriteByte(c)
			continue
		}
		if i+1 >= len(format) {
			return nil, 0, fmt.Errorf("%w %q: trailing %%", ErrInvalidFormat, format)
		}

		spec := format[i+1 : i+2]
		if spec == ":" && i+2 < len(format) {
			spec = format[i+1 : i+3]
		}
		d, ok := directives[spec]
		if !ok {
			return nil, 0, fmt.Errorf("%w %q: unsupported directive %%%s", ErrInvalidFormat, format, spec)
		}
		i += len(spec)

		flush()
		sb.WriteString(d.pattern)
		fields |= d.fields
	}
	flush()

	if fields&fieldMonth == 0 || fields&fieldDay == 0 {
		return nil, 0, fmt.Errorf("%w %q: no month and day", ErrInvalidFormat, format)
	}
	if fields&fieldHour == 0 {
		return nil, 0, fmt.Errorf("%w %q: no hour", ErrInvalidFormat, format)
	}

	re, err := regexp.Compile(sb.String())
	if err != nil {
		return nil, 0, fmt.Errorf("%w %q: %v", ErrInvalidFormat, format, err)
	}
	return re, fields, nil
}
