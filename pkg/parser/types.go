// Package parser provides line-by-line reading of log files and standard input.
package parser

// LogLine is a raw log line as read from its source.
type LogLine struct {
	// Content is the line text without its line terminator.
	Content string

	// Source is the file path this line came from, or StdinName.
	Source string

	// LineNum is the 1-based line number in the source.
	LineNum int
}
