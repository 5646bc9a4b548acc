package output

import (
	"github.com/mgutz/ansi"
)

// TimestampStyle is the ansi style applied to rewritten timestamps.
const TimestampStyle = "cyan+b"

// Highlighter returns the function applied to each rewritten timestamp.
// Without colorize it returns its input unchanged.
func Highlighter(colorize bool) func(string) string {
	if colorize {
		return ansi.ColorFunc(TimestampStyle)
	}
	return ansi.ColorFunc("")
}
