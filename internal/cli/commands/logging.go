package commands

import (
	"io"

	clog "github.com/charmbracelet/log"
)

// newLogger returns the diagnostics logger. Only warnings and errors are
// shown unless verbose is set.
func newLogger(w io.Writer, verbose bool) *clog.Logger {
	level := clog.WarnLevel
	if verbose {
		level = clog.DebugLevel
	}
	return clog.NewWithOptions(w, clog.Options{
		Level:           level,
		Prefix:          "tztail",
		ReportTimestamp: verbose,
	})
}
