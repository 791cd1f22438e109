package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// Init installs the default logger on stderr
func Init(debug, noColor bool) {
	log.SetDefault(New(os.Stderr, debug, noColor))
}

// New creates a logger writing to w. In debug mode every instruction is
// traced and callers are reported; otherwise only warnings and errors pass.
func New(w io.Writer, debug, noColor bool) *log.Logger {
	l := log.NewWithOptions(w,
		log.Options{
			ReportCaller:    debug,
			ReportTimestamp: false,
			TimeFormat:      time.RFC3339,
			Prefix:          "TURTLE",
			Level:           log.WarnLevel,
		})

	if debug {
		l.SetLevel(log.DebugLevel)
	}

	l.SetColorProfile(termenv.ANSI256)
	if noColor {
		l.SetColorProfile(termenv.Ascii)
	}

	return l
}
