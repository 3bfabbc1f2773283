package ttynamed

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a human readable logger for diagnostics on w. Only
// warnings are shown unless verbose is set.
func NewLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
		NoColor:    true,
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
