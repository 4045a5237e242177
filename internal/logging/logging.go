// Package logging sets up the process-wide zerolog logger and the
// -v/--verbose stepping spec.md §6 and SPEC_FULL.md §15 describe:
// info is the default, each repetition of -v drops the level by one
// step (info -> debug -> trace).
package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds a logger writing a human-readable console format to
// stderr, at a level derived from verbosity (the number of times -v
// was passed).
func New(verbosity int) zerolog.Logger {
	level := zerolog.InfoLevel
	switch {
	case verbosity >= 2:
		level = zerolog.TraceLevel
	case verbosity == 1:
		level = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
