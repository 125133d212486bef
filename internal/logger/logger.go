// Package logger configures the global zerolog logger.
package logger

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init sets up log.Logger: human-readable console output when dev is set,
// JSON lines otherwise.  LOG_LEVEL overrides the default info level.
func Init(dev bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if dev {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	level := zerolog.InfoLevel
	if l, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && l != zerolog.NoLevel {
		level = l
	}
	zerolog.SetGlobalLevel(level)
}
