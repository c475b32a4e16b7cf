// Package logger sets up the global zerolog logger.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const timeFormat = "15:04:05.000"

// Init points the global logger at w in console format. An unknown level
// falls back to info.
func Init(level string, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)

	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: timeFormat,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}
	log.Logger = log.Output(output)

	if err != nil {
		log.Warn().Msgf("unknown log level %q, using info", level)
	}
}
