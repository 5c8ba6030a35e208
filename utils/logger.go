package utils

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger configures the global zerolog logger. Development gets a
// human readable console writer, everything else structured JSON.
func InitLogger(env, level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}).With().
			Str("service", "attractions").
			Logger()
	} else {
		log.Logger = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Caller().
			Str("service", "attractions").
			Logger()
	}

	// log.Ctx falls back to the global logger outside of a request.
	zerolog.DefaultContextLogger = &log.Logger
}
