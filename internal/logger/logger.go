package logger

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pageza/recipebox/backend/config"
)

// Init configures the global zerolog logger. Development gets a human
// readable console writer, every other environment gets JSON lines.
func Init(env config.Environment, level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if env.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}
