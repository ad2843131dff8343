package logger

import (
	"io"
	"os"
	"time"

	"hotel/config"
	"hotel/shared/constant"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultLevel = zerolog.InfoLevel

// Init configures the global zerolog logger. Production writes JSON lines
// tagged with the service name; other environments get the console writer.
func Init(config *config.Config) {
	log.Logger = New(config, os.Stdout)
	zerolog.SetGlobalLevel(Level(config.Server.LogLevel))

	log.Debug().Str("level", zerolog.GlobalLevel().String()).Str("env", config.Server.Env).Msg("logger initialized")
}

// New builds a logger writing to out.
func New(config *config.Config, out io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	if config.Server.Env != constant.ServerEnvProduction {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).With().Timestamp().Str("service", config.App.Name).Logger()
}

// Level parses a LOG_LEVEL value. Empty or unknown values mean info.
func Level(value string) zerolog.Level {
	level, err := zerolog.ParseLevel(value)
	if err != nil || value == "" {
		return defaultLevel
	}

	return level
}

// ErrorWithStack logs err with the stack of the caller attached.
func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}
