package main

import (
	stdlog "log"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func initializeLogger(level, format string) zerolog.Logger {
	var logger zerolog.Logger

	switch format {
	case "json":
		logger = zerolog.New(os.Stderr)

	default:
		if format != "" && format != "logfmt" {
			log.Error().Msgf("logger: unknown log format %q; using logfmt", format)
		}

		console := outputIsConsole()
		timeFormat := time.RFC3339
		if console {
			timeFormat = time.TimeOnly
		}

		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			NoColor:    !console,
			TimeFormat: timeFormat,
		})
	}

	if l, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(l)
	} else {
		log.Error().Msgf("logger: unknown log level %q; using info", level)
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	log.Logger = logger.With().Timestamp().Logger()

	stdlog.SetFlags(0)
	stdlog.SetOutput(log.Logger)

	return log.Logger
}

func outputIsConsole() bool {
	fileInfo, _ := os.Stderr.Stat()

	return fileInfo != nil && (fileInfo.Mode()&os.ModeCharDevice) != 0
}
