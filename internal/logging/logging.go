package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Init configures the global zerolog logger: pretty console output in
// development, JSON in production.
func Init(env string) zerolog.Logger {
	var w io.Writer

	if env == "development" || env == "dev" {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	} else {
		w = os.Stdout
	}

	zerolog.TimeFieldFormat = time.RFC3339

	return zerolog.New(w).With().
		Timestamp().
		Str("service", "memories-backend").
		Logger()
}
