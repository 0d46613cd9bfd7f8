package observability

import (
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// NewLogger returns a zerolog Logger tagged with a fresh run_id.
// APP_ENV=dev (or development) uses a human-friendly console writer.
func NewLogger(env string) zerolog.Logger {
	return newLogger(os.Stdout, env)
}

func newLogger(w io.Writer, env string) zerolog.Logger {
	ctx := zerolog.New(w).With()
	if env == "dev" || env == "development" {
		ctx = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).With()
	}
	return ctx.Timestamp().Str("run_id", uuid.NewString()).Logger()
}
