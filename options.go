package baselog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

type Option func(*options)

type options struct {
	local  zerolog.Logger
	client LogSender
}

func newLoggerOptions() *options {
	return &options{
		local: zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, NoColor: true}).With().Timestamp().Logger(),
	}
}

// WithLocalOutput directs local-mode and fallback output to w.
func WithLocalOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.local = zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).With().Timestamp().Logger()
		}
	}
}

// WithLocalLogger replaces the local output logger wholesale.
func WithLocalLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.local = logger
	}
}

// WithClient injects the delivery client used for remote mode instead of one
// built from the config.
func WithClient(client LogSender) Option {
	return func(o *options) {
		if client != nil {
			o.client = client
		}
	}
}
