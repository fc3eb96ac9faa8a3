package api

import (
	"os"

	"github.com/rs/zerolog"
)

// AttemptLogger is the interface used by [Client] to record each delivery
// attempt. Implement it to integrate with your logging library and supply the
// implementation via [WithAttemptLogger]. Implementations must not log
// credentials; the client never passes them in.
type AttemptLogger interface {
	// Attempt records one delivery attempt. requestID is empty when the
	// attempt failed before a response was received, in which case err
	// carries the transport failure.
	Attempt(attempt int, correlationID, requestID string, statusCode int, err error)
}

// ZerologAttemptLogger records delivery attempts as structured zerolog lines.
type ZerologAttemptLogger struct {
	logger zerolog.Logger
}

// NewZerologAttemptLogger builds an attempt logger on top of the given
// zerolog logger. Passing nil uses a stderr logger with timestamps.
func NewZerologAttemptLogger(logger *zerolog.Logger) *ZerologAttemptLogger {
	if logger == nil {
		l := zerolog.New(os.Stderr).With().Timestamp().Logger()
		return &ZerologAttemptLogger{logger: l}
	}
	return &ZerologAttemptLogger{logger: *logger}
}

func (l *ZerologAttemptLogger) Attempt(attempt int, correlationID, requestID string, statusCode int, err error) {
	ev := l.logger.Info().
		Int("attempt", attempt).
		Str("correlation_id", correlationID)
	if requestID != "" {
		ev = ev.Str("request_id", requestID)
	}
	if statusCode != 0 {
		ev = ev.Int("status", statusCode)
	}
	if err != nil {
		ev = ev.Err(err)
	}
	ev.Msg("log delivery attempt")
}

// NoopAttemptLogger silently discards all attempt records.
type NoopAttemptLogger struct{}

func (l *NoopAttemptLogger) Attempt(int, string, string, int, error) {}
