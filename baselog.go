package baselog

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/baselog/baselog-go/api"
)

// Mode is whether the logger currently attempts network delivery (remote) or
// only prints locally (local).
type Mode int

const (
	ModeLocal Mode = iota
	ModeRemote
)

// String returns the mode's name.
func (m Mode) String() string {
	if m == ModeRemote {
		return "remote"
	}
	return "local"
}

// LogSender is the delivery surface the logger needs from a client.
// [api.Client] implements it.
type LogSender interface {
	Connect(ctx context.Context) error
	SendLog(ctx context.Context, record *api.LogRecord) (*api.DeliveryOutcome, error)
}

// mode and client travel together so that log calls always observe a
// consistent pair; transitions swap the whole state atomically.
type loggerState struct {
	mode   Mode
	client LogSender
}

// Logger routes every log call either to the backend or to local output.
// A failed remote send degrades to a local line for that call only; the
// stored mode changes exclusively through construction, [Logger.Close] and
// the [Manager]. Log calls never return errors and never panic, so logging
// cannot crash the host application.
type Logger struct {
	state atomic.Pointer[loggerState]
	local zerolog.Logger
}

// New creates a local-mode logger. No network delivery is ever attempted.
func New(opts ...Option) *Logger {
	o := newLoggerOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	l := &Logger{local: o.local}
	l.state.Store(&loggerState{mode: ModeLocal})
	return l
}

// NewWithConfig creates a logger that attempts remote delivery. The logger
// ends up in remote mode only when the client's readiness check succeeds;
// any configuration or connection failure yields a working local-mode
// logger instead of an error.
func NewWithConfig(ctx context.Context, cfg api.Config, opts ...Option) *Logger {
	o := newLoggerOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	l := &Logger{local: o.local}

	client := o.client
	if client == nil {
		client = api.New(cfg)
	}
	if err := client.Connect(ctx); err != nil {
		l.local.Warn().Err(err).Msg("remote delivery unavailable, falling back to local output")
		l.state.Store(&loggerState{mode: ModeLocal})
		return l
	}

	l.state.Store(&loggerState{mode: ModeRemote, client: client})
	return l
}

// Mode returns the logger's current operational mode.
func (l *Logger) Mode() Mode {
	return l.state.Load().mode
}

// Close detaches the delivery client, releases its connections and returns
// the logger to local mode.
func (l *Logger) Close() {
	st := l.state.Swap(&loggerState{mode: ModeLocal})
	if st != nil && st.client != nil {
		if closer, ok := st.client.(interface{ Close() }); ok {
			closer.Close()
		}
	}
}

// Debug logs a message at debug severity.
func (l *Logger) Debug(ctx context.Context, message string, opts ...api.RecordOption) {
	l.log(ctx, api.LevelDebug, message, opts...)
}

// Info logs a message at info severity.
func (l *Logger) Info(ctx context.Context, message string, opts ...api.RecordOption) {
	l.log(ctx, api.LevelInfo, message, opts...)
}

// Warning logs a message at warning severity.
func (l *Logger) Warning(ctx context.Context, message string, opts ...api.RecordOption) {
	l.log(ctx, api.LevelWarning, message, opts...)
}

// Error logs a message at error severity.
func (l *Logger) Error(ctx context.Context, message string, opts ...api.RecordOption) {
	l.log(ctx, api.LevelError, message, opts...)
}

// Critical logs a message at critical severity.
func (l *Logger) Critical(ctx context.Context, message string, opts ...api.RecordOption) {
	l.log(ctx, api.LevelCritical, message, opts...)
}

func (l *Logger) log(ctx context.Context, level api.Level, message string, opts ...api.RecordOption) {
	record, err := api.NewLogRecord(level, message, opts...)
	if err != nil {
		// A malformed record still gets printed rather than dropped.
		l.emitLocal(level, message, nil)
		return
	}

	st := l.state.Load()
	if st.mode == ModeRemote && st.client != nil {
		if _, sendErr := st.client.SendLog(ctx, record); sendErr == nil {
			return
		}
		// Degrade this call only; the stored mode is not touched.
	}

	l.emitLocal(level, message, record)
}

func (l *Logger) emitLocal(level api.Level, message string, record *api.LogRecord) {
	ev := l.local.WithLevel(zerologLevel(level))
	if record != nil {
		if category, ok := record.Category(); ok {
			ev = ev.Str("category", category)
		}
		if tags, ok := record.Tags(); ok {
			ev = ev.Strs("tags", tags)
		}
	}
	ev.Msg(message)
}

func zerologLevel(level api.Level) zerolog.Level {
	switch level {
	case api.LevelDebug:
		return zerolog.DebugLevel
	case api.LevelInfo:
		return zerolog.InfoLevel
	case api.LevelWarning:
		return zerolog.WarnLevel
	case api.LevelError:
		return zerolog.ErrorLevel
	case api.LevelCritical:
		// zerolog's WithLevel does not exit on fatal.
		return zerolog.FatalLevel
	}
	return zerolog.InfoLevel
}
