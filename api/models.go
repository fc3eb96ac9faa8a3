package api

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Level is the severity of a log record.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelCritical
)

var levelNames = [...]string{"debug", "info", "warning", "error", "critical"}

// String returns the lowercase wire representation of the level.
func (l Level) String() string {
	if !l.valid() {
		return "invalid"
	}
	return levelNames[l]
}

func (l Level) valid() bool {
	return l >= LevelDebug && l <= LevelCritical
}

// MarshalJSON encodes the level as its lowercase string form.
func (l Level) MarshalJSON() ([]byte, error) {
	if !l.valid() {
		return nil, fmt.Errorf("invalid log level: %d", int(l))
	}
	return json.Marshal(l.String())
}

// ParseLevel returns the level matching the given name, case-insensitively.
// In case of an unknown name, an error is returned.
func ParseLevel(name string) (Level, error) {
	for i, n := range levelNames {
		if strings.EqualFold(name, n) {
			return Level(i), nil
		}
	}
	return LevelDebug, fmt.Errorf("invalid log level: %q, must be one of %s", name, ValidLevels())
}

// ValidLevels returns a string representation of all the valid log levels.
func ValidLevels() string {
	return strings.Join(levelNames[:], ", ")
}

// LogRecord is a single log message bound for the backend. Records are built
// with [NewLogRecord] and are immutable afterwards; optional fields carry an
// explicit presence flag so that serialization can distinguish "never set"
// from "set to empty".
type LogRecord struct {
	level         Level
	message       string
	category      string
	categorySet   bool
	tags          []string
	tagsSet       bool
	correlationID string
}

// RecordOption configures optional fields on a LogRecord.
type RecordOption func(*LogRecord)

// WithCategory sets the record's category.
func WithCategory(category string) RecordOption {
	return func(r *LogRecord) {
		r.category = category
		r.categorySet = true
	}
}

// WithTags sets the record's tags. Calling it with no arguments explicitly
// sets an empty tag list, which is serialized as [].
func WithTags(tags ...string) RecordOption {
	return func(r *LogRecord) {
		r.tags = append([]string{}, tags...)
		r.tagsSet = true
	}
}

// WithCorrelationID sets a caller-chosen correlation id. When absent, the
// client assigns a fresh one at send time.
func WithCorrelationID(id string) RecordOption {
	return func(r *LogRecord) {
		r.correlationID = id
	}
}

// NewLogRecord builds a validated log record. The message must be non-empty
// and the level must be one of the defined severities; violations are
// reported as [*ValidationError].
func NewLogRecord(level Level, message string, opts ...RecordOption) (*LogRecord, error) {
	if !level.valid() {
		return nil, &ValidationError{Reason: fmt.Sprintf("invalid log level: %d", int(level))}
	}
	if message == "" {
		return nil, &ValidationError{Reason: "message is required"}
	}

	r := &LogRecord{level: level, message: message}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Level returns the record's severity.
func (r *LogRecord) Level() Level { return r.level }

// Message returns the record's message.
func (r *LogRecord) Message() string { return r.message }

// Category returns the record's category and whether it was set.
func (r *LogRecord) Category() (string, bool) { return r.category, r.categorySet }

// Tags returns the record's tags and whether they were set.
func (r *LogRecord) Tags() ([]string, bool) { return r.tags, r.tagsSet }

// CorrelationID returns the caller-supplied correlation id, or the empty
// string if none was set.
func (r *LogRecord) CorrelationID() string { return r.correlationID }

// MarshalJSON serializes the record for the wire. Category and tags are
// omitted entirely unless they were explicitly set; an explicitly empty tag
// list is kept as []. The correlation id travels as a request header, not in
// the body.
func (r *LogRecord) MarshalJSON() ([]byte, error) {
	payload := make(map[string]any, 4)
	payload["level"] = r.level.String()
	payload["message"] = r.message
	if r.categorySet {
		payload["category"] = r.category
	}
	if r.tagsSet {
		payload["tags"] = r.tags
	}
	return json.Marshal(payload)
}

// EventRecord is a structured event bound for the backend's event endpoint.
// Event delivery is not live yet; records are validated and answered with a
// placeholder outcome.
type EventRecord struct {
	EventType     string         `json:"event_type"`
	Payload       map[string]any `json:"payload"`
	Timestamp     time.Time      `json:"timestamp"`
	SourceService string         `json:"source_service"`
	UserID        string         `json:"user_id,omitempty"`
	CorrelationID string         `json:"correlation_id,omitempty"`
}

// Validate checks the event's required fields.
func (e *EventRecord) Validate() error {
	if e == nil {
		return &ValidationError{Reason: "event record is nil"}
	}
	if e.EventType == "" {
		return &ValidationError{Reason: "event type is required"}
	}
	if len(e.Payload) == 0 {
		return &ValidationError{Reason: "payload is required"}
	}
	return nil
}

// DeliveryOutcome is the result of one send attempt. It is produced once per
// call and not retained by the client.
type DeliveryOutcome struct {
	Success       bool           `json:"success"`
	Data          map[string]any `json:"data,omitempty"`
	RequestID     string         `json:"request_id,omitempty"`
	Timestamp     time.Time      `json:"timestamp"`
	CorrelationID string         `json:"correlation_id,omitempty"`
}
