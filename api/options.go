package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

type Option func(*Options)

type Options struct {
	retryWaitTime    time.Duration
	retryMaxWaitTime time.Duration
	attemptLogger    AttemptLogger
	retryPolicy      func(*resty.Response, error) bool
	requestHeaders   map[string]string
}

func newClientOptions() *Options {
	return &Options{
		// Zero wait times mean "derive from the config's backoff factor".
		retryWaitTime:    0,
		retryMaxWaitTime: 0,
		attemptLogger:    NewZerologAttemptLogger(nil),
		retryPolicy:      DefaultRetryPolicy,
		requestHeaders: map[string]string{
			headerContentType: contentTypeJSON,
			headerAccept:      contentTypeJSON,
		},
	}
}

// WithRetryWaitTime overrides the base backoff wait derived from the config's
// backoff factor. Values below 100ms are ignored.
func WithRetryWaitTime(waitTime time.Duration) Option {
	return func(o *Options) {
		if waitTime >= 100*time.Millisecond {
			o.retryWaitTime = waitTime
		}
	}
}

// WithRetryMaxWaitTime overrides the backoff ceiling. Values below 100ms are
// ignored.
func WithRetryMaxWaitTime(maxWaitTime time.Duration) Option {
	return func(o *Options) {
		if maxWaitTime >= 100*time.Millisecond {
			o.retryMaxWaitTime = maxWaitTime
		}
	}
}

// WithAttemptLogger sets the logger that records each delivery attempt.
func WithAttemptLogger(logger AttemptLogger) Option {
	return func(o *Options) {
		if logger != nil {
			o.attemptLogger = logger
		}
	}
}

// WithRetryPolicy overrides the retry condition. See [DefaultRetryPolicy].
func WithRetryPolicy(policy func(*resty.Response, error) bool) Option {
	return func(o *Options) {
		if policy != nil {
			o.retryPolicy = policy
		}
	}
}

// WithRequestHeader adds a header to every outbound request. Content-Type,
// Accept and Authorization are protected and cannot be overridden.
func WithRequestHeader(header, value string) Option {
	return func(o *Options) {
		header = strings.TrimSpace(header)

		if header == "" ||
			strings.EqualFold(header, headerContentType) ||
			strings.EqualFold(header, headerAccept) ||
			strings.EqualFold(header, headerAuthorization) {
			return
		}

		o.requestHeaders[header] = value
	}
}

func (o *Options) Validate() error {
	if o.retryWaitTime != 0 && o.retryWaitTime < 100*time.Millisecond {
		return errors.New("retryWaitTime must be at least 100ms")
	}

	if o.retryWaitTime > time.Minute {
		return fmt.Errorf("retryWaitTime must not exceed %s", time.Minute)
	}

	if o.retryMaxWaitTime != 0 && o.retryMaxWaitTime < 100*time.Millisecond {
		return errors.New("retryMaxWaitTime must be at least 100ms")
	}

	if o.retryMaxWaitTime > 5*time.Minute {
		return fmt.Errorf("retryMaxWaitTime must not exceed %s", 5*time.Minute)
	}

	if o.retryWaitTime != 0 && o.retryMaxWaitTime != 0 && o.retryMaxWaitTime < o.retryWaitTime {
		return fmt.Errorf("retryMaxWaitTime (%s) must be greater than or equal to retryWaitTime (%s)",
			o.retryMaxWaitTime, o.retryWaitTime)
	}

	if o.attemptLogger == nil {
		return errors.New("attemptLogger must not be nil")
	}

	if o.retryPolicy == nil {
		return errors.New("retryPolicy must not be nil")
	}

	return nil
}
