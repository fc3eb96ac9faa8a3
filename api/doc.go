// Package api provides the HTTP delivery client for the baselog backend.
//
// The client wraps [github.com/go-resty/resty/v2] with automatic retries,
// bounded connection pooling, and pluggable per-attempt logging.
//
// # Basic Usage
//
//	cfg := api.NewConfig("https://api.example.com", "my-key", api.EnvProduction)
//	c := api.New(cfg)
//
//	if err := c.Connect(ctx); err != nil {
//	    // remote delivery unavailable
//	}
//	defer c.Close()
//
//	record, err := api.NewLogRecord(api.LevelError, "payment declined",
//	    api.WithCategory("billing"),
//	    api.WithTags("payments", "declined"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	outcome, err := c.SendLog(ctx, record)
//
// # Configuration
//
// A [Config] is built explicitly with [NewConfig] or loaded from BASELOG_-
// prefixed environment variables with [LoadConfig]. The client copies the
// config at construction and completes it with defaults; non-config knobs
// are supplied as [Option] functions passed to [New]. Invalid option values
// are silently ignored and the default is retained; all options are
// validated when [Client.Connect] is called.
//
// # Retry Behaviour
//
// [DefaultRetryPolicy] retries on transient connection errors only, with
// exponential backoff derived from the config's backoff factor (floor 1s,
// ceiling 60s), up to the configured attempt budget. HTTP status failures
// are never retried: 401/403 surface as [*AuthenticationError], 429 as
// [*RateLimitError] carrying the backend's Retry-After hint, and other
// failures as [*BackendError]. Context cancellation aborts the in-flight
// attempt and starts no further retries.
//
// # Authentication
//
// The API key from the config is turned into bearer headers by
// [AuthProvider], which never exposes the raw key in errors or log output.
//
// # Logging
//
// Implement [AttemptLogger] and supply it via [WithAttemptLogger] to record
// each delivery attempt with its correlation id and backend request id. The
// default implementation emits structured zerolog lines; use
// [NoopAttemptLogger] to discard them.
package api
