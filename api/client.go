package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const (
	pingPath   = "/ping"
	logsPath   = "/projects/logs"
	eventsPath = "/projects/events"

	headerCorrelationID = "X-Correlation-ID"
	headerRequestID     = "X-Request-ID"
	headerRetryAfter    = "Retry-After"

	eventsNotSupportedMessage = "Events not supported yet"

	// Connection pool bounds, shared by all sends from one client.
	maxPoolConnections = 100
	maxIdleConnections = 20

	defaultRetryAfter = 60
)

// Client delivers log records to the logging backend. It owns one pooled
// connection set and one retry policy for its lifetime and is safe for
// concurrent sends.
type Client struct {
	baseURL string
	config  Config
	options *Options

	mu        sync.Mutex
	connected bool
	auth      *AuthProvider
	resty     *resty.Client
}

// New creates a client from the given config. The config is copied and
// completed with defaults; the caller's value is never mutated. Call
// [Client.Connect] before sending.
func New(cfg Config, opts ...Option) *Client {
	options := newClientOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	cfg = applyDefaults(cfg)
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		config:  cfg,
		options: options,
	}
}

// Connect validates the configuration and performs the remote readiness
// check: a ping against the backend with the client's auth headers. Remote
// delivery must be considered available only when Connect returns nil, never
// merely because [New] succeeded. Connect is idempotent; once it has
// succeeded, subsequent calls are no-ops.
func (c *Client) Connect(ctx context.Context) error {
	if c == nil {
		return errors.New("delivery client is nil")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		return nil
	}

	if c.baseURL == "" {
		return errors.New("base URL must be set")
	}

	if err := c.options.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	auth, err := NewAuthProvider(c.config.APIKey)
	if err != nil {
		return fmt.Errorf("invalid credentials: %w", err)
	}
	c.auth = auth
	c.resty = c.buildRestyClient()

	resp, err := c.resty.R().SetContext(ctx).Get(pingPath)
	if err != nil {
		return fmt.Errorf("failed to ping logging backend: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("failed to ping logging backend: status %d", resp.StatusCode())
	}

	c.connected = true
	return nil
}

// Ready reports whether the readiness check has succeeded.
func (c *Client) Ready() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Close releases the pooled connections. The client must be reconnected
// before it can send again.
func (c *Client) Close() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.resty != nil {
		c.resty.GetClient().CloseIdleConnections()
	}
	c.connected = false
}

func (c *Client) buildRestyClient() *resty.Client {
	transport := &http.Transport{
		DialContext:           (&net.Dialer{Timeout: c.config.Timeouts.Connect}).DialContext,
		ResponseHeaderTimeout: c.config.Timeouts.Read,
		IdleConnTimeout:       c.config.Timeouts.Pool,
		MaxConnsPerHost:       maxPoolConnections,
		MaxIdleConns:          maxIdleConnections,
		MaxIdleConnsPerHost:   maxIdleConnections,
	}

	// net/http has no isolated write deadline; the write phase shares the
	// overall request timeout with the read phase.
	httpClient := &http.Client{
		Transport: transport,
		Timeout:   c.config.Timeouts.Read + c.config.Timeouts.Write,
	}

	waitTime := c.options.retryWaitTime
	if waitTime == 0 {
		waitTime = time.Duration(c.config.Retry.BackoffFactor * float64(time.Second))
		if waitTime < time.Second {
			waitTime = time.Second
		}
	}
	maxWaitTime := c.options.retryMaxWaitTime
	if maxWaitTime == 0 {
		maxWaitTime = 60 * time.Second
	}
	if maxWaitTime < waitTime {
		maxWaitTime = waitTime
	}

	retryCount := c.config.Retry.MaxAttempts - 1
	if retryCount < 0 {
		retryCount = 0
	}

	rc := resty.NewWithClient(httpClient).
		SetBaseURL(c.baseURL).
		SetHeaders(c.options.requestHeaders).
		SetHeaders(c.auth.Headers()).
		SetRetryCount(retryCount).
		SetRetryWaitTime(waitTime).
		SetRetryMaxWaitTime(maxWaitTime).
		AddRetryCondition(c.options.retryPolicy)

	// One observability line per attempt: responses are recorded here,
	// transport-level failures by the retry hook below.
	rc.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		correlationID := resp.Request.Header.Get(headerCorrelationID)
		if correlationID == "" {
			return nil
		}
		c.options.attemptLogger.Attempt(
			resp.Request.Attempt,
			correlationID,
			resp.Header().Get(headerRequestID),
			resp.StatusCode(),
			nil,
		)
		return nil
	})
	rc.AddRetryHook(func(resp *resty.Response, err error) {
		if err == nil || resp == nil || resp.Request == nil {
			return
		}
		correlationID := resp.Request.Header.Get(headerCorrelationID)
		if correlationID == "" {
			return
		}
		c.options.attemptLogger.Attempt(resp.Request.Attempt, correlationID, "", 0, err)
	})

	return rc
}

// SendLog delivers one log record. The record is validated before any I/O;
// a missing correlation id is replaced with a freshly generated one, echoed
// back in the outcome. Transient transport failures are retried with
// exponential backoff up to the configured attempt budget; HTTP failures are
// mapped to the typed errors of this package and never retried.
func (c *Client) SendLog(ctx context.Context, record *LogRecord) (*DeliveryOutcome, error) {
	if c == nil {
		return nil, errors.New("delivery client is nil")
	}

	c.mu.Lock()
	connected, rc := c.connected, c.resty
	c.mu.Unlock()

	if !connected {
		return nil, errors.New("client not connected - call Connect() first")
	}

	if record == nil {
		return nil, &ValidationError{Reason: "log record is nil"}
	}
	if record.Message() == "" {
		return nil, &ValidationError{Reason: "message is required"}
	}

	correlationID := record.CorrelationID()
	if correlationID == "" {
		correlationID = uuid.NewString()
	}

	resp, err := rc.R().
		SetContext(ctx).
		SetHeader(headerCorrelationID, correlationID).
		SetBody(record).
		Post(logsPath)
	if err != nil {
		return nil, classifyTransportError(err)
	}

	if statusErr := classifyStatus(resp); statusErr != nil {
		return nil, statusErr
	}

	var data map[string]any
	if body := resp.Body(); len(body) > 0 {
		_ = json.Unmarshal(body, &data)
	}

	return &DeliveryOutcome{
		Success:       true,
		Data:          data,
		RequestID:     resp.Header().Get(headerRequestID),
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
	}, nil
}

// SendEvent accepts one event record. Event ingestion is not live on the
// backend yet: the record is validated and answered with a deterministic
// placeholder outcome, without any network call.
func (c *Client) SendEvent(ctx context.Context, event *EventRecord) (*DeliveryOutcome, error) {
	if c == nil {
		return nil, errors.New("delivery client is nil")
	}

	if err := event.Validate(); err != nil {
		return nil, err
	}

	return &DeliveryOutcome{
		Success: false,
		Data: map[string]any{
			"event_type": event.EventType,
			"message":    eventsNotSupportedMessage,
		},
		Timestamp:     time.Now().UTC(),
		CorrelationID: event.CorrelationID,
	}, nil
}

func classifyStatus(resp *resty.Response) error {
	status := resp.StatusCode()
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &AuthenticationError{StatusCode: status}
	case status == http.StatusTooManyRequests:
		return &RateLimitError{RetryAfter: parseRetryAfter(resp.Header().Get(headerRetryAfter))}
	case status >= 400:
		return &BackendError{StatusCode: status, Message: extractErrorMessage(resp.Body())}
	}
	return nil
}

func classifyTransportError(err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &TimeoutError{Err: err}
	case errors.As(err, &netErr) && netErr.Timeout():
		return &TimeoutError{Err: err}
	default:
		return &NetworkError{Err: err}
	}
}

func parseRetryAfter(header string) int {
	if header == "" {
		return defaultRetryAfter
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || seconds < 0 {
		return defaultRetryAfter
	}
	return seconds
}

func extractErrorMessage(body []byte) string {
	if len(body) == 0 {
		return "(empty error body)"
	}

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}

	return string(body)
}
