package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// envPrefix is the prefix stripped from environment variables by
// [LoadConfig]. Nested keys use a double underscore, e.g.
// BASELOG_TIMEOUTS__CONNECT maps to timeouts.connect.
const envPrefix = "BASELOG_"

// Environment names the deployment environment a client runs in.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

// ParseEnvironment returns the environment matching the given name,
// case-insensitively.
func ParseEnvironment(name string) (Environment, error) {
	for _, e := range []Environment{EnvDevelopment, EnvStaging, EnvProduction} {
		if strings.EqualFold(name, string(e)) {
			return e, nil
		}
	}
	return "", fmt.Errorf("invalid environment: %q, must be one of development, staging, production", name)
}

// Timeouts holds the per-phase HTTP timeouts.
type Timeouts struct {
	Connect time.Duration `koanf:"connect"`
	Read    time.Duration `koanf:"read"`
	Write   time.Duration `koanf:"write"`
	Pool    time.Duration `koanf:"pool"`
}

// DefaultTimeouts returns the stock timeout set.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Connect: 10 * time.Second,
		Read:    30 * time.Second,
		Write:   30 * time.Second,
		Pool:    60 * time.Second,
	}
}

// RetryConfig holds the retry policy knobs. StatusForcelist and
// AllowedMethods mirror the backend contract; the client retries only on
// transport-level failures, see [DefaultRetryPolicy].
type RetryConfig struct {
	MaxAttempts     int      `koanf:"max_attempts" validate:"gte=1"`
	BackoffFactor   float64  `koanf:"backoff_factor" validate:"gt=0"`
	StatusForcelist []int    `koanf:"status_forcelist"`
	AllowedMethods  []string `koanf:"allowed_methods"`
}

// DefaultRetry returns the stock retry policy.
func DefaultRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts:     3,
		BackoffFactor:   1.0,
		StatusForcelist: []int{429, 500, 502, 503, 504},
		AllowedMethods:  []string{"POST", "PUT", "PATCH"},
	}
}

// Config is the immutable settings bundle a delivery client is built from.
// The client copies it at construction; callers must not mutate it afterwards.
type Config struct {
	BaseURL       string        `koanf:"base_url" validate:"required,url"`
	APIKey        string        `koanf:"api_key" validate:"required"`
	Environment   Environment   `koanf:"environment" validate:"required,oneof=development staging production"`
	Timeouts      Timeouts      `koanf:"timeouts"`
	Retry         RetryConfig   `koanf:"retry"`
	BatchSize     int           `koanf:"batch_size" validate:"gte=1"`
	BatchInterval time.Duration `koanf:"batch_interval"`
}

// NewConfig builds a config with stock timeouts, retry policy and batching
// hints for the given backend coordinates.
func NewConfig(baseURL, apiKey string, environment Environment) Config {
	return applyDefaults(Config{
		BaseURL:     baseURL,
		APIKey:      apiKey,
		Environment: environment,
	})
}

func applyDefaults(cfg Config) Config {
	if cfg.Environment == "" {
		cfg.Environment = EnvDevelopment
	}
	timeouts := DefaultTimeouts()
	if cfg.Timeouts.Connect == 0 {
		cfg.Timeouts.Connect = timeouts.Connect
	}
	if cfg.Timeouts.Read == 0 {
		cfg.Timeouts.Read = timeouts.Read
	}
	if cfg.Timeouts.Write == 0 {
		cfg.Timeouts.Write = timeouts.Write
	}
	if cfg.Timeouts.Pool == 0 {
		cfg.Timeouts.Pool = timeouts.Pool
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry.MaxAttempts = DefaultRetry().MaxAttempts
	}
	if cfg.Retry.BackoffFactor == 0 {
		cfg.Retry.BackoffFactor = DefaultRetry().BackoffFactor
	}
	if cfg.Retry.StatusForcelist == nil {
		cfg.Retry.StatusForcelist = DefaultRetry().StatusForcelist
	}
	if cfg.Retry.AllowedMethods == nil {
		cfg.Retry.AllowedMethods = DefaultRetry().AllowedMethods
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.BatchInterval == 0 {
		cfg.BatchInterval = 5 * time.Second
	}
	return cfg
}

// Validate checks the config against its field constraints.
func (c Config) Validate() error {
	return validator.New().Struct(c)
}

// LoadConfig loads the configuration from BASELOG_-prefixed environment
// variables, after a best-effort .env load. A missing base URL or API key is
// an error, not a local-fallback trigger.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := Config{}
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg = applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
