package chat

import (
	"errors"
	"strings"
	"time"
)

// Config holds configuration for the conversation simulator.
type Config struct {
	// Host is the base URL of an OpenAI-compatible chat endpoint.
	// Empty means local-only: replies always come from the templated
	// generator. Example: "http://localhost:11434/v1"
	Host string

	// Model is the model identifier for remote generation.
	Model string

	// MaxAttempts is how many times a remote generation is tried
	// before falling back to the local generator.
	MaxAttempts int

	// BaseDelay is the backoff delay after the first failed remote
	// attempt; it doubles on each retry.
	BaseDelay time.Duration

	// HistoryLimit is the number of most recent exchanges kept as
	// context for remote generation.
	HistoryLimit int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the remote chat endpoint.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithModel sets the remote model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithMaxAttempts sets the remote retry budget.
func WithMaxAttempts(n int) ConfigOption {
	return func(c *Config) {
		c.MaxAttempts = n
	}
}

// WithBaseDelay sets the initial retry backoff delay.
func WithBaseDelay(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.BaseDelay = d
	}
}

// WithHistoryLimit sets how many exchanges are kept as context.
func WithHistoryLimit(n int) ConfigOption {
	return func(c *Config) {
		c.HistoryLimit = n
	}
}

// DefaultConfig returns a Config with sensible defaults for a local
// OpenAI-compatible service. Remote generation stays off until a host
// is set.
func DefaultConfig() *Config {
	return &Config{
		Host:         "",
		Model:        "qwen2.5:3b",
		MaxAttempts:  3,
		BaseDelay:    500 * time.Millisecond,
		HistoryLimit: 10,
	}
}

// NewConfig creates a Config with the default values and applies the
// provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form: a
// non-empty host gets the /v1 suffix OpenAI-compatible APIs expect.
func (c *Config) Normalize() {
	if c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		c.Host = strings.TrimSuffix(c.Host, "/")
		c.Host = c.Host + "/v1"
	}
}

// Validate checks that the configuration is valid and complete. It
// normalizes the configuration first.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host != "" && c.Model == "" {
		return errors.New("chat config: Model is required when Host is set")
	}
	if c.MaxAttempts < 1 {
		return errors.New("chat config: MaxAttempts must be at least 1")
	}
	if c.BaseDelay < 0 {
		return errors.New("chat config: BaseDelay cannot be negative")
	}
	if c.HistoryLimit < 1 {
		return errors.New("chat config: HistoryLimit must be at least 1")
	}
	return nil
}
