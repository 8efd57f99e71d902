package websearch

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

const (
	defaultHTMLEndpoint = "https://html.duckduckgo.com/html/"
	defaultLiteEndpoint = "https://api.duckduckgo.com/"

	// SiteScope restricts every query to UK sites, where the consumer
	// rights the tracker deals with actually apply.
	SiteScope = "site:.uk"
)

// Config holds configuration for the web searcher.
type Config struct {
	// HTMLEndpoint is the search engine's HTML results page.
	HTMLEndpoint string

	// LiteEndpoint is the instant-answer JSON API used as a fallback
	// when the HTML page cannot be fetched or parsed.
	LiteEndpoint string

	// RelayPrefix, when non-empty, is prepended to every request URL.
	// It points at a CORS-style forwarding relay for environments that
	// cannot reach the endpoints directly.
	RelayPrefix string

	// Timeout bounds each HTTP request.
	Timeout time.Duration

	// Client overrides the HTTP client. Nil means a default client
	// with Timeout applied.
	Client *http.Client
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHTMLEndpoint sets the primary HTML results endpoint.
func WithHTMLEndpoint(url string) ConfigOption {
	return func(c *Config) {
		c.HTMLEndpoint = url
	}
}

// WithLiteEndpoint sets the fallback instant-answer endpoint.
func WithLiteEndpoint(url string) ConfigOption {
	return func(c *Config) {
		c.LiteEndpoint = url
	}
}

// WithRelayPrefix sets the forwarding relay prepended to request URLs.
func WithRelayPrefix(prefix string) ConfigOption {
	return func(c *Config) {
		c.RelayPrefix = prefix
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ConfigOption {
	return func(c *Config) {
		c.Client = client
	}
}

// DefaultConfig returns a Config pointed at DuckDuckGo with no relay.
func DefaultConfig() *Config {
	return &Config{
		HTMLEndpoint: defaultHTMLEndpoint,
		LiteEndpoint: defaultLiteEndpoint,
		RelayPrefix:  "",
		Timeout:      15 * time.Second,
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

// Normalize ensures the configuration is in a canonical form.
func (c *Config) Normalize() {
	c.HTMLEndpoint = strings.TrimSpace(c.HTMLEndpoint)
	c.LiteEndpoint = strings.TrimSpace(c.LiteEndpoint)
	c.RelayPrefix = strings.TrimSpace(c.RelayPrefix)
}

// Validate checks that the configuration is valid and complete. It
// normalizes the configuration first.
func (c *Config) Validate() error {
	c.Normalize()

	if c.HTMLEndpoint == "" {
		return errors.New("websearch config: HTMLEndpoint is required")
	}
	if c.LiteEndpoint == "" {
		return errors.New("websearch config: LiteEndpoint is required")
	}
	if c.Timeout <= 0 {
		return errors.New("websearch config: Timeout must be positive")
	}
	return nil
}

func (c *Config) httpClient() *http.Client {
	if c.Client != nil {
		return c.Client
	}
	return &http.Client{Timeout: c.Timeout}
}
