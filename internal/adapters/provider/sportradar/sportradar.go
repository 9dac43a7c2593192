// Package sportradar implements the Sportradar NFL and soccer adapters.
package sportradar

import (
	"fmt"
	"strings"
	"time"

	"github.com/okian/livescores/internal/adapters/provider"
)

// Defaults for the Sportradar API.
const (
	DefaultBaseURL     = "https://api.sportradar.com"
	DefaultAccessLevel = "trial"
	APIKeyParam        = "api_key"
)

type config struct {
	accessLevel string
	now         func() time.Time
}

// Option applies a configuration option to an adapter.
type Option func(*config)

// WithAccessLevel sets the access level path segment (trial, production).
func WithAccessLevel(level string) Option {
	return func(c *config) {
		if level = strings.TrimSpace(level); level != "" {
			c.accessLevel = level
		}
	}
}

// WithClock overrides the clock used to stamp GeneratedDate.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

func newConfig(opts []Option) config {
	c := config{accessLevel: DefaultAccessLevel, now: time.Now}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t.UTC(), nil
}

// NewClient is a convenience for a provider.Client carrying the API key.
func NewClient(baseURL, apiKey string, opts ...provider.ClientOption) *provider.Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return provider.NewClient(baseURL, append([]provider.ClientOption{provider.WithQueryParam(APIKeyParam, apiKey)}, opts...)...)
}
