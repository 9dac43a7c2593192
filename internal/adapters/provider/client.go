package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Default client configuration constants.
const (
	DefaultTimeout   = 15 * time.Second
	defaultUserAgent = "livescores/1.0"
	maxErrorBody     = 512
)

// Client performs context-bound JSON GETs against one provider base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	query      url.Values
}

// ClientOption applies a configuration option to the Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithQueryParam adds a parameter sent with every request (e.g. api_key).
func WithQueryParam(key, value string) ClientOption {
	return func(c *Client) {
		if key != "" && value != "" {
			c.query.Set(key, value)
		}
	}
}

// NewClient creates a Client for baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		userAgent:  defaultUserAgent,
		query:      url.Values{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// GetJSON fetches baseURL+path with query and decodes the body into v.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, v any) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("build url: %w", err)
	}
	q := u.Query()
	for k, vals := range c.query {
		for _, val := range vals {
			q.Add(k, val)
		}
	}
	for k, vals := range query {
		for _, val := range vals {
			q.Add(k, val)
		}
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", redact(u), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{StatusCode: resp.StatusCode, URL: redact(u), Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		if err == io.EOF {
			return ErrNoData
		}
		return fmt.Errorf("decode %s: %w", redact(u), err)
	}
	return nil
}

// redact drops the query string so keys never reach logs.
func redact(u *url.URL) string {
	c := *u
	c.RawQuery = ""
	return c.String()
}
