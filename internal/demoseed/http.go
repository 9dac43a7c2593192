package demoseed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/okian/livescores/internal/domain/model"
)

// httpClient talks to the live score API.
type httpClient struct {
	baseURL string
	client  *http.Client
}

func newHTTPClient(baseURL string, timeout time.Duration) *httpClient {
	return &httpClient{baseURL: baseURL, client: &http.Client{Timeout: timeout}}
}

func (c *httpClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, bytes.TrimSpace(data))
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func (c *httpClient) checkHealth(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

func (c *httpClient) bind(ctx context.Context, b Binding) error {
	sub := model.Subscription{League: b.League, EventID: b.EventID}
	return c.do(ctx, http.MethodPut, "/posts/"+url.PathEscape(b.ContentID)+"/subscription", sub, nil)
}

func (c *httpClient) score(ctx context.Context, contentID string) (*model.ScoreInfo, error) {
	var info model.ScoreInfo
	if err := c.do(ctx, http.MethodGet, "/posts/"+url.PathEscape(contentID)+"/score", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
