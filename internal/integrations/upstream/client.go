package upstream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"chat-relay/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 4096
	maxBody        = 1 << 20
)

// HTTPStatusError captures non-2xx upstream responses with status-aware context.
type HTTPStatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("upstream: unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

func (e *HTTPStatusError) HTTPStatusCode() int {
	return e.StatusCode
}

// ResponseBody returns the raw upstream body for diagnostics.
func (e *HTTPStatusError) ResponseBody() string {
	return e.Body
}

// Client sends assembled requests to an upstream provider. It never retries.
type Client struct {
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a Client whose requests time out after timeout. A
// non-positive timeout falls back to 30 seconds.
func NewClient(timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{httpClient: &http.Client{Timeout: timeout}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) resolvedHTTPClient() *http.Client {
	if c.httpClient != nil {
		return c.httpClient
	}
	return &http.Client{Timeout: defaultTimeout}
}

// Do issues a single POST and returns the status and body of a 2xx response.
func (c *Client) Do(ctx context.Context, out domain.OutboundRequest) (domain.UpstreamResponse, error) {
	if out.URL == "" {
		return domain.UpstreamResponse{}, errors.New("upstream: url must not be empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, out.URL, bytes.NewReader(out.Body))
	if err != nil {
		return domain.UpstreamResponse{}, fmt.Errorf("upstream: create request: %w", err)
	}
	for name, values := range out.Headers {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}

	res, err := c.resolvedHTTPClient().Do(req)
	if err != nil {
		return domain.UpstreamResponse{}, fmt.Errorf("upstream: request failed: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		buf, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return domain.UpstreamResponse{}, &HTTPStatusError{
			StatusCode: res.StatusCode,
			URL:        out.URL,
			Body:       string(buf),
		}
	}

	buf, err := io.ReadAll(io.LimitReader(res.Body, maxBody))
	if err != nil {
		return domain.UpstreamResponse{}, fmt.Errorf("upstream: read response body: %w", err)
	}
	return domain.UpstreamResponse{StatusCode: res.StatusCode, Body: buf}, nil
}
