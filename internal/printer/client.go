package printer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Response is the part of an HTTP response the UI reports back to the user.
type Response struct {
	StatusCode int
	StatusText string
	Body       string
}

// OK reports whether the status is in the 2xx success range.
func (r *Response) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Client talks to the printer server's HTTP API.
type Client struct {
	baseURL   *url.URL
	prefix    string
	http      *http.Client
	userAgent string
}

const (
	defaultAPIURL    = "http://localhost:8080"
	defaultPrefix    = "/api"
	defaultUserAgent = "receipt/0.1"
	pingTimeout      = 3 * time.Second
)

// Option customises a Client.
type Option func(*Client)

// WithPrefix sets the path prefix placed before every endpoint.
func WithPrefix(prefix string) Option {
	return func(c *Client) {
		c.prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	}
}

// WithTimeout bounds each request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient builds a Client for apiURL, which may be a full URL or host:port.
func NewClient(apiURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		prefix:    defaultPrefix,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the absolute URL a submission to path is sent to.
func (c *Client) Endpoint(path string) string {
	rel := &url.URL{Path: c.prefix + "/" + strings.TrimLeft(path, "/")}
	return c.baseURL.ResolveReference(rel).String()
}

// Post sends the submission and returns the server's answer. Non-2xx statuses
// are not errors here; only transport failures are.
func (c *Client) Post(ctx context.Context, sub Submission) (*Response, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(sub.Path) == "" {
		return nil, fmt.Errorf("submission path is empty")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(sub.Path), bytes.NewReader(sub.Body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if sub.ContentType != "" {
		req.Header.Set("Content-Type", sub.ContentType)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return &Response{
		StatusCode: resp.StatusCode,
		StatusText: statusText(resp),
		Body:       string(body),
	}, nil
}

// Ping checks that the server answers at all. Any response below 500 counts
// as reachable.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("ping returned status %d", resp.StatusCode)
	}
	return nil
}

// statusText prefers the reason phrase the server sent and falls back to the
// standard one.
func statusText(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	if text := strings.TrimSpace(strings.TrimPrefix(resp.Status, code)); text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = defaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", apiURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", apiURL)
	}
	u.Path = "/"
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
