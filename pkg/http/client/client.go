package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultUserAgent = "argoview-backend/1.0"

type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the upstream answered with a 2xx status
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

type Interface interface {
	Get(ctx context.Context, path string, query url.Values) (*Response, error)
}

type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	GetFunc    func(ctx context.Context, path string, query url.Values) (*Response, error)
}

type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

func New(opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}

	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}

	return &Client{
		baseURL:   opts.BaseURL,
		userAgent: opts.UserAgent,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
	}
}

// BaseURL returns the prefix every request path is joined to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL builds the absolute request URL for path and query
func (c *Client) URL(path string, query url.Values) string {
	fullURL := c.baseURL + path // With no base URL the path is already absolute
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}
	return fullURL
}

func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	if c.GetFunc != nil {
		return c.GetFunc(ctx, path, query)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(path, query), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			return
		}
	}(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}
