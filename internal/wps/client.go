package wps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/five82/shelf/internal/cache"
	"github.com/five82/shelf/internal/metrics"
)

// Searcher executes shop requests. It is implemented by *Client and can be
// replaced in tests.
type Searcher interface {
	Search(ctx context.Context, u *url.URL) (*ShopResponse, error)
}

// Ensure Client implements Searcher at compile time.
var _ Searcher = (*Client)(nil)

const (
	defaultUserAgent      = "shelf/0.1"
	defaultRequestTimeout = 10 * time.Second
	maxBodyBytes          = 16 << 20
)

// StatusError reports a non-success HTTP status. The payload returned next to
// it, if any, is a best-effort decode of the error body.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.URL, e.Code)
}

// ClientOptions configure a Client. Zero values use defaults.
type ClientOptions struct {
	Timeout   time.Duration
	UserAgent string
	Cache     cache.Cache
	Metrics   *metrics.Recorder
	Logger    *zap.Logger
	HTTP      *http.Client
}

// Client talks to the shop endpoint. The endpoint is part of every request
// URL because users can change it at runtime.
type Client struct {
	http      *http.Client
	userAgent string
	cache     cache.Cache
	metrics   *metrics.Recorder
	logger    *zap.Logger
}

// NewClient builds a Client.
func NewClient(opts ClientOptions) *Client {
	httpClient := opts.HTTP
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultRequestTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http:      httpClient,
		userAgent: userAgent,
		cache:     opts.Cache,
		metrics:   opts.Metrics,
		logger:    logger,
	}
}

// Search fetches and decodes the shop response for u.
func (c *Client) Search(ctx context.Context, u *url.URL) (*ShopResponse, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if u == nil {
		return nil, fmt.Errorf("request url is nil")
	}
	rawURL := u.String()
	key := cache.Key(rawURL)

	if c.cache != nil {
		body, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			c.logger.Warn("cache lookup failed", zap.String("url", rawURL), zap.Error(err))
		}
		c.metrics.CacheLookup(ok)
		if ok {
			var payload ShopResponse
			if err := json.Unmarshal(body, &payload); err == nil {
				return &payload, nil
			}
			c.logger.Warn("discarding undecodable cache entry", zap.String("url", rawURL))
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var statusErr error
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr = &StatusError{URL: rawURL, Code: resp.StatusCode}
	}

	var payload ShopResponse
	decoder := json.NewDecoder(bytes.NewReader(body))
	if err := decoder.Decode(&payload); err != nil {
		if statusErr != nil {
			return nil, statusErr
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if statusErr != nil {
		return &payload, statusErr
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, body); err != nil {
			c.logger.Warn("cache store failed", zap.String("url", rawURL), zap.Error(err))
		}
	}
	return &payload, nil
}

// IsStatusError reports whether err carries a non-success HTTP status.
func IsStatusError(err error) (*StatusError, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}
