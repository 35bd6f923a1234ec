package httputil

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/mwarrick/digital-business-card-sub004/pkg/cache"
	errs "github.com/mwarrick/digital-business-card-sub004/pkg/errors"
	"github.com/mwarrick/digital-business-card-sub004/pkg/observability"
)

const (
	// DefaultTimeout bounds a single asset request. Assets are optional, so a
	// slow host should cost a render little.
	DefaultTimeout = 5 * time.Second

	// DefaultMaxBytes caps the size of a fetched asset.
	DefaultMaxBytes = 8 << 20

	defaultAttempts = 2
	defaultDelay    = 200 * time.Millisecond
)

// Client fetches asset bytes over HTTP with caching and retries.
// It is safe for concurrent use.
type Client struct {
	http     *http.Client
	cache    cache.Cache
	keyer    cache.Keyer
	headers  map[string]string
	attempts int
	delay    time.Duration
	maxBytes int64
}

// Option configures a Client.
type Option func(*Client)

// WithCache stores response bodies in c under keys built by k.
func WithCache(c cache.Cache, k cache.Keyer) Option {
	return func(cl *Client) {
		if c != nil {
			cl.cache = c
		}
		if k != nil {
			cl.keyer = k
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.http.Timeout = d
		}
	}
}

// WithHeaders sets headers applied to every request.
func WithHeaders(h map[string]string) Option {
	return func(cl *Client) { cl.headers = h }
}

// WithRetry sets the retry attempts and initial backoff delay.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(cl *Client) {
		cl.attempts = attempts
		cl.delay = delay
	}
}

// WithHTTPClient replaces the underlying http.Client, mostly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(cl *Client) {
		if hc != nil {
			cl.http = hc
		}
	}
}

// NewClient creates a Client. Without options it has no cache, a 5s
// timeout and two attempts.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:     &http.Client{Timeout: DefaultTimeout},
		cache:    cache.NewNullCache(),
		keyer:    cache.NewDefaultKeyer(),
		attempts: defaultAttempts,
		delay:    defaultDelay,
		maxBytes: DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetBytes fetches url and returns the body. Results are cached under
// namespace for ttl.
func (c *Client) GetBytes(ctx context.Context, namespace, url string, ttl time.Duration) ([]byte, error) {
	key := c.keyer.HTTPKey(namespace, url)
	data, hit, err := cache.Fetch(ctx, c.cache, key, ttl, func() ([]byte, error) {
		var body []byte
		err := Retry(ctx, c.attempts, c.delay, func() error {
			b, err := c.get(ctx, url)
			body = b
			return err
		})
		return body, err
	})
	if err != nil {
		return nil, err
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, namespace)
	} else {
		observability.Cache().OnCacheMiss(ctx, namespace)
		observability.Cache().OnCacheSet(ctx, namespace, len(data))
	}
	return data, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "build request")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	host, path := req.URL.Host, req.URL.Path
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil {
			return nil, errs.Wrap(errs.ErrCodeTimeout, err, "GET %s", host)
		}
		return nil, Retryable(errs.Wrap(errs.ErrCodeNetwork, err, "GET %s", host))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode, host); err != nil {
		return nil, err
	}
	return io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
}

func checkStatus(code int, host string) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errs.New(errs.ErrCodeNotFound, "%s: status %d", host, code)
	case code >= 500:
		return Retryable(errs.New(errs.ErrCodeNetwork, "%s: status %d", host, code))
	default:
		return errs.New(errs.ErrCodeNetwork, "%s: status %d", host, code)
	}
}
