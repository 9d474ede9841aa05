package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/artistgraph/pkg/cache"
	"github.com/matzehuels/artistgraph/pkg/httputil"
	"github.com/matzehuels/artistgraph/pkg/observability"
)

// Client provides shared HTTP functionality for the upstream API clients.
// It handles caching, retry logic, rate-limit responses, and common headers.
type Client struct {
	http      *http.Client
	cache     cache.Cache
	namespace string
	ttl       time.Duration
	headers   map[string]string
}

// NewClient creates a Client that stores responses in c under the given
// namespace (see [cache.HTTPKey]) for ttl. Headers are applied to all
// requests made through this client. Pass nil for headers if no default
// headers are needed, and nil for c to disable caching.
func NewClient(c cache.Cache, namespace string, ttl time.Duration, headers map[string]string) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Client{
		http:      NewHTTPClient(),
		cache:     c,
		namespace: strings.TrimSuffix(namespace, ":"),
		ttl:       ttl,
		headers:   headers,
	}
}

// SetHTTPClient replaces the underlying HTTP client.
func (c *Client) SetHTTPClient(h *http.Client) { c.http = h }

// SetHeader sets a default header applied to every subsequent request.
func (c *Client) SetHeader(key, value string) {
	if c.headers == nil {
		c.headers = make(map[string]string)
	}
	c.headers[key] = value
}

// Cached retrieves a value from cache or executes fetch and caches the result.
// If refresh is true, the cache is bypassed and fetch is always called.
// The fetch function should populate v; on success, v is stored in the cache.
// Cache failures are never fatal: a broken backend behaves like a miss.
func (c *Client) Cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	full := cache.HTTPKey(c.namespace, key)
	if !refresh {
		data, hit, err := c.cache.Get(ctx, full)
		if err == nil && hit && json.Unmarshal(data, v) == nil {
			observability.Cache().OnCacheHit(ctx, c.namespace)
			return nil
		}
		observability.Cache().OnCacheMiss(ctx, c.namespace)
	}
	if err := httputil.RetryWithBackoff(ctx, fetch); err != nil {
		return err
	}
	if data, err := json.Marshal(v); err == nil {
		if c.cache.Set(ctx, full, data, c.ttl) == nil {
			observability.Cache().OnCacheSet(ctx, c.namespace, len(data))
		}
	}
	return nil
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
// It uses the client's default headers.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	return c.GetWithHeaders(ctx, url, nil, v)
}

// GetWithHeaders performs an HTTP GET with additional headers merged with defaults.
// Request-specific headers override client defaults for the same key.
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	return c.Do(req, headers, v)
}

// Do sends req with default and extra headers applied and JSON-decodes a
// successful response into v. Non-2xx responses are mapped by status:
// 404 to [ErrNotFound], 429 and 5xx to a retryable error.
func (c *Client) Do(req *http.Request, headers map[string]string, v any) error {
	body, err := c.doRequest(req, headers)
	if err != nil {
		return err
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", req.URL.Host, err)
	}
	return nil
}

func (c *Client) doRequest(req *http.Request, headers map[string]string) (io.ReadCloser, error) {
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	ctx := req.Context()
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	hooks.OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode, resp.Header.Get("Retry-After")); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(code int, retryAfter string) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusTooManyRequests:
		return &httputil.RetryableError{
			Err:   ErrRateLimited,
			After: httputil.ParseRetryAfter(retryAfter, 0),
		}
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", ErrUnauthorized, code)
	case code >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
