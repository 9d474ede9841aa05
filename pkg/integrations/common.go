package integrations

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when an artist or resource doesn't exist upstream.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")

	// ErrRateLimited is returned when the upstream answered 429 Too Many Requests.
	ErrRateLimited = errors.New("rate limited")

	// ErrUnauthorized is returned when credentials were missing or rejected.
	ErrUnauthorized = errors.New("unauthorized")
)

// NewHTTPClient creates an HTTP client with a standard timeout for API requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// NormalizeName converts an artist name to the form used in cache keys:
// trimmed, lowercased, inner whitespace collapsed to single spaces.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// URLEncode percent-encodes a string for use in URLs.
// This is a convenience wrapper around [url.QueryEscape].
func URLEncode(s string) string { return url.QueryEscape(s) }
