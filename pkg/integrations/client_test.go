package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matzehuels/artistgraph/pkg/cache"
	"github.com/matzehuels/artistgraph/pkg/httputil"
)

func newTestClient(t *testing.T, headers map[string]string) (*Client, *cache.FileCache) {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return NewClient(c, "test:", time.Hour, headers), c
}

func TestNewClient(t *testing.T) {
	headers := map[string]string{"Authorization": "Bearer token"}
	client, c := newTestClient(t, headers)

	if client.http == nil {
		t.Error("NewClient() http client is nil")
	}
	if client.cache != cache.Cache(c) {
		t.Error("NewClient() cache not set correctly")
	}
	if client.namespace != "test" {
		t.Errorf("NewClient() namespace = %q, want %q", client.namespace, "test")
	}
	if client.headers["Authorization"] != "Bearer token" {
		t.Error("NewClient() headers not set correctly")
	}
}

func TestNewClientNilCache(t *testing.T) {
	client := NewClient(nil, "test", time.Hour, nil)
	if client.cache == nil {
		t.Fatal("NewClient(nil) should fall back to a null cache")
	}
	if client.headers != nil {
		t.Error("NewClient() should allow nil headers")
	}
}

func TestClientGet(t *testing.T) {
	type response struct {
		Message string `json:"message"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		json.NewEncoder(w).Encode(response{Message: "hello"})
	}))
	defer server.Close()

	client, _ := newTestClient(t, nil)
	client.SetHTTPClient(server.Client())

	var resp response
	if err := client.Get(context.Background(), server.URL, &resp); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if resp.Message != "hello" {
		t.Errorf("Get() message = %q, want %q", resp.Message, "hello")
	}
}

func TestClientGetWithHeadersOverridesDefaults(t *testing.T) {
	var override, def string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		override = r.Header.Get("X-Override")
		def = r.Header.Get("X-Default")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client, _ := newTestClient(t, map[string]string{"X-Override": "default", "X-Default": "kept"})
	client.SetHTTPClient(server.Client())

	var resp map[string]string
	err := client.GetWithHeaders(context.Background(), server.URL, map[string]string{"X-Override": "overridden"}, &resp)
	if err != nil {
		t.Fatalf("GetWithHeaders() error: %v", err)
	}
	if override != "overridden" {
		t.Errorf("header = %q, want %q", override, "overridden")
	}
	if def != "kept" {
		t.Errorf("default header = %q, want %q", def, "kept")
	}
}

func TestClientSetHeader(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(nil, "test", 0, nil)
	client.SetHTTPClient(server.Client())
	client.SetHeader("User-Agent", "artistgraph-test/1.0")

	var resp map[string]any
	if err := client.Get(context.Background(), server.URL, &resp); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != "artistgraph-test/1.0" {
		t.Errorf("User-Agent = %q", got)
	}
}

func TestClientGet404(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	client, _ := newTestClient(t, nil)
	client.SetHTTPClient(server.Client())

	var resp map[string]string
	err := client.Get(context.Background(), server.URL, &resp)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestClientGet429(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "3")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, _ := newTestClient(t, nil)
	client.SetHTTPClient(server.Client())

	var resp map[string]string
	err := client.Get(context.Background(), server.URL, &resp)
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("Get() error = %v, want ErrRateLimited", err)
	}
	var re *httputil.RetryableError
	if !errors.As(err, &re) {
		t.Fatalf("Get() error should be RetryableError, got %T", err)
	}
	if re.After != 4*time.Second {
		t.Errorf("After = %v, want 4s", re.After)
	}
}

func TestClientGetBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer server.Close()

	client, _ := newTestClient(t, nil)
	client.SetHTTPClient(server.Client())

	var resp map[string]string
	if err := client.Get(context.Background(), server.URL, &resp); err == nil {
		t.Error("Get() should fail on malformed JSON")
	}
}

func TestClientCached(t *testing.T) {
	client, _ := newTestClient(t, nil)
	ctx := context.Background()

	type testData struct {
		Value string `json:"value"`
	}

	fetchCount := 0
	fetch := func(v *testData) func() error {
		return func() error {
			fetchCount++
			*v = testData{Value: "fetched"}
			return nil
		}
	}

	var first testData
	if err := client.Cached(ctx, "artist:lamp", false, &first, fetch(&first)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	var second testData
	if err := client.Cached(ctx, "artist:lamp", false, &second, fetch(&second)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}

	if fetchCount != 1 {
		t.Errorf("fetch count = %d, want 1", fetchCount)
	}
	if second.Value != "fetched" {
		t.Errorf("cached value = %q, want %q", second.Value, "fetched")
	}
}

func TestClientCachedUsesHTTPKey(t *testing.T) {
	client, c := newTestClient(t, nil)
	ctx := context.Background()

	v := "payload"
	if err := client.Cached(ctx, "k", false, &v, func() error { return nil }); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, cache.HTTPKey("test", "k")); !hit {
		t.Error("entry not stored under http:test:k")
	}
}

func TestClientCachedRefresh(t *testing.T) {
	client, _ := newTestClient(t, nil)
	ctx := context.Background()

	fetchCount := 0
	var value string
	fetch := func() error {
		fetchCount++
		value = "fetched"
		return nil
	}

	for range 2 {
		if err := client.Cached(ctx, "test-key", true, &value, fetch); err != nil {
			t.Fatalf("Cached() error: %v", err)
		}
	}
	if fetchCount != 2 {
		t.Errorf("fetch count = %d, want 2", fetchCount)
	}
}

func TestClientCachedFetchError(t *testing.T) {
	client, c := newTestClient(t, nil)
	ctx := context.Background()

	fetchCount := 0
	var value string
	err := client.Cached(ctx, "missing", false, &value, func() error {
		fetchCount++
		return ErrNotFound
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Cached() error = %v, want ErrNotFound", err)
	}
	if fetchCount != 1 {
		t.Errorf("non-retryable error fetched %d times, want 1", fetchCount)
	}
	if _, hit, _ := c.Get(ctx, cache.HTTPKey("test", "missing")); hit {
		t.Error("failed fetch should not be cached")
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		name       string
		code       int
		wantErr    bool
		wantType   error
		isRetryErr bool
	}{
		{name: "200 OK", code: 200},
		{name: "204 No Content", code: 204},
		{name: "404 Not Found", code: 404, wantErr: true, wantType: ErrNotFound},
		{name: "429 Too Many Requests", code: 429, wantErr: true, wantType: ErrRateLimited, isRetryErr: true},
		{name: "401 Unauthorized", code: 401, wantErr: true, wantType: ErrUnauthorized},
		{name: "500 Internal Server Error", code: 500, wantErr: true, wantType: ErrNetwork, isRetryErr: true},
		{name: "503 Service Unavailable", code: 503, wantErr: true, isRetryErr: true},
		{name: "400 Bad Request", code: 400, wantErr: true, wantType: ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkStatus(tt.code, "")

			if !tt.wantErr {
				if err != nil {
					t.Errorf("checkStatus() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("checkStatus() should return error")
			}
			if tt.wantType != nil && !errors.Is(err, tt.wantType) {
				t.Errorf("checkStatus() error = %v, want %v", err, tt.wantType)
			}
			var retryErr *httputil.RetryableError
			if got := errors.As(err, &retryErr); got != tt.isRetryErr {
				t.Errorf("checkStatus() retryable = %v, want %v", got, tt.isRetryErr)
			}
		})
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Fishmans", "fishmans"},
		{"  Wednesday   Campanella ", "wednesday campanella"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.input); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestURLEncode(t *testing.T) {
	if got := URLEncode("Hiroshi Yoshimura"); got != "Hiroshi+Yoshimura" {
		t.Errorf("URLEncode() = %q", got)
	}
}
