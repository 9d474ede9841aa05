package musicbrainz

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/artistgraph/pkg/cache"
	"github.com/matzehuels/artistgraph/pkg/integrations"
)

const searchBody = `{
  "count": 2,
  "artists": [
    {"id": "mbid-fishmans", "name": "Fishmans", "score": 100},
    {"id": "mbid-other", "name": "Fishmans Tribute", "score": 60}
  ]
}`

const recordingsBody = `{
  "recording-count": 2,
  "recordings": [
    {
      "id": "r1",
      "title": "Long Season",
      "artist-credit": [
        {"name": "Fishmans", "joinphrase": " & ", "artist": {"id": "mbid-fishmans", "name": "Fishmans"}},
        {"name": "UA", "joinphrase": "", "artist": {"id": "mbid-ua", "name": "UA"}}
      ]
    },
    {
      "id": "r2",
      "title": "Night Cruising",
      "artist-credit": [
        {"name": "Fishmans", "joinphrase": "", "artist": {"id": "mbid-fishmans", "name": "Fishmans"}}
      ]
    }
  ]
}`

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	client := NewClient(c, time.Hour, Options{
		UserAgent: UserAgent("artistgraph", "test", "dev@example.com"),
		Interval:  time.Millisecond,
	})
	client.SetHTTPClient(server.Client())
	client.baseURL = server.URL + "/ws/2"
	return client
}

func TestSearchArtist(t *testing.T) {
	var ua string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		if r.URL.Path != "/ws/2/artist" {
			http.NotFound(w, r)
			return
		}
		if q := r.URL.Query(); q.Get("query") != "Fishmans" || q.Get("fmt") != "json" {
			t.Errorf("unexpected query %v", q)
		}
		w.Write([]byte(searchBody))
	})

	artist, err := client.SearchArtist(context.Background(), "Fishmans", false)
	if err != nil {
		t.Fatalf("SearchArtist() error: %v", err)
	}
	if artist.ID != "mbid-fishmans" {
		t.Errorf("ID = %q, want first hit", artist.ID)
	}
	if ua != "artistgraph/test ( dev@example.com )" {
		t.Errorf("User-Agent = %q", ua)
	}
}

func TestSearchArtist_Empty(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count":0,"artists":[]}`))
	})

	_, err := client.SearchArtist(context.Background(), "Nobody", false)
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("SearchArtist() error = %v, want ErrNotFound", err)
	}
}

func TestBrowseRecordings(t *testing.T) {
	var limit, inc string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ws/2/recording" {
			http.NotFound(w, r)
			return
		}
		q := r.URL.Query()
		limit, inc = q.Get("limit"), q.Get("inc")
		if q.Get("artist") != "mbid-fishmans" {
			t.Errorf("artist = %q", q.Get("artist"))
		}
		w.Write([]byte(recordingsBody))
	})

	recs, err := client.BrowseRecordings(context.Background(), "mbid-fishmans", false)
	if err != nil {
		t.Fatalf("BrowseRecordings() error: %v", err)
	}
	if limit != "25" || inc != "artist-credits" {
		t.Errorf("limit = %q, inc = %q", limit, inc)
	}
	if len(recs) != 2 {
		t.Fatalf("len(recs) = %d, want 2", len(recs))
	}
	if want := []string{"Fishmans", "UA"}; !slices.Equal(recs[0].Credits, want) {
		t.Errorf("Credits = %v, want %v", recs[0].Credits, want)
	}
}

func TestBrowseRecordings_Cached(t *testing.T) {
	var calls atomic.Int32
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(recordingsBody))
	})
	ctx := context.Background()

	for range 3 {
		if _, err := client.BrowseRecordings(ctx, "mbid-fishmans", false); err != nil {
			t.Fatalf("BrowseRecordings() error: %v", err)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("requests = %d, want 1", got)
	}
}

func TestRecordingLimitClamped(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, DefaultRecordingLimit},
		{-1, DefaultRecordingLimit},
		{10, 10},
		{500, maxRecordingLimit},
	}
	for _, tt := range tests {
		c := NewClient(nil, 0, Options{RecordingLimit: tt.in})
		if c.limit != tt.want {
			t.Errorf("RecordingLimit %d -> %d, want %d", tt.in, c.limit, tt.want)
		}
	}
}

func TestCreditedNames(t *testing.T) {
	recs := []Recording{
		{Credits: []string{"Fishmans", "UA"}},
		{Credits: []string{"Fishmans"}},
		{Credits: []string{"UA", "Kiyoshiro Imawano"}},
	}
	got := CreditedNames(recs, "Fishmans")
	want := []string{"UA", "UA", "Kiyoshiro Imawano"}
	if !slices.Equal(got, want) {
		t.Errorf("CreditedNames() = %v, want %v", got, want)
	}
}

func TestUserAgent(t *testing.T) {
	if got := UserAgent("artistgraph", "1.0", ""); got != "artistgraph/1.0" {
		t.Errorf("UserAgent() = %q", got)
	}
}

func TestRateLimiterHonorsContext(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(searchBody))
	})
	client.limiter.SetLimit(0.001)
	client.limiter.Allow()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.SearchArtist(ctx, "Fishmans", true); err == nil {
		t.Error("SearchArtist() should fail on cancelled context")
	}
}
