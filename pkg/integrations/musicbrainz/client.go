package musicbrainz

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/matzehuels/artistgraph/pkg/cache"
	"github.com/matzehuels/artistgraph/pkg/integrations"
)

const (
	defaultBaseURL = "https://musicbrainz.org/ws/2"

	// DefaultRecordingLimit is the page size used when browsing recordings.
	DefaultRecordingLimit = 25

	// maxRecordingLimit is the largest page the web service accepts.
	maxRecordingLimit = 100
)

// Options configures a [Client].
type Options struct {
	// UserAgent identifies the application, e.g. "artistgraph/1.0 ( me@example.com )".
	UserAgent string
	// RecordingLimit is the number of recordings browsed per artist.
	RecordingLimit int
	// Interval is the minimum spacing between uncached requests. Zero means one second.
	Interval time.Duration
}

// Artist is a MusicBrainz artist search hit.
type Artist struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Recording is a recording with the artists credited on it.
type Recording struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Credits []string `json:"credits"`
}

// Client queries the MusicBrainz web service.
type Client struct {
	*integrations.Client
	baseURL string
	limit   int
	limiter *rate.Limiter
}

// NewClient creates a MusicBrainz client caching responses in c for ttl.
func NewClient(c cache.Cache, ttl time.Duration, opts Options) *Client {
	interval := opts.Interval
	if interval <= 0 {
		interval = time.Second
	}
	limit := opts.RecordingLimit
	if limit <= 0 {
		limit = DefaultRecordingLimit
	}
	headers := map[string]string{"Accept": "application/json"}
	if opts.UserAgent != "" {
		headers["User-Agent"] = opts.UserAgent
	}
	return &Client{
		Client:  integrations.NewClient(c, "musicbrainz", ttl, headers),
		baseURL: defaultBaseURL,
		limit:   min(limit, maxRecordingLimit),
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// UserAgent formats the User-Agent string MusicBrainz asks clients to send.
func UserAgent(app, version, contact string) string {
	ua := app + "/" + version
	if contact != "" {
		ua += " ( " + contact + " )"
	}
	return ua
}

// SearchArtist returns the top search hit for name, or
// [integrations.ErrNotFound] when the search is empty.
func (c *Client) SearchArtist(ctx context.Context, name string, refresh bool) (*Artist, error) {
	key := "artist:" + integrations.NormalizeName(name)

	var artist Artist
	err := c.Cached(ctx, key, refresh, &artist, func() error {
		return c.searchArtist(ctx, name, &artist)
	})
	if err != nil {
		return nil, err
	}
	return &artist, nil
}

func (c *Client) searchArtist(ctx context.Context, name string, artist *Artist) error {
	q := url.Values{}
	q.Set("query", name)
	q.Set("fmt", "json")

	var resp artistSearchResponse
	if err := c.get(ctx, "/artist?"+q.Encode(), &resp); err != nil {
		return err
	}
	if len(resp.Artists) == 0 {
		return fmt.Errorf("%w: musicbrainz artist %q", integrations.ErrNotFound, name)
	}
	*artist = resp.Artists[0]
	return nil
}

// BrowseRecordings lists recordings of the artist with the given MBID,
// including the names of every artist credited on each recording.
func (c *Client) BrowseRecordings(ctx context.Context, mbid string, refresh bool) ([]Recording, error) {
	key := "recordings:" + mbid + ":" + strconv.Itoa(c.limit)

	var recordings []Recording
	err := c.Cached(ctx, key, refresh, &recordings, func() error {
		return c.browseRecordings(ctx, mbid, &recordings)
	})
	if err != nil {
		return nil, err
	}
	return recordings, nil
}

func (c *Client) browseRecordings(ctx context.Context, mbid string, out *[]Recording) error {
	q := url.Values{}
	q.Set("artist", mbid)
	q.Set("inc", "artist-credits")
	q.Set("limit", strconv.Itoa(c.limit))
	q.Set("fmt", "json")

	var resp recordingBrowseResponse
	if err := c.get(ctx, "/recording?"+q.Encode(), &resp); err != nil {
		return err
	}

	recordings := make([]Recording, 0, len(resp.Recordings))
	for _, r := range resp.Recordings {
		rec := Recording{ID: r.ID, Title: r.Title, Credits: []string{}}
		for _, credit := range r.ArtistCredit {
			if credit.Artist.Name != "" {
				rec.Credits = append(rec.Credits, credit.Artist.Name)
			}
		}
		recordings = append(recordings, rec)
	}
	*out = recordings
	return nil
}

// CreditedNames returns every credited artist name across recordings, in
// order, excluding exclude. Repeats are kept.
func CreditedNames(recordings []Recording, exclude string) []string {
	var names []string
	for _, r := range recordings {
		for _, name := range r.Credits {
			if name != exclude {
				names = append(names, name)
			}
		}
	}
	return names
}

func (c *Client) get(ctx context.Context, path string, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	return c.Get(ctx, c.baseURL+path, v)
}

type artistSearchResponse struct {
	Count   int      `json:"count"`
	Artists []Artist `json:"artists"`
}

type recordingBrowseResponse struct {
	RecordingCount int `json:"recording-count"`
	Recordings     []struct {
		ID           string `json:"id"`
		Title        string `json:"title"`
		ArtistCredit []struct {
			Name       string `json:"name"`
			JoinPhrase string `json:"joinphrase"`
			Artist     struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"artist"`
		} `json:"artist-credit"`
	} `json:"recordings"`
}
