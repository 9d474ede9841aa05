package spotify

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/artistgraph/pkg/cache"
	"github.com/matzehuels/artistgraph/pkg/httputil"
	"github.com/matzehuels/artistgraph/pkg/integrations"
)

const (
	defaultAPIURL   = "https://api.spotify.com/v1"
	defaultTokenURL = "https://accounts.spotify.com/api/token"

	// tokenSlack refreshes the token this long before it actually expires.
	tokenSlack = 10 * time.Second

	// tokenRetryDelay is the pause before retrying a search rejected with
	// 401, by which time the token has been dropped and is exchanged again.
	tokenRetryDelay = 50 * time.Millisecond
)

// ErrMissingCredentials is returned when no client ID or secret is configured.
var ErrMissingCredentials = errors.New("spotify: client id and secret are required")

// Credentials identify the application for the client-credentials flow.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// Artist is the subset of a Spotify artist object the graph needs.
type Artist struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Genres []string `json:"genres"`
}

// Client searches the Spotify Web API.
type Client struct {
	*integrations.Client
	creds    Credentials
	apiURL   string
	tokenURL string

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewClient creates a Spotify client caching search results in c for ttl.
func NewClient(c cache.Cache, ttl time.Duration, creds Credentials) *Client {
	return &Client{
		Client:   integrations.NewClient(c, "spotify", ttl, nil),
		creds:    creds,
		apiURL:   defaultAPIURL,
		tokenURL: defaultTokenURL,
	}
}

// SearchArtist returns the best match for query, or [integrations.ErrNotFound]
// when the search has no items. With refresh set the cache is bypassed.
func (c *Client) SearchArtist(ctx context.Context, query string, refresh bool) (*Artist, error) {
	key := "artist:" + integrations.NormalizeName(query)

	var artist Artist
	err := c.Cached(ctx, key, refresh, &artist, func() error {
		return c.search(ctx, query, &artist)
	})
	if err != nil {
		return nil, err
	}
	return &artist, nil
}

func (c *Client) search(ctx context.Context, query string, artist *Artist) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("type", "artist")
	q.Set("limit", "1")

	var resp searchResponse
	headers := map[string]string{"Authorization": "Bearer " + token}
	if err := c.GetWithHeaders(ctx, c.apiURL+"/search?"+q.Encode(), headers, &resp); err != nil {
		if errors.Is(err, integrations.ErrUnauthorized) {
			c.resetToken()
			return &httputil.RetryableError{Err: err, After: tokenRetryDelay}
		}
		return err
	}
	if len(resp.Artists.Items) == 0 {
		return fmt.Errorf("%w: spotify artist %q", integrations.ErrNotFound, query)
	}

	*artist = resp.Artists.Items[0]
	if artist.Genres == nil {
		artist.Genres = []string{}
	}
	return nil
}

// accessToken returns a valid bearer token, exchanging credentials when the
// cached one is missing or about to expire.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Add(tokenSlack).Before(c.expiresAt) {
		return c.token, nil
	}
	if c.creds.ClientID == "" || c.creds.ClientSecret == "" {
		return "", ErrMissingCredentials
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	credential := base64.StdEncoding.EncodeToString([]byte(c.creds.ClientID + ":" + c.creds.ClientSecret))
	headers := map[string]string{
		"Authorization": "Basic " + credential,
		"Content-Type":  "application/x-www-form-urlencoded",
	}

	requestAt := time.Now()
	var result tokenResponse
	if err := c.Do(req, headers, &result); err != nil {
		return "", fmt.Errorf("token fetch: %w", err)
	}
	if result.AccessToken == "" {
		return "", fmt.Errorf("token fetch: empty access token")
	}

	c.token = result.AccessToken
	c.expiresAt = requestAt.Add(time.Duration(result.ExpiresIn) * time.Second)
	return c.token, nil
}

// Verify obtains an access token and returns when it expires. It fails with
// ErrMissingCredentials or ErrUnauthorized when the credentials are unusable.
func (c *Client) Verify(ctx context.Context) (time.Time, error) {
	if _, err := c.accessToken(ctx); err != nil {
		return time.Time{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expiresAt, nil
}

func (c *Client) resetToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type searchResponse struct {
	Artists struct {
		Items []Artist `json:"items"`
	} `json:"artists"`
}
