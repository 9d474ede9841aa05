// Package integrations provides HTTP clients for the music metadata APIs.
//
// # Overview
//
// Each upstream has its own subpackage:
//
//   - [spotify]: artist search with genre tags (client-credentials auth)
//   - [musicbrainz]: artist search and recording credits
//
// # Client Pattern
//
// Both clients follow the same shape:
//
//	sp := spotify.NewClient(c, 24*time.Hour, creds)
//	artist, err := sp.SearchArtist(ctx, "Fishmans", false) // false = use cache
//
// Clients handle:
//   - HTTP requests with retry, including 429 Retry-After handling
//   - Response caching through any [cache.Cache] backend
//   - API-specific parsing and normalization
//
// # Shared Infrastructure
//
// The [Client] type provides the shared HTTP functionality: default headers,
// status mapping to [ErrNotFound], [ErrRateLimited] and [ErrNetwork], and the
// read-through [Client.Cached] helper keyed by [cache.HTTPKey].
//
// [spotify]: github.com/matzehuels/artistgraph/pkg/integrations/spotify
// [musicbrainz]: github.com/matzehuels/artistgraph/pkg/integrations/musicbrainz
// [cache.Cache]: github.com/matzehuels/artistgraph/pkg/cache.Cache
// [cache.HTTPKey]: github.com/matzehuels/artistgraph/pkg/cache.HTTPKey
package integrations
