package fetch

import (
	"context"

	"github.com/matzehuels/artistgraph/pkg/integrations/musicbrainz"
	"github.com/matzehuels/artistgraph/pkg/integrations/spotify"
)

// SpotifyGenres adapts a Spotify client to [GenreSource].
type SpotifyGenres struct {
	Client  *spotify.Client
	Refresh bool
}

// LookupGenres implements [GenreSource].
func (s SpotifyGenres) LookupGenres(ctx context.Context, seed string) (string, []string, error) {
	artist, err := s.Client.SearchArtist(ctx, seed, s.Refresh)
	if err != nil {
		return "", nil, err
	}
	return artist.Name, artist.Genres, nil
}

// MusicBrainzCredits adapts a MusicBrainz client to [CreditSource]. The seed
// is searched as given and the recordings of the top hit are browsed.
type MusicBrainzCredits struct {
	Client  *musicbrainz.Client
	Refresh bool
}

// LookupCredits implements [CreditSource].
func (m MusicBrainzCredits) LookupCredits(ctx context.Context, seed string) ([]string, error) {
	artist, err := m.Client.SearchArtist(ctx, seed, m.Refresh)
	if err != nil {
		return nil, err
	}
	recordings, err := m.Client.BrowseRecordings(ctx, artist.ID, m.Refresh)
	if err != nil {
		return nil, err
	}
	return musicbrainz.CreditedNames(recordings, ""), nil
}
