// Package fetch collects the builder inputs for a list of seed artists.
//
// For every seed, a [GenreSource] resolves the canonical artist name and its
// genre tags, and a [CreditSource] lists the artists credited on that
// artist's recordings. The canonical name becomes the node key; credits
// naming the artist itself are dropped.
//
// Seeds the genre source cannot find are skipped with a warning. A credit
// lookup failure is logged and the seed keeps its genres. Cancelling the
// context aborts the whole run.
//
//	f := fetch.New(fetch.SpotifyGenres{Client: sp}, fetch.MusicBrainzCredits{Client: mb}, logger)
//	g, res, err := f.Build(ctx, seeds)
package fetch
