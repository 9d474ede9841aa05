package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/artistgraph/pkg/graph"
	"github.com/matzehuels/artistgraph/pkg/integrations"
	"github.com/matzehuels/artistgraph/pkg/observability"
)

// GenreSource resolves a seed to its canonical artist name and genre tags.
// It returns an error matching [integrations.ErrNotFound] when there is no match.
type GenreSource interface {
	LookupGenres(ctx context.Context, seed string) (name string, genres []string, err error)
}

// CreditSource lists the names credited on recordings of the artist found
// for seed. The artist's own name may appear in the result.
type CreditSource interface {
	LookupCredits(ctx context.Context, seed string) ([]string, error)
}

// Result holds the fetched builder inputs.
type Result struct {
	// Genres maps canonical artist name to genre tags, in seed order.
	Genres *graph.Table
	// Collaborations maps canonical artist name to credited artist names.
	Collaborations *graph.Table
	// Skipped lists seeds the genre source could not resolve.
	Skipped []string
	// CreditErrors counts seeds whose credit lookup failed.
	CreditErrors int
}

// Fetcher runs the genre and credit lookups for a list of seeds.
//
// Lookups run sequentially in seed order so the resulting tables, and the
// graph built from them, are deterministic.
type Fetcher struct {
	Genres  GenreSource
	Credits CreditSource
	Logger  *log.Logger
}

// New creates a Fetcher. A nil credits source disables collaboration lookups;
// a nil logger discards output.
func New(genres GenreSource, credits CreditSource, logger *log.Logger) *Fetcher {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Fetcher{Genres: genres, Credits: credits, Logger: logger}
}

// Fetch looks up every seed. It only fails when the context is cancelled or
// the genre source returns an error other than not-found.
func (f *Fetcher) Fetch(ctx context.Context, seeds []string) (*Result, error) {
	res := &Result{
		Genres:         graph.NewTable(),
		Collaborations: graph.NewTable(),
	}
	hooks := observability.Fetch()

	for _, seed := range seeds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		hooks.OnArtistStart(ctx, seed)

		name, genres, err := f.Genres.LookupGenres(ctx, seed)
		if err != nil {
			hooks.OnArtistComplete(ctx, seed, "", 0, 0, time.Since(start), err)
			if errors.Is(err, integrations.ErrNotFound) {
				f.Logger.Warn("artist not found, skipping", "source", "spotify", "seed", seed)
				res.Skipped = append(res.Skipped, seed)
				continue
			}
			return nil, fmt.Errorf("lookup genres for %q: %w", seed, err)
		}
		res.Genres.Set(name, genres)

		credits, err := f.credits(ctx, seed, name)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			res.CreditErrors++
		}
		if len(credits) > 0 {
			res.Collaborations.Append(name, credits...)
		}

		f.Logger.Debug("fetched artist", "seed", seed, "name", name, "genres", len(genres), "credits", len(credits))
		hooks.OnArtistComplete(ctx, seed, name, len(genres), len(credits), time.Since(start), nil)
	}
	return res, nil
}

// credits returns the credited names for seed, excluding name itself.
// Failures are logged here; the returned error only signals them to Fetch.
func (f *Fetcher) credits(ctx context.Context, seed, name string) ([]string, error) {
	if f.Credits == nil {
		return nil, nil
	}
	all, err := f.Credits.LookupCredits(ctx, seed)
	if err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			f.Logger.Warn("no results", "source", "musicbrainz", "seed", seed)
			return nil, nil
		}
		f.Logger.Error("credit lookup failed", "seed", seed, "err", truncate(err.Error(), 100))
		return nil, err
	}

	credits := make([]string, 0, len(all))
	for _, c := range all {
		if c != name {
			credits = append(credits, c)
		}
	}
	return credits, nil
}

// Build fetches seeds and builds the graph from the result.
func (f *Fetcher) Build(ctx context.Context, seeds []string) (*graph.Graph, *Result, error) {
	res, err := f.Fetch(ctx, seeds)
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()
	g := graph.Build(res.Genres, res.Collaborations)
	stats := g.Stats()
	observability.Fetch().OnBuild(ctx, stats.Nodes, stats.Edges, stats.Collaborations, time.Since(start))

	f.Logger.Info("built graph",
		"nodes", stats.Nodes,
		"edges", stats.Edges,
		"genre", stats.Genre,
		"collaborations", stats.Collaborations)
	return g, res, nil
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
