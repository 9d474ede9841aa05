// Package pkg provides the core libraries for artistgraph.
//
// # Overview
//
// Artistgraph links a list of seed artists into one undirected graph. Two
// artists share a genre edge when their Spotify genre tags overlap and a
// collaboration edge when MusicBrainz credits them on the same recording.
// The pkg directory is organized into these areas:
//
//  1. [graph] - Graph structure, construction, queries and JSON documents
//  2. [fetch] - Orchestration (seeds → genre table + credit table → graph)
//  3. [integrations] - HTTP clients for Spotify and MusicBrainz
//  4. [cache] - Response cache backends (file, SQLite, Redis, MongoDB)
//  5. [render] - Graphviz node-link rendering
//
// # Architecture
//
// The typical data flow:
//
//	Seed artists
//	     ↓
//	[fetch] (Spotify genres, MusicBrainz credits, cached)
//	     ↓
//	[graph] (genre edges, then collaboration edges)
//	     ↓
//	queries / [render/nodelink] / JSON document
//
// # Quick Start
//
//	f := fetch.New(
//	    fetch.SpotifyGenres{Client: sp},
//	    fetch.MusicBrainzCredits{Client: mb},
//	    logger,
//	)
//	g, _, err := f.Build(ctx, []string{"Lamp", "KIRINJI", "Fishmans"})
//	if err != nil {
//	    return err
//	}
//	hops, err := g.ShortestPath("Lamp", "Fishmans")
//
// # Supporting Packages
//
// [errors] - Error codes shared by the CLI and the HTTP API.
//
// [httputil] - Retry with backoff for upstream requests.
//
// [observability] - Hooks for fetch, cache and HTTP events.
//
// [buildinfo] - Version information injected at build time.
//
// [graph]: github.com/matzehuels/artistgraph/pkg/graph
// [fetch]: github.com/matzehuels/artistgraph/pkg/fetch
// [integrations]: github.com/matzehuels/artistgraph/pkg/integrations
// [cache]: github.com/matzehuels/artistgraph/pkg/cache
// [render]: github.com/matzehuels/artistgraph/pkg/render
// [render/nodelink]: github.com/matzehuels/artistgraph/pkg/render/nodelink
// [errors]: github.com/matzehuels/artistgraph/pkg/errors
// [httputil]: github.com/matzehuels/artistgraph/pkg/httputil
// [observability]: github.com/matzehuels/artistgraph/pkg/observability
// [buildinfo]: github.com/matzehuels/artistgraph/pkg/buildinfo
package pkg
