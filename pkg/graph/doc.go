// Package graph fuses artist genre tags and collaboration credits into an
// undirected artist graph and answers queries over it.
//
// # Overview
//
// The package is pure and in-memory: it never performs I/O. Fetchers hand it
// two insertion-ordered [Table] values, [Build] turns them into a [Graph],
// and the graph is then only read.
//
// # Edge Kinds
//
// Every edge has a [EdgeKind]:
//
//   - [KindGenre]: the two artists share at least one genre tag. Weight is
//     the number of distinct shared tags.
//   - [KindCollaboration]: one artist is credited on the other's recordings.
//     No weight.
//
// The graph is simple, so a pair has at most one edge. Build writes all genre
// edges first and all collaboration edges second; a collaboration on a pair
// that already shares genres therefore replaces the genre edge.
//
// # Queries
//
//	g := graph.Build(genres, credits)
//	peers, err := g.GenreNeighbors("Lamp")
//	hops, err := g.ShortestPath("Lamp", "Fishmans")
//	top := g.TopDegree(graph.DefaultTopN)
//
// Query errors wrap [ErrArtistNotFound] or [ErrNoPath]; test them with
// errors.Is.
//
// # Determinism
//
// Node order is insertion order and each node's neighbors are kept in the
// order their edges were first written. Neighbor lookups, path search and
// degree ranking ties all follow that order, so a given input always produces
// the same answers.
//
// # Serialization
//
// [Export] and [WriteDocument] produce the JSON form used by the HTTP API and
// the render command:
//
//	{
//	  "nodes": [{"name": "A", "genres": ["pop"], "degree": 1}],
//	  "edges": [{"from": "A", "to": "B", "type": "genre", "weight": 1}],
//	  "stats": {"nodes": 2, "edges": 1, "genre_edges": 1, "collaboration_edges": 0}
//	}
package graph
