package graph

import (
	"fmt"
	"slices"
)

// DefaultTopN is the ranking size used by [Graph.TopDegree] when n <= 0.
const DefaultTopN = 5

// Hop is one step of a path: the traversed edge and its kind.
type Hop struct {
	From string
	To   string
	Kind EdgeKind
}

// Ranked pairs an artist with its degree.
type Ranked struct {
	Name   string
	Degree int
}

// GenreNeighbors returns the artists linked to artist by a genre edge, in
// neighbor insertion order. Neighbors whose edge was replaced by a
// collaboration are not included.
//
// Returns an error wrapping ErrArtistNotFound if artist is not a node.
func (g *Graph) GenreNeighbors(artist string) ([]string, error) {
	if !g.Has(artist) {
		return nil, notFound(artist)
	}
	out := []string{}
	for _, n := range g.adj[artist] {
		if g.edges[pairOf(artist, n)].Kind == KindGenre {
			out = append(out, n)
		}
	}
	return out, nil
}

// ShortestPath returns the hops along an unweighted shortest path from
// source to target. Among equally short paths, the one found first by a
// breadth-first search following neighbor insertion order is returned.
// A path from an artist to itself has no hops.
//
// Returns an error wrapping ErrArtistNotFound if either endpoint is missing,
// or ErrNoPath if they are in different components.
func (g *Graph) ShortestPath(source, target string) ([]Hop, error) {
	if !g.Has(source) {
		return nil, notFound(source)
	}
	if !g.Has(target) {
		return nil, notFound(target)
	}
	if source == target {
		return []Hop{}, nil
	}

	prev := map[string]string{source: source}
	queue := []string{source}
	for len(queue) > 0 && !hasKey(prev, target) {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range g.adj[cur] {
			if hasKey(prev, n) {
				continue
			}
			prev[n] = cur
			queue = append(queue, n)
		}
	}
	if !hasKey(prev, target) {
		return nil, fmt.Errorf("%w: %q and %q", ErrNoPath, source, target)
	}

	var names []string
	for cur := target; cur != source; cur = prev[cur] {
		names = append(names, cur)
	}
	names = append(names, source)
	slices.Reverse(names)

	hops := make([]Hop, len(names)-1)
	for i := range hops {
		from, to := names[i], names[i+1]
		hops[i] = Hop{From: from, To: to, Kind: g.edges[pairOf(from, to)].Kind}
	}
	return hops, nil
}

// TopDegree returns up to n artists ordered by degree, highest first. Ties
// keep node insertion order. An empty graph yields an empty slice; n <= 0
// means DefaultTopN.
func (g *Graph) TopDegree(n int) []Ranked {
	if n <= 0 {
		n = DefaultTopN
	}
	ranked := make([]Ranked, len(g.nodes))
	for i, node := range g.nodes {
		ranked[i] = Ranked{Name: node.Name, Degree: g.Degree(node.Name)}
	}
	slices.SortStableFunc(ranked, func(a, b Ranked) int { return b.Degree - a.Degree })
	return ranked[:min(n, len(ranked))]
}

func notFound(name string) error {
	return fmt.Errorf("%w: %q", ErrArtistNotFound, name)
}

func hasKey(m map[string]string, k string) bool {
	_, ok := m[k]
	return ok
}
